package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/api/handler"
	"github.com/nicopeltier/title4pix/internal/api/middleware"
	"github.com/nicopeltier/title4pix/internal/config"
	"github.com/nicopeltier/title4pix/internal/service"
)

// Services bundles everything the router hands to its handlers.
type Services struct {
	Photos   *service.PhotoService
	Generate *service.GenerateService
	Themes   *service.ThemeService
	Pdfs     *service.PdfService
	Export   *service.ExportService
	Settings service.SettingsStore
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(services Services, cfg *config.Config) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	authHandler := handler.NewAuthHandler(cfg.Auth)
	photoHandler := handler.NewPhotoHandler(services.Photos)
	generateHandler := handler.NewGenerateHandler(services.Generate)
	themeHandler := handler.NewThemeHandler(services.Themes)
	settingsHandler := handler.NewSettingsHandler(services.Settings)
	pdfHandler := handler.NewPdfHandler(services.Pdfs)
	exportHandler := handler.NewExportHandler(services.Export)

	// Health check
	r.GET("/health", healthHandler.Health)

	// Login gate, outside the session guard
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.DELETE("/logout", authHandler.Logout)
	}

	// API v1 routes, session cookie required
	v1 := r.Group("/api/v1")
	v1.Use(middleware.SessionAuth(cfg.Auth.SessionToken))
	{
		// Photo catalog
		v1.GET("/photos", photoHandler.List)
		v1.GET("/photos/:filename", photoHandler.Get)
		v1.PUT("/photos/:filename", photoHandler.Update)
		v1.GET("/photos/:filename/image", photoHandler.Image)
		v1.GET("/photos/:filename/audio", photoHandler.GetAudio)
		v1.POST("/photos/:filename/audio", photoHandler.PostAudio)

		// AI pipelines
		v1.POST("/generate", generateHandler.Generate)
		v1.POST("/themes/assign", themeHandler.Assign)

		// Settings
		v1.GET("/settings", settingsHandler.Get)
		v1.PUT("/settings", settingsHandler.Update)

		// Reference documents
		v1.GET("/pdfs", pdfHandler.List)
		v1.POST("/pdfs", pdfHandler.Upload)
		v1.DELETE("/pdfs/:id", pdfHandler.Delete)

		// Export and accounting
		v1.GET("/export", exportHandler.Export)
		v1.GET("/usage", photoHandler.Usage)
	}

	return r
}
