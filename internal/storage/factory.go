package storage

import "strings"

// NewStorage builds the ObjectStorage implementation for the configured
// bucket. A blank cfg.Type is inferred from the endpoint host, since R2 and
// plain S3 differ in region defaulting and bucket creation.
// Parameters:
//   - cfg: endpoint, credentials, and bucket settings.
// Returns:
//   - ObjectStorage: ready-to-use storage client.
//   - error: non-nil if the client cannot be constructed.
func NewStorage(cfg *S3Config) (ObjectStorage, error) {
	if cfg.Type == "" {
		cfg.Type = storageTypeFromEndpoint(cfg.Endpoint)
	}
	return NewS3Storage(cfg)
}

// storageTypeFromEndpoint infers the service flavour from the endpoint host.
// Anything that is neither Cloudflare R2 nor AWS proper is treated as a
// generic S3-compatible service such as MinIO.
func storageTypeFromEndpoint(endpoint string) StorageType {
	host := strings.ToLower(endpoint)

	switch {
	case strings.Contains(host, "r2.cloudflarestorage.com"):
		return StorageTypeR2
	case strings.Contains(host, "amazonaws.com"):
		return StorageTypeS3
	default:
		return StorageTypeS3Compatible
	}
}
