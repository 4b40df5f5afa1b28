package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields, propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID).
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name.
	FieldComponent = "component"

	// FieldPhoto is the photo filename a log line refers to.
	FieldPhoto = "photo"
)

// Standard metric fields, attached at the emitting call site.
const (
	// FieldDurationMs is the execution duration in milliseconds.
	FieldDurationMs = "duration_ms"

	// FieldStatus is the HTTP status or operation status.
	FieldStatus = "status"

	// FieldSize is the data size in bytes.
	FieldSize = "size"

	// FieldCount is a generic count field.
	FieldCount = "count"

	// FieldInputTokens is a model call's input token count.
	FieldInputTokens = "input_tokens"

	// FieldOutputTokens is a model call's output token count.
	FieldOutputTokens = "output_tokens"
)
