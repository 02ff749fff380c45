package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldEmail      = "email"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentHTTP     = "http"
	ComponentStore    = "store"
	ComponentSession  = "session"
	ComponentReminder = "reminder"
)
