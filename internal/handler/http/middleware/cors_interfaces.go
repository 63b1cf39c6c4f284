package middleware

// OriginValidator decides whether a cross-origin request may read the response.
type OriginValidator interface {
	// IsAllowed reports whether origin is allowed. An empty origin is never allowed.
	IsAllowed(origin string) bool

	// GetAllowedOrigins returns a copy of the configured origins.
	GetAllowedOrigins() []string
}

// CORSLogger is the logging surface used by the CORS middleware.
type CORSLogger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}
