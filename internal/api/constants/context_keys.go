package constants

// Context keys shared by middleware and handlers
const (
	ContextKeyRequestID = "RequestID"
)

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"
