package common

const (
	// AuthorizationHeader carries the bearer token on protected routes.
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"

	// RequestIDHeader is echoed back on every response.
	RequestIDHeader = "X-Request-ID"

	// DefaultStatus is assigned to users created without an explicit status.
	DefaultStatus = "user"
)
