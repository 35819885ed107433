package contextkeys

// Custom key type to avoid collisions with other packages.
type contextKey string

// DBContextKey stores the request-scoped *gorm.DB in the context.
const DBContextKey = contextKey("db")

// RequestIDKey stores the per-request id assigned by the middleware.
const RequestIDKey = contextKey("request_id")

// UserIDKey stores the authenticated user's id.
const UserIDKey = contextKey("user_id")
