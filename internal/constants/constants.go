package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserName = "user_name"
)

// Pagination bounds.
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8
