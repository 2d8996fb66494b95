package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInvalidState      = "INVALID_STATE"
	CodeBadMove           = "BAD_MOVE"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeConsistencyError   = "CONSISTENCY_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
