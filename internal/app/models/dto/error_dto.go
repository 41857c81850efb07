package dto

// ErrorCode identifies the category of an API error
type ErrorCode string

// API error codes
const (
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_ERROR"
	ErrorCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeConflict         ErrorCode = "CONFLICT"
	ErrorCodeInternalServer   ErrorCode = "INTERNAL_SERVER_ERROR"
)

// ErrorDetail carries the machine-readable code and human-readable
// message of a failed request
type ErrorDetail struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// NewErrorDetail creates a new ErrorDetail
func NewErrorDetail(code ErrorCode, message string) ErrorDetail {
	return ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithDetails attaches extra context to the error detail
func (e ErrorDetail) WithDetails(details interface{}) ErrorDetail {
	e.Details = details
	return e
}
