package types

// APIResponse is the envelope used for error responses. Successful responses
// return the persisted row (create/update) or a confirmation object (delete)
// directly, which is the wire shape the SPA expects.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code, message string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	}
}

// Error codes. NOT_FOUND deliberately covers both "row does not exist" and
// "row belongs to another user" so ids cannot be enumerated across accounts.
const (
	ErrorCodeValidation   = "VALIDATION_ERROR"
	ErrorCodeUnauthorized = "UNAUTHORIZED"
	ErrorCodeInvalidToken = "INVALID_TOKEN"
	ErrorCodeNotFound     = "NOT_FOUND"
	ErrorCodeConflict     = "CONFLICT"
	ErrorCodeInternal     = "INTERNAL_ERROR"
)
