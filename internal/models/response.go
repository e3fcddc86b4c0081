package models

// APIResponse is the envelope every console endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewListResponse wraps a list and reports its length alongside.
func NewListResponse(data interface{}, n int) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
		Count:   &n,
	}
}

func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   message,
	}
}

// NewValidationErrorResponse reports per-field problems with a request body.
func NewValidationErrorResponse(errors map[string]string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   "Validation failed",
		Errors:  errors,
	}
}
