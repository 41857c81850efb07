// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"time"
)

// APIResponse is the envelope every endpoint answers with
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse creates a success envelope around the given payload
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse creates an error envelope around the given detail
func NewErrorResponse(detail ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     &detail,
		Timestamp: time.Now(),
	}
}
