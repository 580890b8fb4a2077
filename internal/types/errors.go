package types

import "errors"

var (
	ErrNotFound            = errors.New("requested item not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrProviderUnavailable = errors.New("places provider unavailable")
)

// Response is the generic error envelope documented for the API.
type Response struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
