package models

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

func (e *APIError) Error() string { return e.Message }

type ErrorResponse struct {
	Error APIError `json:"error"`
}
