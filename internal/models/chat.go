package models

// MaxMessageLength is the longest accepted chat message, in characters.
const MaxMessageLength = 2000

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse is the body of every non-2xx response.
// Message is either a string or, for validation failures, a []string.
type ErrorResponse struct {
	StatusCode int         `json:"statusCode,omitempty"`
	Message    interface{} `json:"message"`
	Error      string      `json:"error,omitempty"`
}
