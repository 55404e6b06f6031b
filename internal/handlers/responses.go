package handlers

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AnswerResponse is returned by POST /ask_ai.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// MessageResponse acknowledges a write.
type MessageResponse struct {
	Message string `json:"message"`
}
