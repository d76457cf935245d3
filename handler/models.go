package handler

// PromptRequest is the expected JSON body of POST /chat.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// ChatResponse is returned when the model server was reached (or, unless strict
// upstream errors are enabled, when it was not).
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is returned for requests the relay refuses to forward.
type ErrorResponse struct {
	Error string `json:"error"`
}
