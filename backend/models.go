package backend

// ModelPayload is the body sent to the model server's generate endpoint.
type ModelPayload struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// ModelReply holds the fields read from the model server's reply. Other fields are ignored.
type ModelReply struct {
	Response *string `json:"response"`
	Error    string  `json:"error,omitempty"`
}

// Outcome is the result of one generate call: either generated text or the reason it failed.
type Outcome struct {
	Text string
	Err  error
}

// Failed reports whether the call did not produce model output.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// String renders the outcome the way it is shown to callers: the text on success,
// "Error: <reason>" on failure.
func (o Outcome) String() string {
	if o.Err != nil {
		return "Error: " + o.Err.Error()
	}
	return o.Text
}
