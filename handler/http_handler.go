package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"timelinebot/backend"
	"timelinebot/metrics"
)

const (
	errNoPrompt    = "No prompt provided"
	errInvalidJSON = "Invalid JSON body"

	maxBodyBytes = 1 << 20
)

// Generator produces model output for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) backend.Outcome
}

// ChatHandler serves POST /chat by relaying the prompt to a Generator.
type ChatHandler struct {
	Generator Generator
	Metrics   *metrics.Metrics

	// StrictUpstreamErrors answers upstream failures with 502 and an error body
	// instead of a 200 whose response text starts with "Error: ".
	StrictUpstreamErrors bool
}

// NewChatHandler creates a ChatHandler. m may be nil.
func NewChatHandler(gen Generator, m *metrics.Metrics, strict bool) *ChatHandler {
	return &ChatHandler{
		Generator:            gen,
		Metrics:              m,
		StrictUpstreamErrors: strict,
	}
}

var errMissingPrompt = errors.New(errNoPrompt)

// decodePromptRequest reads exactly one JSON object from body. A prompt that is
// absent or falsy (null, "", false, 0, [], {}) yields errMissingPrompt; any other
// non-string prompt is rejected as invalid.
func decodePromptRequest(body io.Reader) (PromptRequest, error) {
	dec := json.NewDecoder(body)
	var raw struct {
		Prompt any `json:"prompt"`
	}
	if err := dec.Decode(&raw); err != nil {
		return PromptRequest{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return PromptRequest{}, errors.New("unexpected data after JSON body")
	}

	missing := false
	switch p := raw.Prompt.(type) {
	case string:
		if p != "" {
			return PromptRequest{Prompt: p}, nil
		}
		missing = true
	case nil:
		missing = true
	case bool:
		missing = !p
	case float64:
		missing = p == 0
	case []any:
		missing = len(p) == 0
	case map[string]any:
		missing = len(p) == 0
	}
	if missing {
		return PromptRequest{}, errMissingPrompt
	}
	return PromptRequest{}, fmt.Errorf("prompt must be a string, got %T", raw.Prompt)
}

// ServeHTTP implements the http.Handler interface for ChatHandler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePromptRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if errors.Is(err, errMissingPrompt) {
		h.Metrics.ObserveChat(metrics.OutcomeInvalid)
		logAndReturnError(w, r, errNoPrompt, http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Metrics.ObserveChat(metrics.OutcomeInvalid)
		logAndReturnError(w, r, errInvalidJSON, http.StatusBadRequest, "Bad Request: "+err.Error())
		return
	}

	log.WithFields(requestFields(r)).WithField("prompt_len", len(payload.Prompt)).Debug("forwarding prompt")

	out := h.generate(r.Context(), payload.Prompt)

	if out.Failed() {
		h.Metrics.ObserveChat(metrics.OutcomeUpstreamError)
		if h.StrictUpstreamErrors {
			logAndReturnError(w, r, out.String(), http.StatusBadGateway)
			return
		}
		log.WithFields(requestFields(r)).WithError(out.Err).Error("model server call failed")
		writeJSON(w, http.StatusOK, ChatResponse{Response: out.String()})
		return
	}

	h.Metrics.ObserveChat(metrics.OutcomeOK)
	writeJSON(w, http.StatusOK, ChatResponse{Response: out.Text})
}

func (h *ChatHandler) generate(ctx context.Context, prompt string) backend.Outcome {
	defer h.Metrics.TrackUpstream()()
	return h.Generator.Generate(ctx, prompt)
}
