package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// DefaultMaxBodySize caps delivery bodies read by Handler.
const DefaultMaxBodySize = 1048576 // 1 MB

// HandlerFunc receives each verified event. Returning an error makes the
// handler answer 500 so the platform retries the delivery.
type HandlerFunc func(ctx context.Context, ev Event, raw []byte) error

// Handler is an http.Handler that verifies, classifies and dispatches
// deliveries.
type Handler struct {
	verifier    *Verifier
	fn          HandlerFunc
	MaxBodySize int64
}

// NewHandler returns a Handler calling fn for each verified event.
func NewHandler(v *Verifier, fn HandlerFunc) *Handler {
	return &Handler{
		verifier:    v,
		fn:          fn,
		MaxBodySize: DefaultMaxBodySize,
	}
}

type receivedResponse struct {
	Received bool `json:"received"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	limit := h.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}
	if int64(len(body)) > limit {
		respondJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "payload too large"})
		return
	}

	ev, err := h.verifier.ConstructEvent(body, r.Header.Get(SignatureHeader))
	switch {
	case errors.Is(err, ErrSignatureVerificationFailed):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid signature"})
		return
	case err != nil:
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	if h.fn != nil {
		if err := h.fn(r.Context(), ev, body); err != nil {
			respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "event handling failed"})
			return
		}
	}

	respondJSON(w, http.StatusOK, receivedResponse{Received: true})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
