package syntax

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/agentic-research/moosepick/api"
)

// Handler exposes the Store over HTTP.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler builds a Handler around a loaded store.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Router wires the snippet routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/get_syntax", h.GetSyntax)
	return r
}

// GetSyntax handles POST /get_syntax. Empty input is a client error (422),
// unknown identifiers are 404 with every missing name in the message.
func (h *Handler) GetSyntax(w http.ResponseWriter, r *http.Request) {
	var req api.SyntaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rendered, err := h.store.Render(req.Objects)
	switch {
	case errors.Is(err, ErrEmptyRequest):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		var nf *NotFoundError
		if errors.As(err, &nf) {
			h.respondError(w, http.StatusNotFound, nf.Error())
			return
		}
		h.logger.Error("render failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.respondJSON(w, http.StatusOK, api.SyntaxReply{Syntax: rendered})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, api.ErrorReply{Error: msg})
}
