package vision

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/billsnap/billsnap/internal/vision"
)

type Handler struct {
	svc *vision.Service
}

func NewHandler(svc *vision.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.parse)
}

type parseRequest struct {
	Image string `json:"image"` // base64, with or without data-url prefix
}

type parseResponse struct {
	Data     *vision.ParsedReceipt `json:"data"`
	Provider string                `json:"provider"`
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Image == "" {
		http.Error(w, "image is required", http.StatusBadRequest)
		return
	}

	receipt, provider, err := h.svc.Parse(r.Context(), req.Image)
	if err != nil {
		switch {
		case errors.Is(err, vision.ErrInvalidReceipt):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, vision.ErrNoProviders), errors.Is(err, vision.ErrAllProvidersFailed):
			http.Error(w, err.Error(), http.StatusBadGateway)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(parseResponse{Data: receipt, Provider: provider}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
