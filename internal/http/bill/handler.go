package bill

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/billsnap/billsnap/internal/bill"
	"github.com/billsnap/billsnap/internal/middleware"
	"github.com/billsnap/billsnap/internal/money"
)

type Handler struct {
	svc *bill.Service
}

func NewHandler(svc *bill.Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes are reachable without authentication: anyone with the share
// token can view and join.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/{shareID}", h.get)
	r.Post("/{shareID}/participants", h.join)
	r.Patch("/{shareID}/participants/{participantID}", h.updateClaims)
}

// OwnerRoutes require an authenticated bill owner.
func (h *Handler) OwnerRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{shareID}", h.delete)
}

type createItemRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category,omitempty"`
}

type createBillRequest struct {
	Title          string              `json:"title"`
	RestaurantName string              `json:"restaurant_name,omitempty"`
	ImageURL       string              `json:"image_url,omitempty"`
	TotalAmount    float64             `json:"total_amount"`
	Items          []createItemRequest `json:"items"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]bill.CreateItemParams, len(req.Items))
	for i, it := range req.Items {
		items[i] = bill.CreateItemParams{
			Name:      it.Name,
			UnitPrice: money.FromFloat(it.Price),
			Quantity:  it.Quantity,
			Category:  it.Category,
		}
	}

	b, err := h.svc.Create(r.Context(), user.ID, bill.CreateParams{
		Title:          req.Title,
		RestaurantName: req.RestaurantName,
		ImageURL:       req.ImageURL,
		StatedTotal:    money.FromFloat(req.TotalAmount),
		Items:          items,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	bills, err := h.svc.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(bills)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetByShareID(r.Context(), chi.URLParam(r, "shareID"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "shareID"), user.ID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type joinRequest struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone,omitempty"`
	ItemIDs []string `json:"item_ids"`
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	itemIDs, err := parseUUIDs(req.ItemIDs)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Join(r.Context(), chi.URLParam(r, "shareID"), bill.JoinParams{
		DisplayName:  req.Name,
		ContactPhone: req.Phone,
		ItemIDs:      itemIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toParticipantResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateClaimsRequest struct {
	ItemIDs []string `json:"item_ids"`
}

func (h *Handler) updateClaims(w http.ResponseWriter, r *http.Request) {
	participantID, err := uuid.Parse(chi.URLParam(r, "participantID"))
	if err != nil {
		http.Error(w, "invalid participant id", http.StatusBadRequest)
		return
	}

	var req updateClaimsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	itemIDs, err := parseUUIDs(req.ItemIDs)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.UpdateClaims(r.Context(), chi.URLParam(r, "shareID"), participantID, itemIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toParticipantResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))

	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}

		ids[i] = id
	}

	return ids, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bill.ErrNotFound), errors.Is(err, bill.ErrParticipantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, bill.ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, bill.ErrNameRequired),
		errors.Is(err, bill.ErrNoItemsSelected),
		errors.Is(err, bill.ErrNoItems),
		errors.Is(err, bill.ErrInvalidAmount),
		errors.Is(err, bill.ErrItemNotInBill),
		errors.Is(err, bill.ErrParticipantSettled):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
