package payment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/billsnap/billsnap/internal/bill"
	"github.com/billsnap/billsnap/internal/middleware"
	"github.com/billsnap/billsnap/internal/payment"
)

type Handler struct {
	svc *payment.Service
}

func NewHandler(svc *payment.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes are the payment endpoints proper: starting an attempt and the
// gateway completion callback. Both are unauthenticated — participants are
// anonymous and the callback authenticates itself via the HMAC signature.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.start)
	r.Put("/{paymentID}/confirm", h.confirm)
}

// SettlementRoutes hang off the bills tree: the trust-based self-report path.
func (h *Handler) SettlementRoutes(r chi.Router) {
	r.Post("/{shareID}/participants/{participantID}/mark-paid", h.markPaid)
}

// OwnerSettlementRoutes is the owner-only correction path.
func (h *Handler) OwnerSettlementRoutes(r chi.Router) {
	r.Post("/{shareID}/participants/{participantID}/mark-unpaid", h.markUnpaid)
}

type startPaymentRequest struct {
	ShareID       string `json:"share_id"`
	ParticipantID string `json:"participant_id"`
	PayerUPI      string `json:"payer_upi,omitempty"`
}

type startPaymentResponse struct {
	PaymentID uuid.UUID      `json:"payment_id"`
	Method    payment.Method `json:"method"`
	OrderID   string         `json:"order_id,omitempty"`
	KeyID     string         `json:"key_id,omitempty"`
	AmountDue string         `json:"amount_due"`
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	var req startPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	participantID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		http.Error(w, "invalid participant id", http.StatusBadRequest)
		return
	}

	res, err := h.svc.Start(r.Context(), payment.StartParams{
		ShareID:       req.ShareID,
		ParticipantID: participantID,
		PayerUPI:      req.PayerUPI,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(startPaymentResponse{
		PaymentID: res.PaymentID,
		Method:    res.Method,
		OrderID:   res.OrderID,
		KeyID:     res.KeyID,
		AmountDue: res.AmountDue,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type confirmPaymentRequest struct {
	OrderID    string `json:"order_id"`
	PaymentRef string `json:"payment_ref"`
	Signature  string `json:"signature"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	paymentID, err := uuid.Parse(chi.URLParam(r, "paymentID"))
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}

	var req confirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Confirm(r.Context(), paymentID, req.OrderID, req.PaymentRef, req.Signature); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	participantID, err := uuid.Parse(chi.URLParam(r, "participantID"))
	if err != nil {
		http.Error(w, "invalid participant id", http.StatusBadRequest)
		return
	}

	if err := h.svc.SelfReport(r.Context(), chi.URLParam(r, "shareID"), participantID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markUnpaid(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	participantID, err := uuid.Parse(chi.URLParam(r, "participantID"))
	if err != nil {
		http.Error(w, "invalid participant id", http.StatusBadRequest)
		return
	}

	if err := h.svc.MarkUnpaid(r.Context(), chi.URLParam(r, "shareID"), participantID, user.ID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bill.ErrNotFound),
		errors.Is(err, bill.ErrParticipantNotFound),
		errors.Is(err, payment.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, bill.ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, payment.ErrInvalidSignature):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, payment.ErrAlreadyCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, payment.ErrGatewayDisabled):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
