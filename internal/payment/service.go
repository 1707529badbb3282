package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/billsnap/billsnap/internal/bill"
	"github.com/billsnap/billsnap/internal/money"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=payment
type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)

	// CompletePayment marks the payment COMPLETED and the paying participant
	// settled in a single transaction.
	CompletePayment(ctx context.Context, id uuid.UUID, paymentRef string) error

	SetParticipantSettled(ctx context.Context, participantID uuid.UUID, settled bool) error
}

// Gateway abstracts the payment provider's order API.
type Gateway interface {
	// Configured reports whether gateway credentials are present. When false
	// the tracker advertises the manual self-report flow instead.
	Configured() bool
	KeyID() string
	CreateOrder(ctx context.Context, amountPaise int64, currency string, notes map[string]string) (orderID string, err error)
}

// Service is the settlement tracker: it flips participants between unpaid and
// paid via either the verified gateway path or the trust-based self-report
// path.
type Service struct {
	repo    Repository
	gateway Gateway
	bills   *bill.Service
	secret  string
}

func NewService(repo Repository, gateway Gateway, bills *bill.Service, gatewaySecret string) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		bills:   bills,
		secret:  gatewaySecret,
	}
}

// SelfReport marks a participant as settled on their own say-so. This is a
// deliberate trust boundary, not a bug: the manual UPI flow has no
// verifiable callback.
func (s *Service) SelfReport(ctx context.Context, shareID string, participantID uuid.UUID) error {
	b, err := s.bills.GetByShareID(ctx, shareID)
	if err != nil {
		return err
	}

	if b.FindParticipant(participantID) == nil {
		return bill.ErrParticipantNotFound
	}

	return s.repo.SetParticipantSettled(ctx, participantID, true)
}

// MarkUnpaid is the owner-only correction path for a settled participant.
func (s *Service) MarkUnpaid(ctx context.Context, shareID string, participantID uuid.UUID, ownerID string) error {
	b, err := s.bills.GetByShareID(ctx, shareID)
	if err != nil {
		return err
	}

	if b.CreatedBy != ownerID {
		return bill.ErrNotOwner
	}

	if b.FindParticipant(participantID) == nil {
		return bill.ErrParticipantNotFound
	}

	return s.repo.SetParticipantSettled(ctx, participantID, false)
}

type StartParams struct {
	ShareID       string
	ParticipantID uuid.UUID
	PayerUPI      string
}

type StartResult struct {
	PaymentID uuid.UUID
	Method    Method
	OrderID   string // set for the gateway flow
	KeyID     string // gateway key id for the client checkout
	AmountDue string
}

// Start opens a payment attempt for a participant's owed share. With gateway
// credentials configured it creates a gateway order; otherwise it falls back
// to the manual UPI flow and says so in the result, so callers never present
// a checkout that cannot complete.
func (s *Service) Start(ctx context.Context, params StartParams) (*StartResult, error) {
	b, err := s.bills.GetByShareID(ctx, params.ShareID)
	if err != nil {
		return nil, err
	}

	p := b.FindParticipant(params.ParticipantID)
	if p == nil {
		return nil, bill.ErrParticipantNotFound
	}

	if p.IsSettled {
		return nil, ErrAlreadyCompleted
	}

	pay := &Payment{
		BillID:        b.ID,
		ParticipantID: p.ID,
		Amount:        p.OwedShare,
		Status:        StatusPending,
	}

	if s.gateway.Configured() {
		orderID, err := s.gateway.CreateOrder(ctx, money.Paise(p.OwedShare), "INR", map[string]string{
			"bill_id":        b.ID.String(),
			"participant_id": p.ID.String(),
		})
		if err != nil {
			return nil, fmt.Errorf("creating gateway order: %w", err)
		}

		pay.Method = MethodRazorpay
		pay.OrderID = orderID
	} else {
		pay.Method = MethodManualUPI
		pay.PayerUPI = params.PayerUPI
	}

	if err := s.repo.CreatePayment(ctx, pay); err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	res := &StartResult{
		PaymentID: pay.ID,
		Method:    pay.Method,
		OrderID:   pay.OrderID,
		AmountDue: pay.Amount.StringFixed(2),
	}
	if pay.Method == MethodRazorpay {
		res.KeyID = s.gateway.KeyID()
	}

	return res, nil
}

// Confirm processes the gateway's completion callback. The signature is
// recomputed over "orderID|paymentRef" with the shared secret and compared
// byte for byte; any mismatch rejects the completion without touching state.
func (s *Service) Confirm(ctx context.Context, paymentID uuid.UUID, orderID, paymentRef, signature string) error {
	if !VerifySignature(s.secret, orderID, paymentRef, signature) {
		slog.Warn("payment signature rejected", "payment_id", paymentID, "order_id", orderID)
		return ErrInvalidSignature
	}

	pay, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	if pay.OrderID != orderID {
		return ErrInvalidSignature
	}

	if pay.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}

	if err := s.repo.CompletePayment(ctx, paymentID, paymentRef); err != nil {
		return fmt.Errorf("completing payment: %w", err)
	}

	slog.Info("payment completed",
		"payment_id", paymentID,
		"participant_id", pay.ParticipantID,
		"amount", pay.Amount.StringFixed(2),
	)

	return nil
}
