package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method is how a participant settles their share.
type Method string

const (
	MethodRazorpay  Method = "RAZORPAY"
	MethodManualUPI Method = "MANUAL_UPI"
)

// Status is the lifecycle state of a payment attempt. A payment starts
// PENDING and moves to COMPLETED only after the gateway callback passes the
// signature check.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Payment records one settlement attempt by a participant.
type Payment struct {
	ID            uuid.UUID
	BillID        uuid.UUID
	ParticipantID uuid.UUID
	Amount        decimal.Decimal
	Method        Method
	Status        Status
	OrderID       string // gateway order id, empty for manual UPI
	PaymentRef    string // gateway payment id, set on completion
	PayerUPI      string // payer's UPI handle for the manual flow
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

var (
	ErrNotFound         = errors.New("payment not found")
	ErrInvalidSignature = errors.New("payment signature verification failed")
	ErrAlreadyCompleted = errors.New("payment already completed")
	ErrGatewayDisabled  = errors.New("payment gateway is not configured")
)
