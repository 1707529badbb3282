package payment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/billsnap/billsnap/internal/bill"
	"github.com/billsnap/billsnap/internal/payment"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	repo     *payment.MockRepository
	gateway  *payment.MockGateway
	billRepo *bill.MockRepository
	svc      *payment.Service
}

func newFixture(t *testing.T, secret string) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     payment.NewMockRepository(ctrl),
		gateway:  payment.NewMockGateway(ctrl),
		billRepo: bill.NewMockRepository(ctrl),
	}
	f.svc = payment.NewService(f.repo, f.gateway, bill.NewService(f.billRepo), secret)

	return f
}

func testBill() (*bill.Bill, *bill.Participant) {
	b := &bill.Bill{
		ID:          uuid.New(),
		ShareID:     "Xy3kPz7q",
		Title:       "Dinner",
		StatedTotal: amount("550"),
		Status:      bill.StatusOpen,
		CreatedBy:   "owner-1",
	}

	p := bill.Participant{
		ID:          uuid.New(),
		BillID:      b.ID,
		DisplayName: "Asha",
		OwedShare:   amount("440"),
	}
	b.Participants = []bill.Participant{p}

	return b, &b.Participants[0]
}

func TestService_Start_GatewayFlow(t *testing.T) {
	f := newFixture(t, "secret")
	b, p := testBill()

	f.billRepo.EXPECT().GetBillByShareID(gomock.Any(), b.ShareID).Return(b, nil)
	f.gateway.EXPECT().Configured().Return(true)
	f.gateway.EXPECT().
		CreateOrder(gomock.Any(), int64(44000), "INR", gomock.Any()).
		Return("order_123", nil)
	f.gateway.EXPECT().KeyID().Return("rzp_test_abc")
	f.repo.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pay *payment.Payment) error {
			pay.ID = uuid.New()
			return nil
		})

	res, err := f.svc.Start(context.Background(), payment.StartParams{
		ShareID:       b.ShareID,
		ParticipantID: p.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, payment.MethodRazorpay, res.Method)
	assert.Equal(t, "order_123", res.OrderID)
	assert.Equal(t, "rzp_test_abc", res.KeyID)
	assert.Equal(t, "440.00", res.AmountDue)
	assert.NotEmpty(t, res.PaymentID)
}

func TestService_Start_ManualFallback(t *testing.T) {
	f := newFixture(t, "secret")
	b, p := testBill()

	f.billRepo.EXPECT().GetBillByShareID(gomock.Any(), b.ShareID).Return(b, nil)
	f.gateway.EXPECT().Configured().Return(false)

	var created *payment.Payment
	f.repo.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pay *payment.Payment) error {
			pay.ID = uuid.New()
			created = pay
			return nil
		})

	res, err := f.svc.Start(context.Background(), payment.StartParams{
		ShareID:       b.ShareID,
		ParticipantID: p.ID,
		PayerUPI:      "asha@upi",
	})

	require.NoError(t, err)
	assert.Equal(t, payment.MethodManualUPI, res.Method)
	assert.Empty(t, res.OrderID)
	assert.Empty(t, res.KeyID)
	assert.Equal(t, "440.00", res.AmountDue)

	require.NotNil(t, created)
	assert.Equal(t, "asha@upi", created.PayerUPI)
	assert.Equal(t, payment.StatusPending, created.Status)
}

func TestService_Start_SettledParticipant(t *testing.T) {
	f := newFixture(t, "secret")
	b, p := testBill()
	p.IsSettled = true

	f.billRepo.EXPECT().GetBillByShareID(gomock.Any(), b.ShareID).Return(b, nil)

	_, err := f.svc.Start(context.Background(), payment.StartParams{
		ShareID:       b.ShareID,
		ParticipantID: p.ID,
	})

	assert.ErrorIs(t, err, payment.ErrAlreadyCompleted)
}

func TestService_Start_ParticipantNotFound(t *testing.T) {
	f := newFixture(t, "secret")
	b, _ := testBill()

	f.billRepo.EXPECT().GetBillByShareID(gomock.Any(), b.ShareID).Return(b, nil)

	_, err := f.svc.Start(context.Background(), payment.StartParams{
		ShareID:       b.ShareID,
		ParticipantID: uuid.New(),
	})

	assert.ErrorIs(t, err, bill.ErrParticipantNotFound)
}

func TestService_Confirm(t *testing.T) {
	f := newFixture(t, "s")
	paymentID := uuid.New()

	f.repo.EXPECT().GetPayment(gomock.Any(), paymentID).Return(&payment.Payment{
		ID:      paymentID,
		OrderID: "o1",
		Status:  payment.StatusPending,
		Amount:  amount("440"),
	}, nil)
	f.repo.EXPECT().CompletePayment(gomock.Any(), paymentID, "p1").Return(nil)

	err := f.svc.Confirm(context.Background(), paymentID, "o1", "p1", gatewaySignature("s", "o1", "p1"))
	assert.NoError(t, err)
}

func TestService_Confirm_InvalidSignature(t *testing.T) {
	// No repository expectations: a bad signature must be rejected before any
	// state is read or written.
	f := newFixture(t, "s")

	err := f.svc.Confirm(context.Background(), uuid.New(), "o1", "p1", "deadbeef")
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
}

func TestService_Confirm_SignedForDifferentOrder(t *testing.T) {
	f := newFixture(t, "s")
	paymentID := uuid.New()

	// Signature is valid for o2 but the stored payment belongs to o1.
	f.repo.EXPECT().GetPayment(gomock.Any(), paymentID).Return(&payment.Payment{
		ID:      paymentID,
		OrderID: "o1",
		Status:  payment.StatusPending,
	}, nil)

	err := f.svc.Confirm(context.Background(), paymentID, "o2", "p1", gatewaySignature("s", "o2", "p1"))
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
}

func TestService_Confirm_AlreadyCompleted(t *testing.T) {
	f := newFixture(t, "s")
	paymentID := uuid.New()

	f.repo.EXPECT().GetPayment(gomock.Any(), paymentID).Return(&payment.Payment{
		ID:      paymentID,
		OrderID: "o1",
		Status:  payment.StatusCompleted,
	}, nil)

	err := f.svc.Confirm(context.Background(), paymentID, "o1", "p1", gatewaySignature("s", "o1", "p1"))
	assert.ErrorIs(t, err, payment.ErrAlreadyCompleted)
}

func TestService_SelfReport(t *testing.T) {
	f := newFixture(t, "secret")
	b, p := testBill()

	f.billRepo.EXPECT().GetBillByShareID(gomock.Any(), b.ShareID).Return(b, nil)
	f.repo.EXPECT().SetParticipantSettled(gomock.Any(), p.ID, true).Return(nil)

	err := f.svc.SelfReport(context.Background(), b.ShareID, p.ID)
	assert.NoError(t, err)
}

func TestService_SelfReport_ParticipantNotFound(t *testing.T) {
	f := newFixture(t, "secret")
	b, _ := testBill()

	f.billRepo.EXPECT().GetBillByShareID(gomock.Any(), b.ShareID).Return(b, nil)

	err := f.svc.SelfReport(context.Background(), b.ShareID, uuid.New())
	assert.ErrorIs(t, err, bill.ErrParticipantNotFound)
}

func TestService_MarkUnpaid(t *testing.T) {
	f := newFixture(t, "secret")
	b, p := testBill()
	p.IsSettled = true

	f.billRepo.EXPECT().GetBillByShareID(gomock.Any(), b.ShareID).Return(b, nil)
	f.repo.EXPECT().SetParticipantSettled(gomock.Any(), p.ID, false).Return(nil)

	err := f.svc.MarkUnpaid(context.Background(), b.ShareID, p.ID, "owner-1")
	assert.NoError(t, err)
}

func TestService_MarkUnpaid_NotOwner(t *testing.T) {
	f := newFixture(t, "secret")
	b, p := testBill()

	f.billRepo.EXPECT().GetBillByShareID(gomock.Any(), b.ShareID).Return(b, nil)

	err := f.svc.MarkUnpaid(context.Background(), b.ShareID, p.ID, "someone-else")
	assert.ErrorIs(t, err, bill.ErrNotOwner)
}
