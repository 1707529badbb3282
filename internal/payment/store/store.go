package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/billsnap/billsnap/internal/payment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (bill_id, participant_id, amount, method, status, order_id, payment_ref, payer_upi, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.BillID,
		p.ParticipantID,
		p.Amount,
		p.Method,
		p.Status,
		nullString(p.OrderID),
		nullString(p.PaymentRef),
		nullString(p.PayerUPI),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `
		SELECT id, bill_id, participant_id, amount, method, status, order_id, payment_ref, payer_upi, created_at, updated_at
		FROM payments WHERE id = $1
	`

	p := &payment.Payment{}

	var orderID, paymentRef, payerUPI sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.BillID, &p.ParticipantID, &p.Amount, &p.Method, &p.Status,
		&orderID, &paymentRef, &payerUPI, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	p.OrderID = orderID.String
	p.PaymentRef = paymentRef.String
	p.PayerUPI = payerUPI.String

	return p, nil
}

// CompletePayment flips the payment to COMPLETED and settles the paying
// participant atomically. If every participant of the bill is then settled,
// the bill itself is marked settled.
func (s *Store) CompletePayment(ctx context.Context, id uuid.UUID, paymentRef string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var participantID, billID uuid.UUID

	err = tx.QueryRowContext(ctx, `
		UPDATE payments
		SET status = $1, payment_ref = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING participant_id, bill_id
	`, payment.StatusCompleted, paymentRef, id).Scan(&participantID, &billID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payment.ErrNotFound
		}

		return fmt.Errorf("completing payment: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE participants SET is_settled = TRUE WHERE id = $1", participantID,
	); err != nil {
		return fmt.Errorf("settling participant: %w", err)
	}

	if err := refreshBillStatus(ctx, tx, billID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing payment completion: %w", err)
	}

	return nil
}

func (s *Store) SetParticipantSettled(ctx context.Context, participantID uuid.UUID, settled bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var billID uuid.UUID

	err = tx.QueryRowContext(ctx,
		"UPDATE participants SET is_settled = $1 WHERE id = $2 RETURNING bill_id",
		settled, participantID,
	).Scan(&billID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payment.ErrNotFound
		}

		return fmt.Errorf("updating participant: %w", err)
	}

	if err := refreshBillStatus(ctx, tx, billID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing settlement update: %w", err)
	}

	return nil
}

func refreshBillStatus(ctx context.Context, tx *sql.Tx, billID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE bills SET status = CASE
			WHEN NOT EXISTS (
				SELECT 1 FROM participants WHERE bill_id = $1 AND NOT is_settled
			) AND EXISTS (
				SELECT 1 FROM participants WHERE bill_id = $1
			) THEN 'settled'
			ELSE 'open'
		END
		WHERE id = $1
	`, billID)
	if err != nil {
		return fmt.Errorf("refreshing bill status: %w", err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
