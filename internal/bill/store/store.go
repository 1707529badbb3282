package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/billsnap/billsnap/internal/bill"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const uniqueViolation = "23505"

func (s *Store) CreateBill(ctx context.Context, b *bill.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bills (share_id, title, restaurant_name, image_url, stated_total, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		b.ShareID,
		b.Title,
		b.RestaurantName,
		b.ImageURL,
		b.StatedTotal,
		b.Status,
		b.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return bill.ErrShareIDTaken
		}

		return fmt.Errorf("creating bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (bill_id, name, unit_price, quantity, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	for i := range b.Items {
		item := &b.Items[i]

		err := tx.QueryRowContext(ctx, itemQuery,
			b.ID,
			item.Name,
			item.UnitPrice,
			item.Quantity,
			item.Category,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("creating bill item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bill: %w", err)
	}

	return nil
}

func (s *Store) GetBillByShareID(ctx context.Context, shareID string) (*bill.Bill, error) {
	var id uuid.UUID

	err := s.db.QueryRowContext(ctx, "SELECT id FROM bills WHERE share_id = $1", shareID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bill.ErrNotFound
		}

		return nil, fmt.Errorf("resolving share id: %w", err)
	}

	return getBill(ctx, s.db, id)
}

func (s *Store) ListBillsByOwner(ctx context.Context, ownerID string) ([]*bill.Bill, error) {
	return listBills(ctx, s.db,
		`SELECT id, share_id, title, restaurant_name, image_url, stated_total, status, created_by, created_at
		 FROM bills WHERE created_by = $1 ORDER BY created_at DESC`, ownerID)
}

func (s *Store) ListRecentBills(ctx context.Context, limit int) ([]*bill.Bill, error) {
	return listBills(ctx, s.db,
		`SELECT id, share_id, title, restaurant_name, image_url, stated_total, status, created_by, created_at
		 FROM bills ORDER BY created_at DESC LIMIT $1`, limit)
}

func (s *Store) DeleteBill(ctx context.Context, id uuid.UUID) error {
	// Items, participants, claims and payments go with it via FK cascade.
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return bill.ErrNotFound
	}

	return nil
}

// billLockKey derives the advisory lock key serializing claim mutations on
// one bill.
func billLockKey(billID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte(billID.String()))

	return int64(h.Sum64())
}

type updateTx struct {
	tx     *sql.Tx
	billID uuid.UUID
}

func (s *Store) BeginUpdate(ctx context.Context, billID uuid.UUID) (bill.UpdateTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning update tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", billLockKey(billID)); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("acquiring bill lock: %w", err)
	}

	return &updateTx{tx: tx, billID: billID}, nil
}

func (u *updateTx) Commit() error   { return u.tx.Commit() }
func (u *updateTx) Rollback() error { return u.tx.Rollback() }

func (u *updateTx) GetBill(ctx context.Context) (*bill.Bill, error) {
	return getBill(ctx, u.tx, u.billID)
}

func (u *updateTx) CreateParticipant(ctx context.Context, p *bill.Participant) error {
	query := `
		INSERT INTO participants (bill_id, display_name, contact_phone, owed_share, is_settled, created_at)
		VALUES ($1, $2, $3, 0, FALSE, NOW())
		RETURNING id, created_at
	`

	err := u.tx.QueryRowContext(ctx, query,
		p.BillID,
		p.DisplayName,
		nullString(p.ContactPhone),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating participant: %w", err)
	}

	return insertClaims(ctx, u.tx, p.ID, p.ClaimedItemIDs)
}

func (u *updateTx) UpdateParticipantClaims(ctx context.Context, participantID uuid.UUID, itemIDs []uuid.UUID) error {
	if _, err := u.tx.ExecContext(ctx,
		"DELETE FROM participant_claims WHERE participant_id = $1", participantID,
	); err != nil {
		return fmt.Errorf("clearing claims: %w", err)
	}

	return insertClaims(ctx, u.tx, participantID, itemIDs)
}

func (u *updateTx) UpdateOwedShares(ctx context.Context, shares map[uuid.UUID]decimal.Decimal) error {
	query := "UPDATE participants SET owed_share = $1 WHERE id = $2"

	for participantID, share := range shares {
		if _, err := u.tx.ExecContext(ctx, query, share, participantID); err != nil {
			return fmt.Errorf("updating owed share: %w", err)
		}
	}

	return nil
}

func insertClaims(ctx context.Context, tx *sql.Tx, participantID uuid.UUID, itemIDs []uuid.UUID) error {
	query := "INSERT INTO participant_claims (participant_id, item_id) VALUES ($1, $2)"

	for _, itemID := range itemIDs {
		if _, err := tx.ExecContext(ctx, query, participantID, itemID); err != nil {
			return fmt.Errorf("inserting claim: %w", err)
		}
	}

	return nil
}

func getBill(ctx context.Context, q querier, id uuid.UUID) (*bill.Bill, error) {
	b := &bill.Bill{}

	var restaurant, imageURL sql.NullString

	err := q.QueryRowContext(ctx,
		`SELECT id, share_id, title, restaurant_name, image_url, stated_total, status, created_by, created_at
		 FROM bills WHERE id = $1`, id,
	).Scan(&b.ID, &b.ShareID, &b.Title, &restaurant, &imageURL, &b.StatedTotal, &b.Status, &b.CreatedBy, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bill.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill: %w", err)
	}

	b.RestaurantName = restaurant.String
	b.ImageURL = imageURL.String

	items, err := getItems(ctx, q, id)
	if err != nil {
		return nil, err
	}

	b.Items = items

	participants, err := getParticipants(ctx, q, id)
	if err != nil {
		return nil, err
	}

	b.Participants = participants

	return b, nil
}

func getItems(ctx context.Context, q querier, billID uuid.UUID) ([]bill.Item, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, unit_price, quantity, category
		 FROM bill_items WHERE bill_id = $1 ORDER BY id`, billID)
	if err != nil {
		return nil, fmt.Errorf("getting items: %w", err)
	}
	defer rows.Close()

	var items []bill.Item

	for rows.Next() {
		var (
			item     bill.Item
			category sql.NullString
		)

		if err := rows.Scan(&item.ID, &item.Name, &item.UnitPrice, &item.Quantity, &category); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		item.Category = category.String

		items = append(items, item)
	}

	return items, rows.Err()
}

func getParticipants(ctx context.Context, q querier, billID uuid.UUID) ([]bill.Participant, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, bill_id, display_name, contact_phone, owed_share, is_settled, created_at
		 FROM participants WHERE bill_id = $1 ORDER BY created_at, id`, billID)
	if err != nil {
		return nil, fmt.Errorf("getting participants: %w", err)
	}
	defer rows.Close()

	var participants []bill.Participant

	for rows.Next() {
		var (
			p     bill.Participant
			phone sql.NullString
		)

		if err := rows.Scan(&p.ID, &p.BillID, &p.DisplayName, &phone, &p.OwedShare, &p.IsSettled, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}

		p.ContactPhone = phone.String

		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating participants: %w", err)
	}

	claimRows, err := q.QueryContext(ctx,
		`SELECT pc.participant_id, pc.item_id
		 FROM participant_claims pc
		 JOIN participants p ON p.id = pc.participant_id
		 WHERE p.bill_id = $1`, billID)
	if err != nil {
		return nil, fmt.Errorf("getting claims: %w", err)
	}
	defer claimRows.Close()

	claims := make(map[uuid.UUID][]uuid.UUID)

	for claimRows.Next() {
		var participantID, itemID uuid.UUID

		if err := claimRows.Scan(&participantID, &itemID); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}

		claims[participantID] = append(claims[participantID], itemID)
	}

	if err := claimRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating claims: %w", err)
	}

	for i := range participants {
		participants[i].ClaimedItemIDs = claims[participants[i].ID]
	}

	return participants, nil
}

func listBills(ctx context.Context, q querier, query string, arg any) ([]*bill.Bill, error) {
	rows, err := q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	var bills []*bill.Bill

	for rows.Next() {
		b := &bill.Bill{}

		var restaurant, imageURL sql.NullString

		if err := rows.Scan(&b.ID, &b.ShareID, &b.Title, &restaurant, &imageURL,
			&b.StatedTotal, &b.Status, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		b.RestaurantName = restaurant.String
		b.ImageURL = imageURL.String

		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bills: %w", err)
	}

	for _, b := range bills {
		items, err := getItems(ctx, q, b.ID)
		if err != nil {
			return nil, err
		}

		b.Items = items

		participants, err := getParticipants(ctx, q, b.ID)
		if err != nil {
			return nil, err
		}

		b.Participants = participants
	}

	return bills, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
