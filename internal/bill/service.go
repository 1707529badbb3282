package bill

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=bill
type Repository interface {
	CreateBill(ctx context.Context, b *Bill) error
	GetBillByShareID(ctx context.Context, shareID string) (*Bill, error)
	ListBillsByOwner(ctx context.Context, ownerID string) ([]*Bill, error)
	ListRecentBills(ctx context.Context, limit int) ([]*Bill, error)
	DeleteBill(ctx context.Context, id uuid.UUID) error

	// BeginUpdate opens a transaction that serializes all claim mutations on
	// the given bill. Concurrent joins on the same bill queue behind each
	// other; bills remain independent.
	BeginUpdate(ctx context.Context, billID uuid.UUID) (UpdateTx, error)
}

// UpdateTx is a per-bill mutation transaction. GetBill returns the aggregate
// as seen under the bill lock, so share recomputation never runs against a
// stale view of another participant's claims.
type UpdateTx interface {
	GetBill(ctx context.Context) (*Bill, error)
	CreateParticipant(ctx context.Context, p *Participant) error
	UpdateParticipantClaims(ctx context.Context, participantID uuid.UUID, itemIDs []uuid.UUID) error
	UpdateOwedShares(ctx context.Context, shares map[uuid.UUID]decimal.Decimal) error
	Commit() error
	Rollback() error
}

// Service implements bill creation and the participation ledger: who claimed
// which items, and the owed share recomputation that keeps the sum of shares
// reconciled against the stated total.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateItemParams struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Category  string
}

type CreateParams struct {
	Title          string
	RestaurantName string
	ImageURL       string
	StatedTotal    decimal.Decimal
	Items          []CreateItemParams
}

// maxShareIDAttempts bounds the retry loop for token collisions. With a
// 58^8 token space a second collision in a row is effectively impossible.
const maxShareIDAttempts = 5

// Create validates and persists a new bill with its items. Items are frozen
// from this point on.
func (s *Service) Create(ctx context.Context, ownerID string, params CreateParams) (*Bill, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("%w: title", ErrNameRequired)
	}

	if len(params.Items) == 0 {
		return nil, ErrNoItems
	}

	if !params.StatedTotal.IsPositive() {
		return nil, fmt.Errorf("%w: stated total", ErrInvalidAmount)
	}

	items := make([]Item, len(params.Items))

	for i, ip := range params.Items {
		if strings.TrimSpace(ip.Name) == "" {
			return nil, fmt.Errorf("%w: item %d name", ErrNameRequired, i+1)
		}

		if ip.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %q price", ErrInvalidAmount, ip.Name)
		}

		qty := ip.Quantity
		if qty <= 0 {
			qty = 1
		}

		items[i] = Item{
			Name:      strings.TrimSpace(ip.Name),
			UnitPrice: ip.UnitPrice,
			Quantity:  qty,
			Category:  ip.Category,
		}
	}

	b := &Bill{
		Title:          strings.TrimSpace(params.Title),
		RestaurantName: strings.TrimSpace(params.RestaurantName),
		ImageURL:       params.ImageURL,
		StatedTotal:    params.StatedTotal,
		Status:         StatusOpen,
		CreatedBy:      ownerID,
		Items:          items,
	}

	for attempt := 0; attempt < maxShareIDAttempts; attempt++ {
		shareID, err := NewShareID()
		if err != nil {
			return nil, err
		}

		b.ShareID = shareID

		err = s.repo.CreateBill(ctx, b)
		if err == nil {
			return b, nil
		}

		if !errors.Is(err, ErrShareIDTaken) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("creating bill: %w", ErrShareIDTaken)
}

// GetByShareID fetches the full aggregate for the public bill page. This is
// also the polling endpoint participants use to observe each other's joins
// and payments.
func (s *Service) GetByShareID(ctx context.Context, shareID string) (*Bill, error) {
	return s.repo.GetBillByShareID(ctx, shareID)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*Bill, error) {
	return s.repo.ListBillsByOwner(ctx, ownerID)
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Bill, error) {
	return s.repo.ListRecentBills(ctx, limit)
}

// Delete removes the bill and its whole aggregate. Owner only.
func (s *Service) Delete(ctx context.Context, shareID, ownerID string) error {
	b, err := s.repo.GetBillByShareID(ctx, shareID)
	if err != nil {
		return err
	}

	if b.CreatedBy != ownerID {
		return ErrNotOwner
	}

	return s.repo.DeleteBill(ctx, b.ID)
}

type JoinParams struct {
	DisplayName  string
	ContactPhone string
	ItemIDs      []uuid.UUID
}

// Join creates a participant claiming the given items and recomputes every
// participant's owed share under the bill lock. Two joins with the same
// display name create two distinct participants; there is no participant cap.
func (s *Service) Join(ctx context.Context, shareID string, params JoinParams) (*Participant, error) {
	name := strings.TrimSpace(params.DisplayName)
	if name == "" {
		return nil, ErrNameRequired
	}

	if len(params.ItemIDs) == 0 {
		return nil, ErrNoItemsSelected
	}

	b, err := s.repo.GetBillByShareID(ctx, shareID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginUpdate(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("beginning join: %w", err)
	}
	defer tx.Rollback()

	// Re-read under the lock: another join may have committed since the
	// unlocked fetch above.
	b, err = tx.GetBill(ctx)
	if err != nil {
		return nil, err
	}

	itemIDs := dedupe(params.ItemIDs)
	for _, id := range itemIDs {
		if !b.HasItem(id) {
			return nil, fmt.Errorf("%w: %s", ErrItemNotInBill, id)
		}
	}

	p := &Participant{
		BillID:         b.ID,
		DisplayName:    name,
		ContactPhone:   strings.TrimSpace(params.ContactPhone),
		ClaimedItemIDs: itemIDs,
	}

	if err := tx.CreateParticipant(ctx, p); err != nil {
		return nil, fmt.Errorf("creating participant: %w", err)
	}

	b.Participants = append(b.Participants, *p)

	shares, err := ComputeAllShares(b)
	if err != nil {
		return nil, err
	}

	if err := tx.UpdateOwedShares(ctx, shares); err != nil {
		return nil, fmt.Errorf("updating owed shares: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing join: %w", err)
	}

	p.OwedShare = shares[p.ID]

	return p, nil
}

// UpdateClaims replaces a participant's claimed items and recomputes all
// shares. An empty set is allowed here (unlike Join) and yields a zero share.
// Settled participants are frozen.
func (s *Service) UpdateClaims(ctx context.Context, shareID string, participantID uuid.UUID, itemIDs []uuid.UUID) (*Participant, error) {
	b, err := s.repo.GetBillByShareID(ctx, shareID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginUpdate(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("beginning claim update: %w", err)
	}
	defer tx.Rollback()

	b, err = tx.GetBill(ctx)
	if err != nil {
		return nil, err
	}

	p := b.FindParticipant(participantID)
	if p == nil {
		return nil, ErrParticipantNotFound
	}

	if p.IsSettled {
		return nil, ErrParticipantSettled
	}

	ids := dedupe(itemIDs)
	for _, id := range ids {
		if !b.HasItem(id) {
			return nil, fmt.Errorf("%w: %s", ErrItemNotInBill, id)
		}
	}

	if err := tx.UpdateParticipantClaims(ctx, participantID, ids); err != nil {
		return nil, fmt.Errorf("updating claims: %w", err)
	}

	p.ClaimedItemIDs = ids

	shares, err := ComputeAllShares(b)
	if err != nil {
		return nil, err
	}

	if err := tx.UpdateOwedShares(ctx, shares); err != nil {
		return nil, fmt.Errorf("updating owed shares: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing claim update: %w", err)
	}

	p.OwedShare = shares[p.ID]

	return p, nil
}
