package bill

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a bill.
type Status string

const (
	StatusOpen    Status = "open"
	StatusSettled Status = "settled"
)

// Bill is the aggregate root for one receipt and its splitting session.
// Items are frozen at creation; participants attach themselves afterwards
// via the public share token.
type Bill struct {
	ID             uuid.UUID
	ShareID        string
	Title          string
	RestaurantName string
	ImageURL       string
	// StatedTotal is the authoritative bill amount. It may differ from the
	// sum of item extended prices (taxes, service charge, manual correction).
	StatedTotal  decimal.Decimal
	Status       Status
	CreatedBy    string // opaque identity-provider user id
	Items        []Item
	Participants []Participant
	CreatedAt    time.Time
}

// Item is a single line on the bill. Immutable once the bill exists.
type Item struct {
	ID        uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Category  string
}

// ExtendedPrice is unit price times quantity for this line.
func (i Item) ExtendedPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Participant is a person who joined a bill to claim items. OwedShare is
// always derived from the claims, never hand-set.
type Participant struct {
	ID             uuid.UUID
	BillID         uuid.UUID
	DisplayName    string
	ContactPhone   string
	ClaimedItemIDs []uuid.UUID
	OwedShare      decimal.Decimal
	IsSettled      bool
	CreatedAt      time.Time
}

var (
	ErrNotFound            = errors.New("bill not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrItemNotInBill       = errors.New("item does not belong to this bill")
	ErrNameRequired        = errors.New("display name is required")
	ErrNoItemsSelected     = errors.New("at least one item must be selected")
	ErrNoItems             = errors.New("bill must have at least one item")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrNotOwner            = errors.New("only the bill owner may perform this action")
	ErrParticipantSettled  = errors.New("participant has already settled")
	ErrShareIDTaken        = errors.New("share id already in use")
)

// itemIndex maps item ids to items for claim validation and pricing.
func itemIndex(items []Item) map[uuid.UUID]Item {
	idx := make(map[uuid.UUID]Item, len(items))
	for _, it := range items {
		idx[it.ID] = it
	}

	return idx
}

// HasItem reports whether the bill contains the given item id.
func (b *Bill) HasItem(id uuid.UUID) bool {
	for _, it := range b.Items {
		if it.ID == id {
			return true
		}
	}

	return false
}

// FindParticipant returns the participant with the given id, or nil.
func (b *Bill) FindParticipant(id uuid.UUID) *Participant {
	for i := range b.Participants {
		if b.Participants[i].ID == id {
			return &b.Participants[i]
		}
	}

	return nil
}
