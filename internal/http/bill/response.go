package bill

import (
	"time"

	"github.com/google/uuid"

	"github.com/billsnap/billsnap/internal/bill"
)

type itemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category,omitempty"`
}

type participantResponse struct {
	ID             uuid.UUID   `json:"id"`
	DisplayName    string      `json:"display_name"`
	ContactPhone   string      `json:"contact_phone,omitempty"`
	ClaimedItemIDs []uuid.UUID `json:"claimed_item_ids"`
	OwedShare      string      `json:"owed_share"`
	IsSettled      bool        `json:"is_settled"`
	CreatedAt      time.Time   `json:"created_at"`
}

type billResponse struct {
	ID             uuid.UUID             `json:"id"`
	ShareID        string                `json:"share_id"`
	Title          string                `json:"title"`
	RestaurantName string                `json:"restaurant_name,omitempty"`
	ImageURL       string                `json:"image_url,omitempty"`
	StatedTotal    string                `json:"stated_total"`
	Status         bill.Status           `json:"status"`
	Items          []itemResponse        `json:"items"`
	Participants   []participantResponse `json:"participants"`
	CreatedAt      time.Time             `json:"created_at"`
}

func toItemResponse(it bill.Item) itemResponse {
	return itemResponse{
		ID:        it.ID,
		Name:      it.Name,
		UnitPrice: it.UnitPrice.StringFixed(2),
		Quantity:  it.Quantity,
		Category:  it.Category,
	}
}

func toParticipantResponse(p *bill.Participant) participantResponse {
	claimed := p.ClaimedItemIDs
	if claimed == nil {
		claimed = []uuid.UUID{}
	}

	return participantResponse{
		ID:             p.ID,
		DisplayName:    p.DisplayName,
		ContactPhone:   p.ContactPhone,
		ClaimedItemIDs: claimed,
		OwedShare:      p.OwedShare.StringFixed(2),
		IsSettled:      p.IsSettled,
		CreatedAt:      p.CreatedAt,
	}
}

func toResponse(b *bill.Bill) billResponse {
	items := make([]itemResponse, len(b.Items))
	for i, it := range b.Items {
		items[i] = toItemResponse(it)
	}

	participants := make([]participantResponse, len(b.Participants))
	for i := range b.Participants {
		participants[i] = toParticipantResponse(&b.Participants[i])
	}

	return billResponse{
		ID:             b.ID,
		ShareID:        b.ShareID,
		Title:          b.Title,
		RestaurantName: b.RestaurantName,
		ImageURL:       b.ImageURL,
		StatedTotal:    b.StatedTotal.StringFixed(2),
		Status:         b.Status,
		Items:          items,
		Participants:   participants,
		CreatedAt:      b.CreatedAt,
	}
}

func toResponseList(bills []*bill.Bill) []billResponse {
	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toResponse(b)
	}

	return resp
}
