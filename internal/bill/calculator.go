package bill

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billsnap/billsnap/internal/money"
)

// ComputeShare calculates one participant's owed amount.
//
// An item claimed by N participants contributes 1/N of its extended price to
// each claimant's raw subtotal. The subtotal is then scaled by
// statedTotal/itemsGrandTotal, which distributes taxes, service charges and
// discounts proportionally to consumption. Rounding to two decimals happens
// once, at the end.
//
// allClaims must include the claims of the participant being computed, since
// co-claimant counts are derived from it.
func ComputeShare(
	items []Item,
	claimed []uuid.UUID,
	allClaims map[uuid.UUID][]uuid.UUID,
	statedTotal decimal.Decimal,
) (decimal.Decimal, error) {
	if len(claimed) == 0 {
		return money.Zero, nil
	}

	idx := itemIndex(items)

	grandTotal := decimal.Zero
	for _, it := range items {
		grandTotal = grandTotal.Add(it.ExtendedPrice())
	}

	if grandTotal.IsZero() {
		return money.Zero, nil
	}

	counts := claimantCounts(allClaims)

	raw := decimal.Zero

	for _, id := range dedupe(claimed) {
		it, ok := idx[id]
		if !ok {
			return money.Zero, fmt.Errorf("%w: %s", ErrItemNotInBill, id)
		}

		n := counts[id]
		if n < 1 {
			n = 1
		}

		raw = raw.Add(it.ExtendedPrice().Div(decimal.NewFromInt(int64(n))))
	}

	ratio := raw.Div(grandTotal)

	return money.Round2(statedTotal.Mul(ratio)), nil
}

// ComputeAllShares recomputes the owed share for every participant of the
// bill. Because shared items couple participants together, any membership or
// claim change invalidates every share, not just the changed participant's.
func ComputeAllShares(b *Bill) (map[uuid.UUID]decimal.Decimal, error) {
	allClaims := make(map[uuid.UUID][]uuid.UUID, len(b.Participants))
	for _, p := range b.Participants {
		allClaims[p.ID] = p.ClaimedItemIDs
	}

	shares := make(map[uuid.UUID]decimal.Decimal, len(b.Participants))

	for _, p := range b.Participants {
		share, err := ComputeShare(b.Items, p.ClaimedItemIDs, allClaims, b.StatedTotal)
		if err != nil {
			return nil, fmt.Errorf("computing share for participant %s: %w", p.ID, err)
		}

		shares[p.ID] = share
	}

	return shares, nil
}

// claimantCounts returns, per item, how many distinct participants claim it.
// A participant claiming the same item twice counts once.
func claimantCounts(allClaims map[uuid.UUID][]uuid.UUID) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)

	for _, itemIDs := range allClaims {
		for _, id := range dedupe(itemIDs) {
			counts[id]++
		}
	}

	return counts
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}

		out = append(out, id)
	}

	return out
}
