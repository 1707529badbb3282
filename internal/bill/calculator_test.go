package bill_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billsnap/billsnap/internal/bill"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeShare_ProportionalScaling(t *testing.T) {
	pizza := bill.Item{ID: uuid.New(), Name: "Pizza", UnitPrice: amount("400"), Quantity: 1}
	coke := bill.Item{ID: uuid.New(), Name: "Coke", UnitPrice: amount("100"), Quantity: 1}
	items := []bill.Item{pizza, coke}

	// Item total is 500 but the printed total is 550; the extra 50 of tax
	// must be distributed proportionally to what each person ate.
	stated := amount("550")

	x := uuid.New()
	y := uuid.New()
	allClaims := map[uuid.UUID][]uuid.UUID{
		x: {pizza.ID},
		y: {coke.ID},
	}

	xShare, err := bill.ComputeShare(items, allClaims[x], allClaims, stated)
	require.NoError(t, err)
	assert.Equal(t, "440.00", xShare.StringFixed(2))

	yShare, err := bill.ComputeShare(items, allClaims[y], allClaims, stated)
	require.NoError(t, err)
	assert.Equal(t, "110.00", yShare.StringFixed(2))

	assert.Equal(t, "550.00", xShare.Add(yShare).StringFixed(2))
}

func TestComputeShare_SharedItemSplitsEvenly(t *testing.T) {
	pizza := bill.Item{ID: uuid.New(), Name: "Pizza", UnitPrice: amount("400"), Quantity: 1}
	coke := bill.Item{ID: uuid.New(), Name: "Coke", UnitPrice: amount("100"), Quantity: 1}
	items := []bill.Item{pizza, coke}
	stated := amount("550")

	x := uuid.New()
	y := uuid.New()
	allClaims := map[uuid.UUID][]uuid.UUID{
		x: {pizza.ID, coke.ID},
		y: {pizza.ID},
	}

	// Pizza is shared two ways (200 each), coke is X's alone.
	xShare, err := bill.ComputeShare(items, allClaims[x], allClaims, stated)
	require.NoError(t, err)
	assert.Equal(t, "330.00", xShare.StringFixed(2))

	yShare, err := bill.ComputeShare(items, allClaims[y], allClaims, stated)
	require.NoError(t, err)
	assert.Equal(t, "220.00", yShare.StringFixed(2))

	assert.Equal(t, "550.00", xShare.Add(yShare).StringFixed(2))
}

func TestComputeShare_TwoClaimantsSplitInHalf(t *testing.T) {
	item := bill.Item{ID: uuid.New(), Name: "Biryani", UnitPrice: amount("100"), Quantity: 1}
	items := []bill.Item{item}
	stated := amount("100")

	x := uuid.New()
	y := uuid.New()
	allClaims := map[uuid.UUID][]uuid.UUID{
		x: {item.ID},
		y: {item.ID},
	}

	for _, id := range []uuid.UUID{x, y} {
		share, err := bill.ComputeShare(items, allClaims[id], allClaims, stated)
		require.NoError(t, err)
		assert.Equal(t, "50.00", share.StringFixed(2))
	}
}

func TestComputeShare_ScalesWithStatedTotal(t *testing.T) {
	pizza := bill.Item{ID: uuid.New(), Name: "Pizza", UnitPrice: amount("400"), Quantity: 1}
	coke := bill.Item{ID: uuid.New(), Name: "Coke", UnitPrice: amount("100"), Quantity: 1}
	items := []bill.Item{pizza, coke}

	x := uuid.New()
	allClaims := map[uuid.UUID][]uuid.UUID{x: {pizza.ID}}

	base, err := bill.ComputeShare(items, allClaims[x], allClaims, amount("550"))
	require.NoError(t, err)

	doubled, err := bill.ComputeShare(items, allClaims[x], allClaims, amount("1100"))
	require.NoError(t, err)

	assert.True(t, doubled.Equal(base.Mul(amount("2"))),
		"share %s at doubled total is not double of %s", doubled, base)
}

func TestComputeShare_RoundingStaysWithinTolerance(t *testing.T) {
	item := bill.Item{ID: uuid.New(), Name: "Thali", UnitPrice: amount("100"), Quantity: 1}
	items := []bill.Item{item}
	stated := amount("100")

	claimants := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	allClaims := make(map[uuid.UUID][]uuid.UUID, len(claimants))
	for _, id := range claimants {
		allClaims[id] = []uuid.UUID{item.ID}
	}

	sum := decimal.Zero
	for _, id := range claimants {
		share, err := bill.ComputeShare(items, allClaims[id], allClaims, stated)
		require.NoError(t, err)
		assert.Equal(t, "33.33", share.StringFixed(2))

		sum = sum.Add(share)
	}

	// Per-participant rounding may drift from the stated total by at most
	// one paisa per participant.
	drift := stated.Sub(sum).Abs()
	tolerance := amount("0.01").Mul(decimal.NewFromInt(int64(len(claimants))))
	assert.True(t, drift.LessThanOrEqual(tolerance), "drift %s exceeds %s", drift, tolerance)
}

func TestComputeShare_QuantityMultiplies(t *testing.T) {
	beer := bill.Item{ID: uuid.New(), Name: "Beer", UnitPrice: amount("150"), Quantity: 4}
	naan := bill.Item{ID: uuid.New(), Name: "Naan", UnitPrice: amount("50"), Quantity: 2}
	items := []bill.Item{beer, naan}
	stated := amount("700")

	x := uuid.New()
	allClaims := map[uuid.UUID][]uuid.UUID{x: {beer.ID}}

	share, err := bill.ComputeShare(items, allClaims[x], allClaims, stated)
	require.NoError(t, err)
	assert.Equal(t, "600.00", share.StringFixed(2))
}

func TestComputeShare_EmptyClaims(t *testing.T) {
	item := bill.Item{ID: uuid.New(), Name: "Pizza", UnitPrice: amount("400"), Quantity: 1}

	share, err := bill.ComputeShare([]bill.Item{item}, nil, map[uuid.UUID][]uuid.UUID{}, amount("550"))
	require.NoError(t, err)
	assert.True(t, share.IsZero())
}

func TestComputeShare_ZeroGrandTotal(t *testing.T) {
	item := bill.Item{ID: uuid.New(), Name: "Freebie", UnitPrice: amount("0"), Quantity: 1}
	claims := map[uuid.UUID][]uuid.UUID{uuid.New(): {item.ID}}

	share, err := bill.ComputeShare([]bill.Item{item}, []uuid.UUID{item.ID}, claims, amount("100"))
	require.NoError(t, err)
	assert.True(t, share.IsZero())
}

func TestComputeShare_UnknownItem(t *testing.T) {
	item := bill.Item{ID: uuid.New(), Name: "Pizza", UnitPrice: amount("400"), Quantity: 1}
	stranger := uuid.New()

	_, err := bill.ComputeShare([]bill.Item{item}, []uuid.UUID{stranger}, map[uuid.UUID][]uuid.UUID{}, amount("550"))
	assert.ErrorIs(t, err, bill.ErrItemNotInBill)
}

func TestComputeShare_DuplicateClaimCountsOnce(t *testing.T) {
	item := bill.Item{ID: uuid.New(), Name: "Pizza", UnitPrice: amount("400"), Quantity: 1}
	x := uuid.New()
	allClaims := map[uuid.UUID][]uuid.UUID{x: {item.ID, item.ID}}

	share, err := bill.ComputeShare([]bill.Item{item}, allClaims[x], allClaims, amount("400"))
	require.NoError(t, err)
	assert.Equal(t, "400.00", share.StringFixed(2))
}

func TestComputeAllShares(t *testing.T) {
	pizza := bill.Item{ID: uuid.New(), Name: "Pizza", UnitPrice: amount("400"), Quantity: 1}
	coke := bill.Item{ID: uuid.New(), Name: "Coke", UnitPrice: amount("100"), Quantity: 1}

	x := bill.Participant{ID: uuid.New(), ClaimedItemIDs: []uuid.UUID{pizza.ID}}
	y := bill.Participant{ID: uuid.New(), ClaimedItemIDs: []uuid.UUID{coke.ID}}
	z := bill.Participant{ID: uuid.New()}

	b := &bill.Bill{
		StatedTotal:  amount("550"),
		Items:        []bill.Item{pizza, coke},
		Participants: []bill.Participant{x, y, z},
	}

	shares, err := bill.ComputeAllShares(b)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	assert.Equal(t, "440.00", shares[x.ID].StringFixed(2))
	assert.Equal(t, "110.00", shares[y.ID].StringFixed(2))
	assert.True(t, shares[z.ID].IsZero())
}

func TestComputeAllShares_Deterministic(t *testing.T) {
	pizza := bill.Item{ID: uuid.New(), Name: "Pizza", UnitPrice: amount("400"), Quantity: 1}
	x := bill.Participant{ID: uuid.New(), ClaimedItemIDs: []uuid.UUID{pizza.ID}}

	b := &bill.Bill{
		StatedTotal:  amount("472"),
		Items:        []bill.Item{pizza},
		Participants: []bill.Participant{x},
	}

	first, err := bill.ComputeAllShares(b)
	require.NoError(t, err)

	second, err := bill.ComputeAllShares(b)
	require.NoError(t, err)

	assert.True(t, first[x.ID].Equal(second[x.ID]))
}
