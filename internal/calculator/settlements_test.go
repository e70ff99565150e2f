package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/moneysplits/internal/models"
)

func balances(pairs ...string) []models.Balance {
	out := make([]models.Balance, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Balance{
			MemberID:   pairs[i],
			MemberName: pairs[i],
			Balance:    dec(pairs[i+1]),
		})
	}
	return out
}

// applySettlements moves every settlement amount between a copy of bs.
func applySettlements(bs []models.Balance, settlements []models.Settlement) map[string]decimal.Decimal {
	after := balanceMap(bs)
	for _, s := range settlements {
		after[s.From] = after[s.From].Add(s.Amount)
		after[s.To] = after[s.To].Sub(s.Amount)
	}
	return after
}

func TestCalculateSettlements_Examples(t *testing.T) {
	t.Run("equal split", func(t *testing.T) {
		got := CalculateSettlements(balances("A", "200", "B", "-100", "C", "-100"))
		require.Len(t, got, 2)
		for _, s := range got {
			assert.Equal(t, "A", s.To)
			assertDecimal(t, "100", s.Amount)
		}
		assert.ElementsMatch(t, []string{"B", "C"}, []string{got[0].From, got[1].From})
	})

	t.Run("self-inclusive payer", func(t *testing.T) {
		got := CalculateSettlements(balances("A", "50", "B", "-50"))
		require.Len(t, got, 1)
		assert.Equal(t, "B", got[0].From)
		assert.Equal(t, "A", got[0].To)
		assertDecimal(t, "50", got[0].Amount)
	})

	t.Run("all zero", func(t *testing.T) {
		got := CalculateSettlements(balances("A", "0", "B", "0"))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("nil input", func(t *testing.T) {
		got := CalculateSettlements(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("within one cent counts as settled", func(t *testing.T) {
		assert.Empty(t, CalculateSettlements(balances("A", "0.01", "B", "-0.01")))
	})
}

func TestCalculateSettlements_LargestFirst(t *testing.T) {
	got := CalculateSettlements(balances(
		"A", "-10",
		"B", "-70",
		"C", "30",
		"D", "50",
	))

	require.Len(t, got, 3)
	// Biggest debtor pays the biggest creditor first
	assert.Equal(t, models.Settlement{From: "B", To: "D", Amount: got[0].Amount}, got[0])
	assertDecimal(t, "50", got[0].Amount)
	assert.Equal(t, "B", got[1].From)
	assert.Equal(t, "C", got[1].To)
	assertDecimal(t, "20", got[1].Amount)
	assert.Equal(t, "A", got[2].From)
	assert.Equal(t, "C", got[2].To)
	assertDecimal(t, "10", got[2].Amount)
}

func TestCalculateSettlements_ZeroesBalances(t *testing.T) {
	tests := []struct {
		name string
		in   []models.Balance
	}{
		{"two sided", balances("A", "25.50", "B", "-25.50")},
		{"one creditor many debtors", balances("A", "90", "B", "-30", "C", "-30", "D", "-30")},
		{"many creditors one debtor", balances("A", "-90", "B", "45.45", "C", "44.55")},
		{"rounded thirds", balances("A", "66.67", "B", "-33.33", "C", "-33.33")},
		{"mixed", balances("A", "12.34", "B", "-7.89", "C", "100", "D", "-54.45", "E", "-50")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSettlements(tt.in)

			var debtors, creditors int
			for _, b := range tt.in {
				if b.Balance.LessThan(negEpsilon) {
					debtors++
				} else if b.Balance.GreaterThan(Epsilon) {
					creditors++
				}
			}
			assert.LessOrEqual(t, len(got), debtors+creditors-1)

			for _, s := range got {
				assert.True(t, s.Amount.GreaterThan(Epsilon), "settlement %+v below threshold", s)
			}
			for name, v := range applySettlements(tt.in, got) {
				assert.True(t, v.Abs().LessThanOrEqual(Epsilon), "%s left with %s", name, v)
			}
		})
	}
}

func TestCalculateSettlements_FromCalculatedBalances(t *testing.T) {
	ms := members("A", "B", "C", "D")
	expenses := []models.Expense{
		expense("1200", "A", "A", "B", "C", "D"),
		expense("75.25", "B", "C", "D"),
		expense("19.99", "C", "A", "B", "C"),
		expense("300", "D", "A"),
	}

	bs := CalculateBalances(ms, expenses)
	got := CalculateSettlements(bs)
	require.NotEmpty(t, got)
	for name, v := range applySettlements(bs, got) {
		assert.True(t, v.Abs().LessThanOrEqual(Epsilon), "%s left with %s", name, v)
	}
}

func TestCalculateSettlements_DoesNotMutateInput(t *testing.T) {
	in := balances("A", "40", "B", "-40")
	CalculateSettlements(in)
	assertDecimal(t, "40", in[0].Balance)
	assertDecimal(t, "-40", in[1].Balance)
}

func TestCalculateSettlements_Terminates(t *testing.T) {
	// A one-cent remainder is neither emitted nor allowed to stall the cursors
	got := CalculateSettlements(balances("A", "-10.01", "B", "10", "C", "0.02"))
	require.NotEmpty(t, got)
	assert.Equal(t, "B", got[0].To)
	assertDecimal(t, "10", got[0].Amount)
	assert.Len(t, got, 1)
}
