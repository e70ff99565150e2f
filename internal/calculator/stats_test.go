package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/moneysplits/internal/models"
)

func TestCalculateGroupStats(t *testing.T) {
	group := &models.Group{
		Members: []models.Member{
			{ID: "a", Name: "Alice", IsActive: true},
			{ID: "b", Name: "Bob", IsActive: true},
			{ID: "c", Name: "Chandra", IsActive: false},
		},
	}
	food := expense("120", "a", "a", "b")
	food.Category = models.CategoryFood
	cab := expense("30.50", "b", "a", "b")
	cab.Category = models.CategoryTravel
	snacks := expense("10", "c", "a", "c")
	snacks.Category = models.CategoryFood
	group.Expenses = []models.Expense{food, cab, snacks}

	stats := CalculateGroupStats(group)

	assert.Equal(t, 3, stats.ExpenseCount)
	assertDecimal(t, "160.50", stats.TotalExpenses)
	assertDecimal(t, "53.50", stats.AvgExpense)
	// Only active members share the per-person figure
	assertDecimal(t, "80.25", stats.PerPersonSpent)
	assertDecimal(t, "130", stats.CategoryBreakdown[models.CategoryFood])
	assertDecimal(t, "30.50", stats.CategoryBreakdown[models.CategoryTravel])
	assert.Equal(t, "Alice", stats.TopSpender)
	assertDecimal(t, "120", stats.TopSpenderAmount)
}

func TestCalculateGroupStats_Empty(t *testing.T) {
	stats := CalculateGroupStats(&models.Group{})
	assert.Equal(t, 0, stats.ExpenseCount)
	assert.True(t, stats.TotalExpenses.IsZero())
	assert.True(t, stats.AvgExpense.IsZero())
	assert.True(t, stats.PerPersonSpent.IsZero())
	assert.Equal(t, NoTopSpender, stats.TopSpender)
	assert.NotNil(t, stats.CategoryBreakdown)

	assert.Equal(t, NoTopSpender, CalculateGroupStats(nil).TopSpender)
}

func TestCalculateGroupStats_TieGoesToLaterPayer(t *testing.T) {
	group := &models.Group{
		Members: []models.Member{
			{ID: "a", Name: "Alice", IsActive: true},
			{ID: "b", Name: "Bob", IsActive: true},
		},
		Expenses: []models.Expense{
			expense("50", "b", "a", "b"),
			expense("50", "a", "a", "b"),
		},
	}
	assert.Equal(t, "Alice", CalculateGroupStats(group).TopSpender)

	// A strictly larger total still wins regardless of order
	group.Expenses = append(group.Expenses, expense("0.01", "b", "a", "b"))
	assert.Equal(t, "Bob", CalculateGroupStats(group).TopSpender)
}

func TestCalculateGroupStats_UnknownPayer(t *testing.T) {
	group := &models.Group{
		Expenses: []models.Expense{expense("10", "ghost", "ghost")},
	}
	stats := CalculateGroupStats(group)
	assert.Equal(t, NoTopSpender, stats.TopSpender)
	assertDecimal(t, "10", stats.TopSpenderAmount)
}
