package ledger

import (
	"strings"
	"testing"

	"finance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderListOrdering(t *testing.T) {
	txs := []models.Transaction{
		{ID: "1", Text: "January", Amount: 10, Type: models.Expense, Date: "2024-01-01"},
		{ID: "2", Text: "March", Amount: 10, Type: models.Expense, Date: "2024-03-01"},
		{ID: "3", Text: "February", Amount: 10, Type: models.Expense, Date: "2024-02-01"},
	}

	rows := DefaultFormatter().RenderList(txs)
	require.Len(t, rows, 3)
	assert.Equal(t, "March", rows[0].Text)
	assert.Equal(t, "February", rows[1].Text)
	assert.Equal(t, "January", rows[2].Text)
}

func TestRenderListStableForSameDate(t *testing.T) {
	txs := []models.Transaction{
		{ID: "1", Text: "first", Amount: 1, Type: models.Income, Date: "2024-01-05"},
		{ID: "2", Text: "second", Amount: 2, Type: models.Income, Date: "2024-01-05"},
		{ID: "3", Text: "third", Amount: 3, Type: models.Income, Date: "2024-01-05"},
	}

	rows := DefaultFormatter().RenderList(txs)
	require.Len(t, rows, 3)
	// Ties keep insertion order
	assert.Equal(t, "first", rows[0].Text)
	assert.Equal(t, "second", rows[1].Text)
	assert.Equal(t, "third", rows[2].Text)
}

func TestRenderListDoesNotMutateInput(t *testing.T) {
	txs := []models.Transaction{
		{ID: "1", Text: "old", Amount: 10, Type: models.Expense, Date: "2024-01-01"},
		{ID: "2", Text: "new", Amount: 10, Type: models.Expense, Date: "2024-03-01"},
	}

	DefaultFormatter().RenderList(txs)
	assert.Equal(t, "old", txs[0].Text, "input order must be preserved")
	assert.Equal(t, "new", txs[1].Text)
}

func TestSignedMoney(t *testing.T) {
	f := DefaultFormatter()

	income := f.SignedMoney(1000, models.Income)
	assert.True(t, strings.HasPrefix(income, "+"), "income rows carry a plus sign: %q", income)
	assert.Contains(t, income, "1,000")

	expense := f.SignedMoney(400, models.Expense)
	assert.True(t, strings.HasPrefix(expense, "-"), "expense rows carry a minus sign: %q", expense)
	assert.Contains(t, expense, "400")
}

func TestMoneyNegativeBalance(t *testing.T) {
	got := DefaultFormatter().Money(-600)
	assert.True(t, strings.HasPrefix(got, "-"), "negative balance keeps its sign: %q", got)
	assert.Contains(t, got, "600")
}

func TestDateDisplay(t *testing.T) {
	f := DefaultFormatter()
	assert.Equal(t, "Jan 5, 2024", f.Date("2024-01-05"))
	// Unparseable dates pass through as stored
	assert.Equal(t, "not-a-date", f.Date("not-a-date"))
}
