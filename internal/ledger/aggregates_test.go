package ledger

import (
	"testing"

	"finance-tracker/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeAggregatesEmpty(t *testing.T) {
	agg := ComputeAggregates(nil)
	assert.Zero(t, agg.Balance)
	assert.Zero(t, agg.TotalIncome)
	assert.Zero(t, agg.TotalExpense)
}

func TestComputeAggregates(t *testing.T) {
	txs := []models.Transaction{
		{ID: "1", Text: "Salary", Amount: 1000, Type: models.Income, Date: "2024-01-05"},
		{ID: "2", Text: "Rent", Amount: 400, Type: models.Expense, Date: "2024-01-06"},
		{ID: "3", Text: "Groceries", Amount: 150.25, Type: models.Expense, Date: "2024-01-07"},
		{ID: "4", Text: "Refund", Amount: 20.75, Type: models.Income, Date: "2024-01-08"},
	}

	agg := ComputeAggregates(txs)
	assert.InDelta(t, 1020.75, agg.TotalIncome, 1e-9)
	assert.InDelta(t, 550.25, agg.TotalExpense, 1e-9)
	assert.InDelta(t, agg.TotalIncome-agg.TotalExpense, agg.Balance, 1e-9)
}

func TestComputeAggregatesOrderIndependent(t *testing.T) {
	txs := []models.Transaction{
		{ID: "1", Amount: 0.1, Type: models.Income},
		{ID: "2", Amount: 0.2, Type: models.Income},
		{ID: "3", Amount: 1000000, Type: models.Income},
		{ID: "4", Amount: 0.3, Type: models.Expense},
	}
	reversed := []models.Transaction{txs[3], txs[2], txs[1], txs[0]}

	forward := ComputeAggregates(txs)
	backward := ComputeAggregates(reversed)
	assert.InDelta(t, forward.TotalIncome, backward.TotalIncome, 1e-9)
	assert.InDelta(t, forward.TotalExpense, backward.TotalExpense, 1e-9)
	assert.InDelta(t, forward.Balance, backward.Balance, 1e-9)
}
