package ledger

import "finance-tracker/internal/models"

// Aggregates are the three derived figures shown above the list.
type Aggregates struct {
	Balance      float64
	TotalIncome  float64
	TotalExpense float64
}

// ComputeAggregates sums the list into balance, total income and total
// expense. Compensated (Kahan) accumulation keeps the result independent of
// entry order; amounts are double-precision floats, which is a known
// precision caveat inherited from the stored format.
func ComputeAggregates(transactions []models.Transaction) Aggregates {
	var income, expense kahan
	for _, tx := range transactions {
		switch tx.Type {
		case models.Income:
			income.add(tx.Amount)
		case models.Expense:
			expense.add(tx.Amount)
		}
	}
	return Aggregates{
		Balance:      income.sum - expense.sum,
		TotalIncome:  income.sum,
		TotalExpense: expense.sum,
	}
}

// kahan is a compensated summation accumulator.
type kahan struct {
	sum, c float64
}

func (k *kahan) add(v float64) {
	y := v - k.c
	t := k.sum + y
	k.c = (t - k.sum) - y
	k.sum = t
}
