package config

import (
	"github.com/iwvelando/take-home/internal/breakdown"
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/expenses"
	"github.com/iwvelando/take-home/pkg/mathutil"
)

// ToItem converts a configured expense to an expenses.Item. Unknown
// frequencies become Monthly; negative or out-of-range amounts become 0.
func (e Expense) ToItem() expenses.Item {
	freq, err := expenses.ParseFrequency(e.Frequency)
	if err != nil {
		freq = expenses.Monthly
	}
	return expenses.Item{
		Description: e.Description,
		Amount:      mathutil.ClampAmount(e.Amount),
		Frequency:   freq,
	}
}

// Inputs converts the configuration into calculation inputs, clamping
// negative or out-of-range values and keeping at most constants.MaxExpenseItems items.
func (c *Configuration) Inputs() breakdown.Inputs {
	items := c.Expenses
	if len(items) > constants.MaxExpenseItems {
		items = items[:constants.MaxExpenseItems]
	}

	in := breakdown.Inputs{
		Salary:            mathutil.ClampAmount(c.Salary),
		UndergraduateLoan: c.UndergraduateLoan,
		PostgraduateLoan:  c.PostgraduateLoan,
		RentMonthly:       mathutil.ClampAmount(c.Rent),
		FoodWeekly:        mathutil.ClampAmount(c.Food),
		Expenses:          make([]expenses.Item, 0, len(items)),
	}
	for _, e := range items {
		in.Expenses = append(in.Expenses, e.ToItem())
	}
	return in
}
