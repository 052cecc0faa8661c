// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/expenses"
)

// ValidateAmount returns a warning when a configured amount is negative or
// out of range and will be treated as 0.
func ValidateAmount(name string, amount float64) string {
	switch {
	case math.IsNaN(amount) || amount > constants.MaxAmount:
		return fmt.Sprintf("%s is out of range and will be treated as 0", name)
	case amount < 0:
		return fmt.Sprintf("%s is negative (%.2f) and will be treated as 0", name, amount)
	}
	return ""
}

// InputValidator checks calculation inputs loaded from configuration.
type InputValidator struct {
	Salary      float64
	RentMonthly float64
	FoodWeekly  float64
	Expenses    []ExpenseConfig
}

// ExpenseConfig is an expense item as written in configuration.
type ExpenseConfig struct {
	Description string
	Amount      float64
	Frequency   string
}

// ValidateAll validates every input and returns warnings
func (iv *InputValidator) ValidateAll() []string {
	var warnings []string

	for _, check := range []struct {
		name   string
		amount float64
	}{
		{"Salary", iv.Salary},
		{"Rent", iv.RentMonthly},
		{"Food", iv.FoodWeekly},
	} {
		if w := ValidateAmount(check.name, check.amount); w != "" {
			warnings = append(warnings, w)
		}
	}

	if iv.Salary == 0 {
		warnings = append(warnings, "Salary is 0; enter your salary to calculate results")
	}

	if len(iv.Expenses) > constants.MaxExpenseItems {
		warnings = append(warnings, fmt.Sprintf("%d expense items configured; only the first %d will be used",
			len(iv.Expenses), constants.MaxExpenseItems))
	}

	for i, item := range iv.Expenses {
		name := fmt.Sprintf("Expense #%d", i+1)
		if d := strings.TrimSpace(item.Description); d != "" {
			name = fmt.Sprintf("Expense '%s'", d)
		}
		if w := ValidateAmount(name, item.Amount); w != "" {
			warnings = append(warnings, w)
		}
		if _, err := expenses.ParseFrequency(item.Frequency); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s has %v; treating it as Monthly", name, err))
		}
	}

	return warnings
}
