// Package expenses normalizes recurring living expenses onto an annual basis.
package expenses

import (
	"fmt"
	"strings"

	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/mathutil"
)

// Frequency is how often an expense recurs.
type Frequency string

const (
	Weekly  Frequency = "Weekly"
	Monthly Frequency = "Monthly"
)

// PeriodsPerYear is the annualization multiplier for the frequency. Anything
// other than Weekly is treated as Monthly.
func (f Frequency) PeriodsPerYear() float64 {
	if f == Weekly {
		return constants.WeeksPerYear
	}
	return constants.MonthsPerYear
}

// ParseFrequency accepts "weekly" or "monthly" in any case, plus the short
// forms "w" and "m".
func ParseFrequency(value string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "weekly", "week", "w":
		return Weekly, nil
	case "monthly", "month", "m":
		return Monthly, nil
	default:
		return "", fmt.Errorf("unknown frequency %q: expected Weekly or Monthly", value)
	}
}

// Item is a single recurring expense entered by the user.
type Item struct {
	Description string    `json:"description" yaml:"description"`
	Amount      float64   `json:"amount" yaml:"amount"`
	Frequency   Frequency `json:"frequency" yaml:"frequency"`
}

// Annual returns the item's yearly cost. Negative amounts count as 0.
func (i Item) Annual() float64 {
	return mathutil.ClampAmount(i.Amount) * i.Frequency.PeriodsPerYear()
}

// Label is the display name of the item.
func (i Item) Label() string {
	if d := strings.TrimSpace(i.Description); d != "" {
		return d
	}
	return constants.DefaultExpenseDescription
}

// Normalized is the annualized view of all expenses. PerItemAnnual is aligned
// index-for-index with the items passed to Normalize.
type Normalized struct {
	AnnualRent    float64   `json:"annualRent" yaml:"annualRent"`
	AnnualFood    float64   `json:"annualFood" yaml:"annualFood"`
	PerItemAnnual []float64 `json:"perItemAnnual" yaml:"perItemAnnual"`
	AnnualTotal   float64   `json:"annualTotal" yaml:"annualTotal"`
	MonthlyTotal  float64   `json:"monthlyTotal" yaml:"monthlyTotal"`
}

// Normalize annualizes monthly rent, weekly food and every item, and totals
// them. The monthly total is always the annual total divided by 12.
func Normalize(rentMonthly, foodWeekly float64, items []Item) Normalized {
	n := Normalized{
		AnnualRent:    mathutil.ClampAmount(rentMonthly) * constants.MonthsPerYear,
		AnnualFood:    mathutil.ClampAmount(foodWeekly) * constants.WeeksPerYear,
		PerItemAnnual: make([]float64, len(items)),
	}

	n.AnnualTotal = n.AnnualRent + n.AnnualFood
	for idx, item := range items {
		annual := item.Annual()
		n.PerItemAnnual[idx] = annual
		n.AnnualTotal += annual
	}
	n.MonthlyTotal = n.AnnualTotal / constants.MonthsPerYear
	return n
}

// AnnualOther is the annual total of the user's other expense items.
func (n Normalized) AnnualOther() float64 {
	total := 0.0
	for _, v := range n.PerItemAnnual {
		total += v
	}
	return total
}

// MonthlyItem is the monthly display value of item idx: its annual value
// divided by 12, whatever the item's original frequency.
func (n Normalized) MonthlyItem(idx int) float64 {
	if idx < 0 || idx >= len(n.PerItemAnnual) {
		return 0
	}
	return n.PerItemAnnual[idx] / constants.MonthsPerYear
}
