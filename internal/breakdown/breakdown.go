// Package breakdown combines statutory deductions and normalized living
// expenses with a gross salary to produce the take-home pay breakdown.
package breakdown

import (
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/deductions"
	"github.com/iwvelando/take-home/pkg/expenses"
	"go.uber.org/zap"
)

// Inputs are the validated, non-negative values a breakdown is computed from.
type Inputs struct {
	Salary            float64         `json:"salary" yaml:"salary"`
	UndergraduateLoan bool            `json:"undergraduateLoan" yaml:"undergraduateLoan"`
	PostgraduateLoan  bool            `json:"postgraduateLoan" yaml:"postgraduateLoan"`
	RentMonthly       float64         `json:"rentMonthly" yaml:"rentMonthly"`
	FoodWeekly        float64         `json:"foodWeekly" yaml:"foodWeekly"`
	Expenses          []expenses.Item `json:"expenses" yaml:"expenses"`
}

// DefaultInputs returns the starting values of a new calculation.
func DefaultInputs() Inputs {
	return Inputs{
		Salary:      constants.DefaultSalary,
		RentMonthly: constants.DefaultRentMonthly,
		FoodWeekly:  constants.DefaultFoodWeekly,
	}
}

// Breakdown is the annual take-home position. All fields are derived.
type Breakdown struct {
	Salary                float64             `json:"salary" yaml:"salary"`
	Deductions            deductions.Result   `json:"deductions" yaml:"deductions"`
	Expenses              expenses.Normalized `json:"expenses" yaml:"expenses"`
	TotalDeductionsAnnual float64             `json:"totalDeductionsAnnual" yaml:"totalDeductionsAnnual"`
	TotalExpensesAnnual   float64             `json:"totalExpensesAnnual" yaml:"totalExpensesAnnual"`
	TotalExpensesMonthly  float64             `json:"totalExpensesMonthly" yaml:"totalExpensesMonthly"`
	TakeHomeAnnual        float64             `json:"takeHomeAnnual" yaml:"takeHomeAnnual"`
	TakeHomeMonthly       float64             `json:"takeHomeMonthly" yaml:"takeHomeMonthly"`
	PerItemAnnual         []float64           `json:"perItemAnnual" yaml:"perItemAnnual"`
}

// Compute aggregates deductions and expenses against salary. Total deductions
// include living expenses. A negative take-home is a valid result.
func Compute(salary float64, d deductions.Result, n expenses.Normalized) Breakdown {
	total := d.Total() + n.AnnualTotal
	takeHome := salary - total

	return Breakdown{
		Salary:                salary,
		Deductions:            d,
		Expenses:              n,
		TotalDeductionsAnnual: total,
		TotalExpensesAnnual:   n.AnnualTotal,
		TotalExpensesMonthly:  Monthly(n.AnnualTotal),
		TakeHomeAnnual:        takeHome,
		TakeHomeMonthly:       Monthly(takeHome),
		PerItemAnnual:         append([]float64(nil), n.PerItemAnnual...),
	}
}

// Monthly converts an annual figure to its monthly equivalent. It is the only
// way any monthly value in a breakdown is produced.
func Monthly(annual float64) float64 {
	return annual / constants.MonthsPerYear
}

// ForView returns annual unchanged for the annual view and Monthly(annual)
// for the monthly view.
func ForView(annual float64, view string) float64 {
	if view == constants.ViewMonthly {
		return Monthly(annual)
	}
	return annual
}

// Report pairs a breakdown with the inputs that produced it, so presentation
// layers can label individual expense items.
type Report struct {
	Inputs    Inputs    `json:"inputs" yaml:"inputs"`
	Breakdown Breakdown `json:"breakdown" yaml:"breakdown"`
}

// HasSalary reports whether a salary was entered. Presentation layers show an
// informational prompt instead of results when it was not. Only a salary of
// exactly 0 counts as missing.
func (r Report) HasSalary() bool {
	return r.Inputs.Salary != 0
}

// Calculator runs the full calculation from inputs.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a new calculator with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Calculate computes deductions and normalized expenses independently and
// aggregates them. It holds no state between calls.
func (c *Calculator) Calculate(in Inputs) Report {
	d := deductions.Compute(in.Salary, in.UndergraduateLoan, in.PostgraduateLoan)
	n := expenses.Normalize(in.RentMonthly, in.FoodWeekly, in.Expenses)
	b := Compute(in.Salary, d, n)

	c.logger.Debug("breakdown computed",
		zap.String("op", "breakdown.Calculate"),
		zap.Float64("salary", in.Salary),
		zap.Float64("incomeTax", d.IncomeTax),
		zap.Float64("nationalInsurance", d.NationalInsurance),
		zap.Float64("loans", d.Loans()),
		zap.Float64("expenses", n.AnnualTotal),
		zap.Float64("takeHome", b.TakeHomeAnnual),
		zap.Int("items", len(in.Expenses)),
	)

	return Report{Inputs: in, Breakdown: b}
}
