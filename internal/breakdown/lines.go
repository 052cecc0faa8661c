package breakdown

import (
	"github.com/iwvelando/take-home/pkg/mathutil"
)

// Display sections, in render order.
const (
	SectionSummary    = "Summary"
	SectionDeductions = "Taxes & Deductions"
	SectionExpenses   = "Living and Other Expenses"
)

// Line is one labelled figure of a rendered breakdown.
type Line struct {
	Section string  `json:"section" yaml:"section"`
	Label   string  `json:"label" yaml:"label"`
	Amount  float64 `json:"amount" yaml:"amount"`
}

// Lines flattens the report into display lines for the requested view.
// Monthly figures are the annual figures divided by 12.
func (r Report) Lines(view string) []Line {
	b := r.Breakdown
	lines := []Line{
		{SectionSummary, "Gross Salary", ForView(b.Salary, view)},
		{SectionSummary, "Take-home Pay", ForView(b.TakeHomeAnnual, view)},
		{SectionSummary, "Total Costs", ForView(b.TotalExpensesAnnual, view)},
		{SectionSummary, "Total Deductions", ForView(b.TotalDeductionsAnnual, view)},
		{SectionDeductions, "Income Tax", ForView(b.Deductions.IncomeTax, view)},
		{SectionDeductions, "National Insurance", ForView(b.Deductions.NationalInsurance, view)},
		{SectionDeductions, "Undergraduate Loan", ForView(b.Deductions.UndergraduateLoan, view)},
		{SectionDeductions, "Postgraduate Loan", ForView(b.Deductions.PostgraduateLoan, view)},
		{SectionExpenses, "Rent", ForView(b.Expenses.AnnualRent, view)},
		{SectionExpenses, "Food", ForView(b.Expenses.AnnualFood, view)},
	}

	for i, annual := range b.PerItemAnnual {
		label := "Other"
		if i < len(r.Inputs.Expenses) {
			label = r.Inputs.Expenses[i].Label()
		}
		lines = append(lines, Line{SectionExpenses, label, ForView(annual, view)})
	}
	return lines
}

// EffectiveTaxRate is income tax plus National Insurance as a percentage of
// gross salary.
func (b Breakdown) EffectiveTaxRate() float64 {
	return mathutil.CalculatePercentage(b.Deductions.IncomeTax+b.Deductions.NationalInsurance, b.Salary)
}
