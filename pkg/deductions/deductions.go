// Package deductions computes the statutory deductions taken from a gross
// annual salary: income tax, National Insurance and student loan repayments.
package deductions

import (
	"github.com/iwvelando/take-home/pkg/loans"
	"github.com/iwvelando/take-home/pkg/mathutil"
	"github.com/iwvelando/take-home/pkg/tax"
)

// Result holds the annual deductions for a salary. Disabled loans are 0.
type Result struct {
	IncomeTax         float64 `json:"incomeTax" yaml:"incomeTax"`
	NationalInsurance float64 `json:"nationalInsurance" yaml:"nationalInsurance"`
	UndergraduateLoan float64 `json:"undergraduateLoan" yaml:"undergraduateLoan"`
	PostgraduateLoan  float64 `json:"postgraduateLoan" yaml:"postgraduateLoan"`
}

// Compute returns the deductions for salary. Negative salaries are treated as 0.
func Compute(salary float64, hasUndergradLoan, hasPostgradLoan bool) Result {
	salary = mathutil.ClampAmount(salary)

	result := Result{
		IncomeTax:         tax.IncomeTax(salary),
		NationalInsurance: tax.NationalInsurance(salary),
	}
	if hasUndergradLoan {
		result.UndergraduateLoan = loans.EvaluateLoan(salary, loans.Undergraduate)
	}
	if hasPostgradLoan {
		result.PostgraduateLoan = loans.EvaluateLoan(salary, loans.Postgraduate)
	}
	return result
}

// Total is the sum of all four deductions.
func (r Result) Total() float64 {
	return r.IncomeTax + r.NationalInsurance + r.UndergraduateLoan + r.PostgraduateLoan
}

// Loans is the combined student loan repayment.
func (r Result) Loans() float64 {
	return r.UndergraduateLoan + r.PostgraduateLoan
}
