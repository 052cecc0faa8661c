// Package loans provides student loan repayment calculations.
package loans

import (
	"github.com/iwvelando/take-home/pkg/constants"
)

// Plan is a student loan repayment plan: a flat rate charged on income above
// a threshold, with no upper cap.
type Plan struct {
	Name      string
	Threshold float64
	Rate      float64
}

// Undergraduate is the undergraduate repayment plan.
var Undergraduate = Plan{
	Name:      "Undergraduate Loan",
	Threshold: constants.UndergraduateLoanThreshold,
	Rate:      constants.UndergraduateLoanRate,
}

// Postgraduate is the postgraduate repayment plan.
var Postgraduate = Plan{
	Name:      "Postgraduate Loan",
	Threshold: constants.PostgraduateLoanThreshold,
	Rate:      constants.PostgraduateLoanRate,
}

// EvaluateLoan returns the annual repayment for salary under plan.
func EvaluateLoan(salary float64, plan Plan) float64 {
	if salary <= plan.Threshold {
		return 0
	}
	return (salary - plan.Threshold) * plan.Rate
}

// Repayment returns the annual repayment due on salary.
func (p Plan) Repayment(salary float64) float64 {
	return EvaluateLoan(salary, p)
}
