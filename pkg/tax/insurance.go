package tax

import (
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/mathutil"
)

// InsuranceBands holds the two-band National Insurance schedule. The lower
// rate is capped at Upper; it never applies to earnings above it.
type InsuranceBands struct {
	Lower     float64
	Upper     float64
	LowerRate float64
	UpperRate float64
}

// NationalInsuranceBands is the fixed employee NI schedule.
var NationalInsuranceBands = InsuranceBands{
	Lower:     constants.NILowerThreshold,
	Upper:     constants.NIUpperThreshold,
	LowerRate: constants.NILowerRate,
	UpperRate: constants.NIUpperRate,
}

// Evaluate returns the contribution due on salary.
func (b InsuranceBands) Evaluate(salary float64) float64 {
	ni := 0.0
	if salary > b.Lower {
		ni += (mathutil.Min(salary, b.Upper) - b.Lower) * b.LowerRate
	}
	if salary > b.Upper {
		ni += (salary - b.Upper) * b.UpperRate
	}
	return ni
}

// NationalInsurance returns the annual employee National Insurance due on salary.
func NationalInsurance(salary float64) float64 {
	return NationalInsuranceBands.Evaluate(salary)
}
