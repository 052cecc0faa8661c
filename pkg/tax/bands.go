// Package tax evaluates UK income tax and National Insurance for an annual
// gross salary.
package tax

import (
	"sort"

	"github.com/iwvelando/take-home/pkg/constants"
)

// Band is a marginal rate that applies to every pound above Threshold, up to
// the next higher band's threshold.
type Band struct {
	Threshold float64
	Rate      float64
}

// IncomeTaxBands is the fixed income tax band set, highest threshold first.
var IncomeTaxBands = []Band{
	{Threshold: constants.AdditionalRateThreshold, Rate: constants.AdditionalRate},
	{Threshold: constants.TaperThreshold, Rate: constants.TaperRate},
	{Threshold: constants.HigherRateThreshold, Rate: constants.HigherRate},
	{Threshold: constants.BasicRateThreshold, Rate: constants.BasicRate},
}

// EvaluateBands applies marginal rates to salary. Bands are processed from the
// highest threshold down: the slice above each threshold is charged at that
// band's rate and the remainder carries to the next band. Income below the
// lowest threshold is untaxed.
func EvaluateBands(salary float64, bands []Band) float64 {
	ordered := make([]Band, len(bands))
	copy(ordered, bands)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Threshold > ordered[j].Threshold
	})

	total := 0.0
	remaining := salary
	for _, band := range ordered {
		if remaining > band.Threshold {
			total += (remaining - band.Threshold) * band.Rate
			remaining = band.Threshold
		}
	}
	return total
}

// IncomeTax returns the annual income tax due on salary.
func IncomeTax(salary float64) float64 {
	return EvaluateBands(salary, IncomeTaxBands)
}
