// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/take-home/internal/breakdown"
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/mathutil"
)

// FindLine finds a line by section and label in the lines slice.
// Returns a pointer to the line if found, nil otherwise.
func FindLine(lines []breakdown.Line, section, label string) *breakdown.Line {
	for i := range lines {
		if lines[i].Section == section && lines[i].Label == label {
			return &lines[i]
		}
	}
	return nil
}

// AlmostEqual reports whether two currency amounts are within a penny.
func AlmostEqual(a, b float64) bool {
	return mathutil.WithinTolerance(a, b, constants.CurrencyTolerance)
}
