// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/take-home/pkg/constants"
)

var outputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatYAML,
	constants.OutputFormatJSON,
	constants.OutputFormatPDF,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, f := range outputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, %s, %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatYAML,
		constants.OutputFormatJSON, constants.OutputFormatPDF, format)
}

// ValidateView checks if the view is annual or monthly.
func ValidateView(view string) error {
	if view != constants.ViewAnnual && view != constants.ViewMonthly {
		return fmt.Errorf("expected view of %s or %s, got %s",
			constants.ViewAnnual, constants.ViewMonthly, view)
	}
	return nil
}
