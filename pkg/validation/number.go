package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromFloat(constants.MaxAmount)

// Reasons a numeric input was rejected.
const (
	ReasonEmpty    = "empty"
	ReasonInvalid  = "invalid"
	ReasonNegative = "negative"
	ReasonTooLarge = "too large"
)

// ParseError describes a numeric input that could not be used as entered.
type ParseError struct {
	Field  string
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	switch e.Reason {
	case ReasonNegative:
		return fmt.Sprintf("%s cannot be negative (got %q)", e.Field, e.Input)
	case ReasonEmpty:
		return fmt.Sprintf("%s is empty", e.Field)
	case ReasonTooLarge:
		return fmt.Sprintf("%s is too large (got %q)", e.Field, e.Input)
	default:
		return fmt.Sprintf("%s is not a valid number: %q", e.Field, e.Input)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Warning is the user-facing message for the error.
func (e *ParseError) Warning() string {
	switch e.Reason {
	case ReasonNegative:
		return fmt.Sprintf("%s cannot be negative; using 0.", capitalize(e.Field))
	case ReasonTooLarge:
		return fmt.Sprintf("%s is too large; using 0.", capitalize(e.Field))
	}
	return fmt.Sprintf("Please enter a valid number for %s.", e.Field)
}

// ParseNonNegativeFloat parses money text such as "30000", "£1,250.50" or
// " 800 ". The text is parsed as an exact decimal before conversion so that
// grouping commas and a leading pound sign are accepted. Negative values are
// rejected with ReasonNegative and values above constants.MaxAmount, which
// includes exponents that overflow a float64, with ReasonTooLarge.
func ParseNonNegativeFloat(field, text string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "£")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, &ParseError{Field: field, Input: text, Reason: ReasonEmpty}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, &ParseError{Field: field, Input: text, Reason: ReasonInvalid, Err: err}
	}
	if d.IsNegative() {
		return 0, &ParseError{Field: field, Input: text, Reason: ReasonNegative}
	}

	if d.GreaterThan(maxAmount) {
		return 0, &ParseError{Field: field, Input: text, Reason: ReasonTooLarge}
	}

	value, _ := d.Float64()
	return value, nil
}

// ParseOrZero parses text and substitutes 0 on any failure, returning the
// warning to show the user. The warning is empty when text was valid.
func ParseOrZero(field, text string) (float64, string) {
	value, err := ParseNonNegativeFloat(field, text)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			return 0, pe.Warning()
		}
		return 0, err.Error()
	}
	return value, ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
