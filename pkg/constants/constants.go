// Package constants provides shared constants for the take-home application.
package constants

// Period constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerYear is the number of weeks used to annualize weekly amounts
	WeeksPerYear = 52

	// DecimalPlaces is the currency display precision
	DecimalPlaces = 2

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100
)

// Income tax thresholds and marginal rates. The 50% band between 100000 and
// 125140 reflects the personal allowance taper.
const (
	BasicRateThreshold      = 12570.0
	HigherRateThreshold     = 50270.0
	TaperThreshold          = 100000.0
	AdditionalRateThreshold = 125140.0
	BasicRate               = 0.20
	HigherRate              = 0.40
	TaperRate               = 0.50
	AdditionalRate          = 0.45
)

// National Insurance (employee, Class 1) thresholds and rates
const (
	NILowerThreshold = 12570.0
	NIUpperThreshold = 50270.0
	NILowerRate      = 0.08
	NIUpperRate      = 0.02
)

// Student loan repayment plans
const (
	UndergraduateLoanThreshold = 28470.0
	UndergraduateLoanRate      = 0.09
	PostgraduateLoanThreshold  = 21000.0
	PostgraduateLoanRate       = 0.06
)

// Default calculator inputs
const (
	DefaultSalary      = 30000.0
	DefaultRentMonthly = 800.0
	DefaultFoodWeekly  = 50.0

	// MaxExpenseItems caps the number of other expense items in a session
	MaxExpenseItems = 20

	// DefaultExpenseDescription labels expense items that were entered without one
	DefaultExpenseDescription = "Other"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatPDF is the PDF report output format
	OutputFormatPDF = "pdf"
)

// View constants
const (
	// ViewAnnual renders every figure on a yearly basis
	ViewAnnual = "annual"

	// ViewMonthly renders every figure as its annual value divided by 12
	ViewMonthly = "monthly"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of config keys
	EnvPrefix = "TAKEHOME"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultSessionTTL is how long an idle session is kept, as a duration string
	DefaultSessionTTL = "2h"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 penny)
	CurrencyTolerance = 0.01

	// MaxAmount is the largest money input accepted; larger values are
	// treated as invalid so that annual totals stay finite
	MaxAmount = 1e12
)
