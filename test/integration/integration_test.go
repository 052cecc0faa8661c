package integration

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/iwvelando/take-home/internal/breakdown"
	"github.com/iwvelando/take-home/internal/config"
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/output"
	"github.com/iwvelando/take-home/pkg/testutil"
	"go.uber.org/zap"
)

const testConfigPath = "../test_config.yaml"

func loadReport(t *testing.T) breakdown.Report {
	t.Helper()

	conf, err := config.LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	return breakdown.NewCalculator(zap.NewNop()).Calculate(conf.Inputs())
}

// TestMainIntegrationBaseline checks the figures produced from the test
// configuration exactly as the calculate command produces them.
func TestMainIntegrationBaseline(t *testing.T) {
	conf, err := config.LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no configuration warnings, got %v", warnings)
	}

	report := breakdown.NewCalculator(zap.NewNop()).Calculate(conf.Inputs())
	b := report.Breakdown

	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"income tax", b.Deductions.IncomeTax, 5886},
		{"national insurance", b.Deductions.NationalInsurance, 2354.40},
		{"undergraduate loan", b.Deductions.UndergraduateLoan, 1217.70},
		{"postgraduate loan", b.Deductions.PostgraduateLoan, 0},
		{"rent", b.Expenses.AnnualRent, 11400},
		{"food", b.Expenses.AnnualFood, 3120},
		{"expenses", b.TotalExpensesAnnual, 18346},
		{"total deductions", b.TotalDeductionsAnnual, 27804.10},
		{"take-home", b.TakeHomeAnnual, 14195.90},
		{"take-home monthly", b.TakeHomeMonthly, 14195.90 / 12},
	}

	for _, c := range checks {
		if !testutil.AlmostEqual(c.got, c.expected) {
			t.Errorf("%s = %.2f, expected %.2f", c.name, c.got, c.expected)
		}
	}

	expectedItems := []float64{1680, 2002, 144}
	if len(b.PerItemAnnual) != len(expectedItems) {
		t.Fatalf("expected %d expense items, got %d", len(expectedItems), len(b.PerItemAnnual))
	}
	for i, expected := range expectedItems {
		if !testutil.AlmostEqual(b.PerItemAnnual[i], expected) {
			t.Errorf("item %d = %.2f, expected %.2f", i, b.PerItemAnnual[i], expected)
		}
	}
}

func TestCSVOutputFormat(t *testing.T) {
	report := loadReport(t)

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, report, constants.ViewMonthly); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}

	// Header plus summary, deductions, rent, food and three items.
	if len(records) != 14 {
		t.Fatalf("expected 14 CSV records, got %d", len(records))
	}
	if records[0][2] != "amount (monthly)" {
		t.Errorf("unexpected header %v", records[0])
	}

	expected := map[string]string{
		"Take-home Pay": "1182.99",
		"Council tax":   "140.00",
		"Travelcard":    "166.83",
		"Other":         "12.00",
		"Rent":          "950.00",
	}
	for _, record := range records[1:] {
		if want, ok := expected[record[1]]; ok && record[2] != want {
			t.Errorf("%s = %s, expected %s", record[1], record[2], want)
		}
	}
}

func TestPrettyOutputFormat(t *testing.T) {
	report := loadReport(t)

	var buf bytes.Buffer
	output.PrettyFormat(&buf, report, constants.ViewAnnual)
	out := buf.String()

	for _, want := range []string{
		"Your take-home pay (after tax and expenses): £14,195.90",
		"Your total yearly costs (excluding tax/loans/NI): £18,346.00",
		breakdown.SectionDeductions,
		breakdown.SectionExpenses,
		"Council tax",
		"Other",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected pretty output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestAllOutputFormats(t *testing.T) {
	report := loadReport(t)

	formats := []string{
		constants.OutputFormatPretty,
		constants.OutputFormatCSV,
		constants.OutputFormatYAML,
		constants.OutputFormatJSON,
		constants.OutputFormatPDF,
	}

	for _, format := range formats {
		for _, view := range []string{constants.ViewAnnual, constants.ViewMonthly} {
			t.Run(format+"/"+view, func(t *testing.T) {
				var buf bytes.Buffer
				if err := output.Write(&buf, format, report, view); err != nil {
					t.Fatalf("Write() error = %v", err)
				}
				if buf.Len() == 0 {
					t.Fatalf("expected output for %s/%s", format, view)
				}
			})
		}
	}
}

func TestMonthlyViewIsAnnualOverTwelve(t *testing.T) {
	report := loadReport(t)

	annual := report.Lines(constants.ViewAnnual)
	monthly := report.Lines(constants.ViewMonthly)
	if len(annual) != len(monthly) {
		t.Fatalf("line counts differ: %d annual, %d monthly", len(annual), len(monthly))
	}

	for i := range annual {
		line := testutil.FindLine(monthly, annual[i].Section, annual[i].Label)
		if line == nil {
			t.Fatalf("monthly view is missing %s/%s", annual[i].Section, annual[i].Label)
		}
		if !testutil.AlmostEqual(line.Amount, annual[i].Amount/12) {
			t.Errorf("%s monthly = %.4f, expected %.4f", annual[i].Label, line.Amount, annual[i].Amount/12)
		}
	}
}

func TestConfigurationVariations(t *testing.T) {
	tests := []struct {
		name             string
		yaml             string
		expectedTakeHome float64
		expectedWarnings int
	}{
		{
			name:             "Defaults only",
			yaml:             "logging:\n  level: error\n",
			expectedTakeHome: 12919.60,
			expectedWarnings: 0,
		},
		{
			name: "Higher earner with both loans and no costs",
			yaml: `salary: 150000
undergraduateLoan: true
postgraduateLoan: true
rent: 0
food: 0
`,
			expectedTakeHome: 75122.70,
			expectedWarnings: 0,
		},
		{
			name: "Costs exceed income",
			yaml: `salary: 12000
rent: 1200
food: 60
`,
			expectedTakeHome: -5520,
			expectedWarnings: 0,
		},
		{
			name: "Negative and unknown values are corrected",
			yaml: `salary: 30000
rent: -50
food: 50
expenses:
  - description: Odd
    amount: 10
    frequency: Daily
`,
			expectedTakeHome: 30000 - 3486 - 1394.40 - 2600 - 120,
			expectedWarnings: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := config.LoadConfigurationFromReader(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}

			if warnings := conf.ValidateConfiguration(); len(warnings) != tt.expectedWarnings {
				t.Errorf("expected %d warnings, got %d: %v", tt.expectedWarnings, len(warnings), warnings)
			}

			report := breakdown.NewCalculator(zap.NewNop()).Calculate(conf.Inputs())
			if !testutil.AlmostEqual(report.Breakdown.TakeHomeAnnual, tt.expectedTakeHome) {
				t.Errorf("take-home = %.2f, expected %.2f", report.Breakdown.TakeHomeAnnual, tt.expectedTakeHome)
			}
		})
	}
}
