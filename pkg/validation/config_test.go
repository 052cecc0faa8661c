package validation

import (
	"math"
	"strings"
	"testing"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		expectWarn bool
	}{
		{"Positive", 100, false},
		{"Zero", 0, false},
		{"Negative", -0.01, true},
		{"Above maximum", 1e308, true},
		{"Infinity", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateAmount("Rent", tt.amount)
			if tt.expectWarn && warning == "" {
				t.Errorf("ValidateAmount(%v) expected warning", tt.amount)
			}
			if !tt.expectWarn && warning != "" {
				t.Errorf("ValidateAmount(%v) unexpected warning %q", tt.amount, warning)
			}
		})
	}
}

func TestInputValidatorValidateAll(t *testing.T) {
	tests := []struct {
		name          string
		validator     InputValidator
		expectedCount int
		contains      string
	}{
		{
			name: "Clean inputs",
			validator: InputValidator{
				Salary:      30000,
				RentMonthly: 800,
				FoodWeekly:  50,
				Expenses: []ExpenseConfig{
					{Description: "Gym", Amount: 30, Frequency: "Monthly"},
					{Description: "Bus", Amount: 20, Frequency: "weekly"},
				},
			},
			expectedCount: 0,
		},
		{
			name:          "Missing salary",
			validator:     InputValidator{RentMonthly: 800},
			expectedCount: 1,
			contains:      "Salary is 0",
		},
		{
			name: "Negative rent and food",
			validator: InputValidator{
				Salary:      30000,
				RentMonthly: -1,
				FoodWeekly:  -2,
			},
			expectedCount: 2,
			contains:      "Rent is negative",
		},
		{
			name: "Unknown frequency",
			validator: InputValidator{
				Salary:   30000,
				Expenses: []ExpenseConfig{{Description: "Council tax", Amount: 150, Frequency: "yearly"}},
			},
			expectedCount: 1,
			contains:      "Expense 'Council tax'",
		},
		{
			name: "Unnamed negative item",
			validator: InputValidator{
				Salary:   30000,
				Expenses: []ExpenseConfig{{Amount: -3, Frequency: "Monthly"}},
			},
			expectedCount: 1,
			contains:      "Expense #1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.validator.ValidateAll()
			if len(warnings) != tt.expectedCount {
				t.Fatalf("ValidateAll() returned %d warnings, expected %d: %v", len(warnings), tt.expectedCount, warnings)
			}
			if tt.contains != "" && !strings.Contains(strings.Join(warnings, "\n"), tt.contains) {
				t.Errorf("warnings %v do not mention %q", warnings, tt.contains)
			}
		})
	}
}

func TestInputValidatorTooManyItems(t *testing.T) {
	items := make([]ExpenseConfig, 21)
	for i := range items {
		items[i] = ExpenseConfig{Amount: 1, Frequency: "Monthly"}
	}
	v := InputValidator{Salary: 1, Expenses: items}
	warnings := v.ValidateAll()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "only the first 20") {
		t.Errorf("expected a single item limit warning, got %v", warnings)
	}
}
