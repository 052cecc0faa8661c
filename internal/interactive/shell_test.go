package interactive

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/take-home/internal/breakdown"
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/expenses"
	"github.com/iwvelando/take-home/pkg/output"
)

func newShell(script string) (*Shell, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(script), &out, breakdown.DefaultInputs(), nil), &out
}

func TestExecuteUpdatesInputs(t *testing.T) {
	sh, _ := newShell("")

	tests := []struct {
		name  string
		line  string
		check func(in breakdown.Inputs) bool
	}{
		{
			name:  "Salary with grouping",
			line:  "salary £45,000",
			check: func(in breakdown.Inputs) bool { return in.Salary == 45000 },
		},
		{
			name:  "Rent",
			line:  "rent 950.50",
			check: func(in breakdown.Inputs) bool { return in.RentMonthly == 950.50 },
		},
		{
			name:  "Food",
			line:  "FOOD 70",
			check: func(in breakdown.Inputs) bool { return in.FoodWeekly == 70 },
		},
		{
			name:  "Undergraduate loan on",
			line:  "loan undergrad on",
			check: func(in breakdown.Inputs) bool { return in.UndergraduateLoan },
		},
		{
			name:  "Postgraduate loan on",
			line:  "loan pg yes",
			check: func(in breakdown.Inputs) bool { return in.PostgraduateLoan },
		},
		{
			name:  "Undergraduate loan off",
			line:  "loan undergraduate off",
			check: func(in breakdown.Inputs) bool { return !in.UndergraduateLoan && in.PostgraduateLoan },
		},
		{
			name: "Add labelled expense",
			line: "add 12.50 weekly Train pass",
			check: func(in breakdown.Inputs) bool {
				return len(in.Expenses) == 1 &&
					in.Expenses[0] == expenses.Item{Description: "Train pass", Amount: 12.50, Frequency: expenses.Weekly}
			},
		},
		{
			name: "Add unlabelled expense",
			line: "add 30 m",
			check: func(in breakdown.Inputs) bool {
				return len(in.Expenses) == 2 && in.Expenses[1].Label() == constants.DefaultExpenseDescription
			},
		},
		{
			name:  "Clear expenses",
			line:  "clear",
			check: func(in breakdown.Inputs) bool { return len(in.Expenses) == 0 && in.RentMonthly == 950.50 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sh.Execute(tt.line); err != nil {
				t.Fatalf("Execute(%q) error = %v", tt.line, err)
			}
			if !tt.check(sh.Inputs()) {
				t.Errorf("unexpected inputs after %q: %+v", tt.line, sh.Inputs())
			}
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	sh, _ := newShell("")

	lines := []string{
		"salary",
		"loan undergrad maybe",
		"loan mortgage on",
		"add 10",
		"add 10 yearly",
		"view weekly",
		"frobnicate",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			if err := sh.Execute(line); err == nil {
				t.Errorf("Execute(%q) expected error", line)
			}
		})
	}
}

func TestExecuteInvalidAmountWarns(t *testing.T) {
	sh, out := newShell("")

	if err := sh.Execute("rent -300"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if sh.Inputs().RentMonthly != 0 {
		t.Errorf("expected negative rent to become 0, got %v", sh.Inputs().RentMonthly)
	}
	if !strings.Contains(out.String(), "Rent cannot be negative; using 0.") {
		t.Errorf("expected negative warning in output:\n%s", out.String())
	}

	out.Reset()
	if err := sh.Execute("salary lots"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "Please enter a valid number for salary.") {
		t.Errorf("expected invalid number warning in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), output.NoSalaryMessage) {
		t.Errorf("expected no-salary message in output:\n%s", out.String())
	}

	out.Reset()
	if err := sh.Execute("salary 1e400"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if sh.Inputs().Salary != 0 {
		t.Errorf("expected overflowing salary to become 0, got %v", sh.Inputs().Salary)
	}
	if !strings.Contains(out.String(), "Salary is too large; using 0.") {
		t.Errorf("expected too-large warning in output:\n%s", out.String())
	}
}

func TestExecuteItemLimit(t *testing.T) {
	sh, _ := newShell("")
	for i := 0; i < constants.MaxExpenseItems; i++ {
		if err := sh.Execute("add 1 monthly"); err != nil {
			t.Fatalf("add #%d error = %v", i+1, err)
		}
	}
	if err := sh.Execute("add 1 monthly"); err == nil {
		t.Errorf("expected error beyond %d items", constants.MaxExpenseItems)
	}
}

func TestViewSwitch(t *testing.T) {
	sh, out := newShell("")

	if err := sh.Execute("view monthly"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if sh.View() != constants.ViewMonthly {
		t.Fatalf("expected monthly view, got %q", sh.View())
	}
	if !strings.Contains(out.String(), "--- Take-home pay (monthly) ---") {
		t.Errorf("expected monthly header in output:\n%s", out.String())
	}
}

func TestRunScript(t *testing.T) {
	script := strings.Join([]string{
		"salary 30000",
		"add 10.99 monthly Netflix",
		"add 15 weekly",
		"",
		"show",
		"quit",
		"salary 99999",
	}, "\n")

	sh, out := newShell(script)
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if sh.Inputs().Salary != 30000 {
		t.Errorf("commands after quit should not run, salary = %v", sh.Inputs().Salary)
	}

	report := breakdown.NewCalculator(nil).Calculate(sh.Inputs())
	if math.Abs(report.Breakdown.TakeHomeAnnual-12007.72) > constants.CurrencyTolerance {
		t.Errorf("expected take-home 12007.72, got %.2f", report.Breakdown.TakeHomeAnnual)
	}
	if !strings.Contains(out.String(), "Your take-home pay (after tax and expenses): £12,007.72") {
		t.Errorf("expected take-home line in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Added Netflix: £10.99 monthly") {
		t.Errorf("expected confirmation line in output:\n%s", out.String())
	}
}

func TestRunEndOfInput(t *testing.T) {
	sh, _ := newShell("food 60\n")
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sh.Inputs().FoodWeekly != 60 {
		t.Errorf("expected food 60, got %v", sh.Inputs().FoodWeekly)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sh, _ := newShell("salary 1\n")
	if err := sh.Run(ctx); err == nil {
		t.Errorf("expected context error")
	}
}
