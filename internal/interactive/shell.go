// Package interactive runs the calculator as a line-oriented command loop.
// Every command that changes an input recalculates and prints the breakdown.
package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/take-home/internal/breakdown"
	"github.com/iwvelando/take-home/internal/session"
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/expenses"
	"github.com/iwvelando/take-home/pkg/format"
	"github.com/iwvelando/take-home/pkg/output"
	"github.com/iwvelando/take-home/pkg/validation"
	"go.uber.org/zap"
)

const prompt = "> "

const helpText = `Commands:
  salary <amount>                         set gross annual salary
  loan <undergrad|postgrad> <on|off>      toggle a student loan plan
  rent <amount>                           set monthly rent
  food <amount>                           set weekly food spend
  add <amount> <weekly|monthly> [label]   add an other expense item
  clear                                   remove all other expense items
  view <annual|monthly>                   switch the breakdown view
  show                                    print the breakdown
  help                                    show this help
  quit                                    exit
`

var errQuit = errors.New("quit")

// Shell holds the state of one interactive calculation.
type Shell struct {
	out     io.Writer
	in      *bufio.Scanner
	logger  *zap.Logger
	calc    *breakdown.Calculator
	session *session.Session
	view    string
}

// New creates a shell that reads commands from in and writes to out, starting
// from the given inputs.
func New(in io.Reader, out io.Writer, inputs breakdown.Inputs, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := session.New()
	s.SetInputs(inputs)
	return &Shell{
		out:     out,
		in:      bufio.NewScanner(in),
		logger:  logger,
		calc:    breakdown.NewCalculator(logger),
		session: s,
		view:    constants.ViewAnnual,
	}
}

// Inputs returns the current inputs.
func (sh *Shell) Inputs() breakdown.Inputs {
	return sh.session.Inputs
}

// View returns the current view.
func (sh *Shell) View() string {
	return sh.view
}

// Run prints the initial breakdown and then processes commands until quit,
// end of input, or ctx is cancelled.
func (sh *Shell) Run(ctx context.Context) error {
	sh.printf("UK take-home pay calculator. Type 'help' for commands.\n\n")
	sh.show()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sh.printf("%s", prompt)
		if !sh.in.Scan() {
			if err := sh.in.Err(); err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}
			sh.printf("\n")
			return nil
		}

		if err := sh.Execute(sh.in.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			sh.printf("Error: %v\n", err)
		}
	}
}

// Execute runs a single command line.
func (sh *Shell) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	sh.logger.Debug("command received",
		zap.String("op", "interactive.Execute"),
		zap.String("command", cmd),
		zap.Int("args", len(args)),
	)

	switch cmd {
	case "salary":
		return sh.setAmount(args, "salary", func(in *breakdown.Inputs, v float64) { in.Salary = v })
	case "rent":
		return sh.setAmount(args, "rent", func(in *breakdown.Inputs, v float64) { in.RentMonthly = v })
	case "food":
		return sh.setAmount(args, "food", func(in *breakdown.Inputs, v float64) { in.FoodWeekly = v })
	case "loan":
		return sh.setLoan(args)
	case "add":
		return sh.addExpense(args)
	case "clear":
		sh.session.ClearExpenses()
		sh.show()
		return nil
	case "view":
		return sh.setView(args)
	case "show":
		sh.show()
		return nil
	case "help", "?":
		sh.printf("%s", helpText)
		return nil
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q; type 'help' for commands", fields[0])
	}
}

func (sh *Shell) setAmount(args []string, field string, set func(*breakdown.Inputs, float64)) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s <amount>", field)
	}

	value, warning := validation.ParseOrZero(field, strings.Join(args, ""))
	if warning != "" {
		sh.printf("%s\n", warning)
	}

	in := sh.session.Inputs
	set(&in, value)
	sh.session.SetInputs(in)
	sh.show()
	return nil
}

func (sh *Shell) setLoan(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: loan <undergrad|postgrad> <on|off>")
	}

	var enabled bool
	switch strings.ToLower(args[1]) {
	case "on", "yes", "true":
		enabled = true
	case "off", "no", "false":
		enabled = false
	default:
		return fmt.Errorf("expected on or off, got %q", args[1])
	}

	in := sh.session.Inputs
	switch strings.ToLower(args[0]) {
	case "undergrad", "undergraduate", "ug":
		in.UndergraduateLoan = enabled
	case "postgrad", "postgraduate", "pg":
		in.PostgraduateLoan = enabled
	default:
		return fmt.Errorf("expected undergrad or postgrad, got %q", args[0])
	}
	sh.session.SetInputs(in)
	sh.show()
	return nil
}

func (sh *Shell) addExpense(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: add <amount> <weekly|monthly> [label]")
	}

	freq, err := expenses.ParseFrequency(args[1])
	if err != nil {
		return err
	}

	label := strings.Join(args[2:], " ")
	field := fmt.Sprintf("expense #%d", len(sh.session.Inputs.Expenses)+1)
	amount, warning := validation.ParseOrZero(field, args[0])
	if warning != "" {
		sh.printf("%s\n", warning)
	}

	item := expenses.Item{Description: label, Amount: amount, Frequency: freq}
	if err := sh.session.AddExpense(item); err != nil {
		return err
	}
	sh.printf("Added %s: %s %s\n", item.Label(), format.Currency(amount), strings.ToLower(string(freq)))
	sh.show()
	return nil
}

func (sh *Shell) setView(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: view <annual|monthly>")
	}
	view := strings.ToLower(args[0])
	if err := validation.ValidateView(view); err != nil {
		return err
	}
	sh.view = view
	sh.show()
	return nil
}

func (sh *Shell) show() {
	report := sh.calc.Calculate(sh.session.Inputs)
	output.PrettyFormat(sh.out, report, sh.view)
	sh.printf("\n")
}

func (sh *Shell) printf(msg string, args ...interface{}) {
	_, _ = fmt.Fprintf(sh.out, msg, args...)
}
