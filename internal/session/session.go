// Package session holds the state of an in-progress calculation between
// requests: the inputs entered so far and any warnings raised while parsing
// them.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/take-home/internal/breakdown"
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/expenses"
	"github.com/iwvelando/take-home/pkg/mathutil"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// ErrTooManyItems is returned when adding an expense item would exceed
// constants.MaxExpenseItems.
var ErrTooManyItems = fmt.Errorf("a session holds at most %d expense items", constants.MaxExpenseItems)

// Session is a single user's calculation.
type Session struct {
	ID        string           `json:"id"`
	Inputs    breakdown.Inputs `json:"inputs"`
	Warnings  []string         `json:"warnings,omitempty"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// New creates a session with a fresh ID and the default inputs.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Inputs:    breakdown.DefaultInputs(),
		UpdatedAt: time.Now().UTC(),
	}
}

// SetInputs replaces the session inputs. Negative or out-of-range amounts are clamped to 0
// and only the first constants.MaxExpenseItems expense items are kept.
func (s *Session) SetInputs(in breakdown.Inputs) {
	in.Salary = mathutil.ClampAmount(in.Salary)
	in.RentMonthly = mathutil.ClampAmount(in.RentMonthly)
	in.FoodWeekly = mathutil.ClampAmount(in.FoodWeekly)

	items := in.Expenses
	if len(items) > constants.MaxExpenseItems {
		items = items[:constants.MaxExpenseItems]
	}
	in.Expenses = make([]expenses.Item, 0, len(items))
	for _, item := range items {
		in.Expenses = append(in.Expenses, normalizeItem(item))
	}

	s.Inputs = in
	s.touch()
}

// AddExpense appends an expense item.
func (s *Session) AddExpense(item expenses.Item) error {
	if len(s.Inputs.Expenses) >= constants.MaxExpenseItems {
		return ErrTooManyItems
	}
	s.Inputs.Expenses = append(s.Inputs.Expenses, normalizeItem(item))
	s.touch()
	return nil
}

// ClearExpenses removes every expense item. Rent and food are kept.
func (s *Session) ClearExpenses() {
	s.Inputs.Expenses = nil
	s.touch()
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Inputs.Expenses = append([]expenses.Item(nil), s.Inputs.Expenses...)
	c.Warnings = append([]string(nil), s.Warnings...)
	return &c
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

func normalizeItem(item expenses.Item) expenses.Item {
	item.Amount = mathutil.ClampAmount(item.Amount)
	if item.Frequency != expenses.Weekly {
		item.Frequency = expenses.Monthly
	}
	return item
}

// Store persists sessions. Implementations return ErrNotFound for missing or
// expired sessions.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
