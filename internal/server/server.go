package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/take-home/internal/breakdown"
	"github.com/iwvelando/take-home/internal/session"
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/expenses"
	"github.com/iwvelando/take-home/pkg/format"
	"github.com/iwvelando/take-home/pkg/output"
	"github.com/iwvelando/take-home/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	store       session.Store
	calc        *breakdown.Calculator
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
// Sessions are kept in store; a nil store keeps them in memory.
func NewHandler(logger *zap.Logger, store session.Store, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if store == nil {
		store = session.NewMemoryStore(0)
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		store:       store,
		calc:        breakdown.NewCalculator(logger),
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Stateless calculation
	api.HandleFunc("/calculate", h.handleCalculate).Methods(http.MethodPost)

	// Session lifecycle
	api.HandleFunc("/sessions", h.handleCreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", h.handleGetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", h.handleDeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/inputs", h.handleSetInputs).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{id}/expenses", h.handleAddExpense).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/expenses", h.handleClearExpenses).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/breakdown", h.handleBreakdown).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/report.pdf", h.handleReportPDF).Methods(http.MethodGet)

	// Version endpoint for client metadata
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	return r
}

// textValue holds a user-entered field as text. It accepts either a JSON
// string or a JSON number so clients may send "£1,200" or 1200.
type textValue string

func (t *textValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*t = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = textValue(s)
		return nil
	}
	*t = textValue(trimmed)
	return nil
}

type inputsRequest struct {
	Salary            textValue        `json:"salary"`
	UndergraduateLoan bool             `json:"undergraduateLoan"`
	PostgraduateLoan  bool             `json:"postgraduateLoan"`
	Rent              textValue        `json:"rent"`
	Food              textValue        `json:"food"`
	Expenses          []expenseRequest `json:"expenses"`
	View              string           `json:"view"`
}

type expenseRequest struct {
	Description string    `json:"description"`
	Amount      textValue `json:"amount"`
	Frequency   string    `json:"frequency"`
}

type breakdownResponse struct {
	SessionID string              `json:"sessionId,omitempty"`
	View      string              `json:"view"`
	HasSalary bool                `json:"hasSalary"`
	Message   string              `json:"message,omitempty"`
	Inputs    breakdown.Inputs    `json:"inputs"`
	Lines     []breakdown.Line    `json:"lines"`
	Breakdown breakdown.Breakdown `json:"breakdown"`
	Display   displaySummary      `json:"display"`
	CSV       string              `json:"csv"`
	Warnings  []string            `json:"warnings,omitempty"`
	Duration  string              `json:"duration"`
}

type displaySummary struct {
	TakeHome         string `json:"takeHome"`
	TotalCosts       string `json:"totalCosts"`
	EffectiveTaxRate string `json:"effectiveTaxRate"`
}

// toInputs parses the raw text fields. Anything that cannot be used as
// entered becomes 0 (or Monthly) with a warning.
func (req inputsRequest) toInputs() (breakdown.Inputs, []string) {
	var warnings []string
	parse := func(field string, text textValue) float64 {
		value, warning := validation.ParseOrZero(field, string(text))
		if warning != "" {
			warnings = append(warnings, warning)
		}
		return value
	}

	in := breakdown.Inputs{
		Salary:            parse("salary", req.Salary),
		UndergraduateLoan: req.UndergraduateLoan,
		PostgraduateLoan:  req.PostgraduateLoan,
		RentMonthly:       parse("rent", req.Rent),
		FoodWeekly:        parse("food", req.Food),
	}

	items := req.Expenses
	if len(items) > constants.MaxExpenseItems {
		warnings = append(warnings, fmt.Sprintf("%d expense items sent; only the first %d were used",
			len(items), constants.MaxExpenseItems))
		items = items[:constants.MaxExpenseItems]
	}
	for i, e := range items {
		item, itemWarnings := e.toItem(i)
		warnings = append(warnings, itemWarnings...)
		in.Expenses = append(in.Expenses, item)
	}

	return in, warnings
}

func (e expenseRequest) toItem(idx int) (expenses.Item, []string) {
	var warnings []string
	field := fmt.Sprintf("expense #%d", idx+1)
	if d := strings.TrimSpace(e.Description); d != "" {
		field = fmt.Sprintf("expense '%s'", d)
	}

	amount, warning := validation.ParseOrZero(field, string(e.Amount))
	if warning != "" {
		warnings = append(warnings, warning)
	}

	freq, err := expenses.ParseFrequency(e.Frequency)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%s has %v; treating it as Monthly", validationLabel(field), err))
		freq = expenses.Monthly
	}

	return expenses.Item{Description: e.Description, Amount: amount, Frequency: freq}, warnings
}

func validationLabel(field string) string {
	return strings.ToUpper(field[:1]) + field[1:]
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	var req inputsRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	view, ok := h.resolveView(w, req.View, op)
	if !ok {
		return
	}

	in, warnings := req.toInputs()
	h.respondBreakdown(w, "", in, view, warnings, start, op)
}

func (h *handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateSession"

	s := session.New()
	if err := h.store.Save(r.Context(), s); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to create session: %v", err), op)
		return
	}

	h.logger.Info("session created",
		zap.String("op", op),
		zap.String("session", s.ID),
	)
	h.writeJSON(w, http.StatusCreated, s)
}

func (h *handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.loadSession(w, r, "server.handleGetSession")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteSession"
	id := mux.Vars(r)["id"]

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleSetInputs(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSetInputs"

	s, ok := h.loadSession(w, r, op)
	if !ok {
		return
	}

	var req inputsRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	in, warnings := req.toInputs()
	s.SetInputs(in)
	s.Warnings = warnings
	if !h.saveSession(w, r.Context(), s, op) {
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *handler) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAddExpense"

	s, ok := h.loadSession(w, r, op)
	if !ok {
		return
	}

	var req expenseRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	item, warnings := req.toItem(len(s.Inputs.Expenses))
	if err := s.AddExpense(item); err != nil {
		if errors.Is(err, session.ErrTooManyItems) {
			h.respondErrorWithOp(w, http.StatusConflict, err.Error(), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	s.Warnings = warnings
	if !h.saveSession(w, r.Context(), s, op) {
		return
	}
	h.writeJSON(w, http.StatusCreated, s)
}

func (h *handler) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleClearExpenses"

	s, ok := h.loadSession(w, r, op)
	if !ok {
		return
	}

	s.ClearExpenses()
	s.Warnings = nil
	if !h.saveSession(w, r.Context(), s, op) {
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *handler) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBreakdown"
	start := time.Now()

	view, ok := h.resolveView(w, r.URL.Query().Get("view"), op)
	if !ok {
		return
	}

	s, ok := h.loadSession(w, r, op)
	if !ok {
		return
	}

	h.respondBreakdown(w, s.ID, s.Inputs, view, s.Warnings, start, op)
}

func (h *handler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReportPDF"

	view, ok := h.resolveView(w, r.URL.Query().Get("view"), op)
	if !ok {
		return
	}

	s, ok := h.loadSession(w, r, op)
	if !ok {
		return
	}

	report := h.calc.Calculate(s.Inputs)
	if !report.HasSalary() {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, output.NoSalaryMessage, op)
		return
	}

	var buf bytes.Buffer
	if err := output.PdfFormat(&buf, report, view); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"take-home-%s.pdf\"", view))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("failed to write PDF response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondBreakdown(w http.ResponseWriter, sessionID string, in breakdown.Inputs, view string, warnings []string, start time.Time, op string) {
	report := h.calc.Calculate(in)
	doc := output.NewDocument(report, view, warnings)

	response := breakdownResponse{
		SessionID: sessionID,
		View:      view,
		HasSalary: report.HasSalary(),
		Inputs:    report.Inputs,
		Lines:     doc.Lines,
		Breakdown: doc.Breakdown,
		Warnings:  warnings,
	}
	if response.HasSalary {
		response.Display = displaySummary{
			TakeHome:         format.Currency(breakdown.ForView(report.Breakdown.TakeHomeAnnual, view)),
			TotalCosts:       format.Currency(breakdown.ForView(report.Breakdown.TotalExpensesAnnual, view)),
			EffectiveTaxRate: fmt.Sprintf("%.1f%%", report.Breakdown.EffectiveTaxRate()),
		}
		response.CSV = output.CsvString(report, view)
	} else {
		response.Message = output.NoSalaryMessage
	}

	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.logger.Info("breakdown computed",
		zap.String("op", op),
		zap.String("session", sessionID),
		zap.String("view", view),
		zap.Int("items", len(in.Expenses)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) resolveView(w http.ResponseWriter, view string, op string) (string, bool) {
	view = strings.ToLower(strings.TrimSpace(view))
	if view == "" {
		return constants.ViewAnnual, true
	}
	if err := validation.ValidateView(view); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return "", false
	}
	return view, true
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) loadSession(w http.ResponseWriter, r *http.Request, op string) (*session.Session, bool) {
	s, err := h.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondStoreError(w, err, op)
		return nil, false
	}
	return s, true
}

func (h *handler) saveSession(w http.ResponseWriter, ctx context.Context, s *session.Session, op string) bool {
	if err := h.store.Save(ctx, s); err != nil {
		h.respondStoreError(w, err, op)
		return false
	}
	return true
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, session.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
