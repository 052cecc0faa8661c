// Package output provides utilities for formatting and displaying take-home
// pay breakdowns.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/take-home/internal/breakdown"
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// NoSalaryMessage is shown instead of results when no salary was entered.
const NoSalaryMessage = "Please enter your salary to calculate results."

// Document is the serialized form of a report for the structured formats.
type Document struct {
	View      string              `json:"view" yaml:"view"`
	Lines     []breakdown.Line    `json:"lines" yaml:"lines"`
	Breakdown breakdown.Breakdown `json:"breakdown" yaml:"breakdown"`
	Warnings  []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewDocument builds the serialized form of report. Line amounts are rounded
// to pennies; the breakdown keeps full precision.
func NewDocument(report breakdown.Report, view string, warnings []string) Document {
	lines := report.Lines(view)
	for i := range lines {
		lines[i].Amount = mathutil.Round(lines[i].Amount)
	}
	return Document{
		View:      view,
		Lines:     lines,
		Breakdown: report.Breakdown,
		Warnings:  warnings,
	}
}

// Write renders report to w in the requested format.
func Write(w io.Writer, format string, report breakdown.Report, view string) error {
	switch format {
	case constants.OutputFormatPretty:
		PrettyFormat(w, report, view)
		return nil
	case constants.OutputFormatCSV:
		return CsvFormat(w, report, view)
	case constants.OutputFormatYAML:
		return YamlFormat(w, report, view)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report, view)
	case constants.OutputFormatPDF:
		return PdfFormat(w, report, view)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, report breakdown.Report, view string) {
	p := message.NewPrinter(language.English)
	if !report.HasSalary() {
		_, _ = fmt.Fprintln(w, NoSalaryMessage)
		return
	}

	period := "yearly"
	if view == constants.ViewMonthly {
		period = "monthly"
	}
	b := report.Breakdown

	_, _ = fmt.Fprintf(w, "--- Take-home pay (%s) ---\n", view)
	_, _ = fmt.Fprintf(w, "Your take-home pay (after tax and expenses): %s\n",
		money(p, breakdown.ForView(b.TakeHomeAnnual, view)))
	_, _ = fmt.Fprintf(w, "Your total %s costs (excluding tax/loans/NI): %s\n",
		period, money(p, breakdown.ForView(b.TotalExpensesAnnual, view)))
	_, _ = p.Fprintf(w, "Effective tax rate (income tax + NI): %.1f%%\n", b.EffectiveTaxRate())

	section := ""
	for _, line := range report.Lines(view) {
		if line.Section == breakdown.SectionSummary {
			continue
		}
		if line.Section != section {
			section = line.Section
			_, _ = fmt.Fprintf(w, "\n%s\n", section)
			_, _ = fmt.Fprintf(w, "%-30s | %s\n", "Item", "Amount")
			_, _ = fmt.Fprintf(w, "%-30s | %s\n", "____", "______")
		}
		_, _ = fmt.Fprintf(w, "%-30s | %s\n", line.Label, money(p, line.Amount))
	}
}

func money(p *message.Printer, amount float64) string {
	rounded := mathutil.Round(amount)
	if rounded < 0 {
		return p.Sprintf("-£%.2f", -rounded)
	}
	return p.Sprintf("£%.2f", rounded)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, report breakdown.Report, view string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"section", "label", "amount (" + view + ")"}); err != nil {
		return err
	}
	for _, line := range report.Lines(view) {
		record := []string{line.Section, line.Label, strconv.FormatFloat(mathutil.Round(line.Amount), 'f', constants.DecimalPlaces, 64)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV output as a string.
func CsvString(report breakdown.Report, view string) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, report, view); err != nil {
		return ""
	}
	return buf.String()
}

// YamlFormat outputs the report as a YAML document.
func YamlFormat(w io.Writer, report breakdown.Report, view string) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewDocument(report, view, nil)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return encoder.Close()
}

// JSONFormat outputs the report as an indented JSON document.
func JSONFormat(w io.Writer, report breakdown.Report, view string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewDocument(report, view, nil)); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
