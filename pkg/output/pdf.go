package output

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/iwvelando/take-home/internal/breakdown"
	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/format"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = 210.0 - pdfMarginLeft - pdfMarginRight
	pdfAmountWidth  = 50.0
)

// PdfFormat renders the report as a single-page A4 PDF.
func PdfFormat(w io.Writer, report breakdown.Report, view string) error {
	return renderPDF(w, report, view, true)
}

func renderPDF(w io.Writer, report breakdown.Report, view string, compress bool) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	// core fonts are cp1252; labels are user-entered UTF-8
	pdfText := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.SetTitle("UK Take-home Pay & Cost Calculator", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "UK Take-home Pay & Cost Calculator", "", 1, "C", false, 0, "")

	if !report.HasSalary() {
		pdf.SetFont("Arial", "", 12)
		pdf.SetTextColor(50, 50, 50)
		pdf.Ln(6)
		pdf.CellFormat(pdfContentWidth, 8, NoSalaryMessage, "", 1, "C", false, 0, "")
		return pdf.Output(w)
	}

	b := report.Breakdown
	period := "yearly"
	if view == constants.ViewMonthly {
		period = "monthly"
	}

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(pdfContentWidth, 8, fmt.Sprintf("Figures shown %s", period), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 9, pdfText("Take-home pay (after tax and expenses): "+
		format.Currency(breakdown.ForView(b.TakeHomeAnnual, view))), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(pdfContentWidth, 8, pdfText(fmt.Sprintf("Total %s costs (excluding tax/loans/NI): %s",
		period, format.Currency(breakdown.ForView(b.TotalExpensesAnnual, view)))), "", 1, "L", false, 0, "")

	section := ""
	pdf.SetFillColor(245, 247, 250)
	pdf.SetDrawColor(200, 200, 200)
	for _, line := range report.Lines(view) {
		if line.Section == breakdown.SectionSummary {
			continue
		}
		if line.Section != section {
			section = line.Section
			pdf.Ln(6)
			pdf.SetFont("Arial", "B", 12)
			pdf.SetTextColor(0, 51, 102)
			pdf.CellFormat(pdfContentWidth, 8, pdfText(section), "1", 1, "L", true, 0, "")
			pdf.SetFont("Arial", "", 11)
			pdf.SetTextColor(50, 50, 50)
		}
		pdf.CellFormat(pdfContentWidth-pdfAmountWidth, 7, pdfText(line.Label), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(pdfAmountWidth, 7, pdfText(format.Currency(line.Amount)), "RB", 1, "R", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	return pdf.Output(w)
}
