// Package report renders profile rosters as PDF documents.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/mikios34/choonpaan/entity"
)

const (
	nameWidth   = 70.0
	emailWidth  = 85.0
	statusWidth = 35.0
	rowHeight   = 8.0
)

// Roster writes an A4 PDF listing records as a Name / Email / Status table,
// in the order given.
func Roster(w io.Writer, title string, records []entity.ProfileRecord, generated time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("choonpaan", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s, %d records", generated.Format("2006-01-02 15:04"), len(records)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	header := func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(230, 230, 240)
		pdf.CellFormat(nameWidth, rowHeight, "Name", "1", 0, "L", true, 0, "")
		pdf.CellFormat(emailWidth, rowHeight, "Email", "1", 0, "L", true, 0, "")
		pdf.CellFormat(statusWidth, rowHeight, "Status", "1", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, rec := range records {
		if pdf.GetY()+rowHeight > pageHeight-bottom-10 {
			pdf.AddPage()
			header()
		}
		pdf.CellFormat(nameWidth, rowHeight, tr(rec.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(emailWidth, rowHeight, tr(rec.Email), "1", 0, "L", false, 0, "")
		pdf.CellFormat(statusWidth, rowHeight, string(rec.Status), "1", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering %s: %w", title, err)
	}
	return nil
}
