package utils

import (
	"bytes"
	"fmt"

	"cardagency/dashboard"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// Export column set. Formatting stops here: the nested detail groups are
// not rendered, only the fields the dashboard table shows.
var exportHeaders = []string{"ID", "First Name", "Last Name", "Email", "Status", "Submitted By", "Submitted At"}

func exportRow(rec dashboard.ApplicationRecord) []string {
	submittedAt := ""
	if rec.SubmittedAt != nil {
		submittedAt = rec.SubmittedAt.Format("2006-01-02 15:04")
	}
	status := rec.Status
	if status == "" {
		status = "untriaged"
	}
	submittedBy := rec.SubmittedBy
	if rec.IsDirect() {
		submittedBy = "direct"
	}
	return []string{
		rec.ID,
		rec.PersonalDetails.FirstName,
		rec.PersonalDetails.LastName,
		rec.PersonalDetails.EmailAddress,
		status,
		submittedBy,
		submittedAt,
	}
}

// ApplicationsToExcel renders the filtered view as a single-sheet
// workbook.
func ApplicationsToExcel(records []dashboard.ApplicationRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Applications"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, rec := range records {
		for col, value := range exportRow(rec) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}

// ApplicationsToPDF renders the filtered view as a landscape table.
func ApplicationsToPDF(records []dashboard.ApplicationRecord) (*bytes.Buffer, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Credit Card Applications")
	pdf.Ln(12)

	colWidths := []float64{60, 35, 35, 55, 25, 35, 30}

	pdf.SetFont("Helvetica", "B", 9)
	for i, header := range exportHeaders {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, rec := range records {
		for i, value := range exportRow(rec) {
			pdf.CellFormat(colWidths[i], 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return &buf, nil
}
