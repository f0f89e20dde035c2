package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
)

// SheetStudent is one line of the printable marking sheet.
type SheetStudent struct {
	UserID   string
	FullName string
}

// BuildAttendanceSheet renders a printable marking sheet for one subject and
// day: the enrolled students with empty status boxes to tick by hand.
func BuildAttendanceSheet(subjectCode, subjectName, day string, students []SheetStudent) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Attendance Sheet", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Attendance Sheet", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, subjectCode+" - "+subjectName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Date: "+day, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(12, 8, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Student ID", "1", 0, "C", false, 0, "")
	pdf.CellFormat(83, 8, "Name", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Present", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Absent", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Late", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, s := range students {
		pdf.CellFormat(12, 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, s.UserID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(83, 8, s.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, "", "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 8, "", "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 8, "", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering attendance sheet")
	}

	return buf.Bytes(), nil
}
