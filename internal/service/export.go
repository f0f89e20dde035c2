package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/attendance"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"Date", "Student ID", "Student Name", "Batch", "Subject Code", "Subject Name", "Status", "Marked By"}

func exportCells(row attendance.ExportRow) []string {
	return []string{
		row.Date.Format("2006-01-02"),
		row.StudentCode,
		row.StudentName,
		row.Batch,
		row.SubjectCode,
		row.SubjectName,
		row.Status,
		row.MarkedBy,
	}
}

// BuildAttendanceCSV renders export rows as a CSV document.
func BuildAttendanceCSV(rows []attendance.ExportRow) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, errors.Wrap(err, "writing csv header")
	}

	for _, row := range rows {
		if err := w.Write(exportCells(row)); err != nil {
			return nil, errors.Wrap(err, "writing csv row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "flushing csv")
	}

	return buf.Bytes(), nil
}

// BuildAttendanceWorkbook renders export rows as an xlsx workbook with one
// Attendance sheet.
func BuildAttendanceWorkbook(rows []attendance.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, errors.Wrap(err, "writing sheet header")
		}
	}

	for i, row := range rows {
		for j, value := range exportCells(row) {
			cell := fmt.Sprintf("%c%d", 'A'+j, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, errors.Wrap(err, "writing sheet row")
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "saving workbook")
	}

	return buf.Bytes(), nil
}
