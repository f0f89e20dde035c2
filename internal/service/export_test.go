package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/Niranjjith/Attendance-System/internal/repository/postgres/attendance"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportRows() []attendance.ExportRow {
	return []attendance.ExportRow{
		{
			Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			StudentCode: "S001",
			StudentName: "Asha Nair",
			Batch:       "2023",
			SubjectCode: "CS101",
			SubjectName: "Data Structures",
			Status:      "present",
			MarkedBy:    "R. Menon",
		},
		{
			Date:        time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			StudentCode: "S002",
			StudentName: "Kiran Das",
			Batch:       "2023",
			SubjectCode: "CS101",
			SubjectName: "Data Structures",
			Status:      "absent",
			MarkedBy:    "R. Menon",
		},
	}
}

func TestBuildAttendanceCSV(t *testing.T) {
	content, err := BuildAttendanceCSV(exportRows())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, exportHeaders, records[0])
	require.Equal(t, []string{"2024-03-15", "S001", "Asha Nair", "2023", "CS101", "Data Structures", "present", "R. Menon"}, records[1])
	require.Equal(t, "absent", records[2][6])
}

func TestBuildAttendanceCSVEmpty(t *testing.T) {
	content, err := BuildAttendanceCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestBuildAttendanceWorkbook(t *testing.T) {
	content, err := BuildAttendanceWorkbook(exportRows())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Attendance", "A1")
	require.NoError(t, err)
	require.Equal(t, "Date", header)

	studentName, err := f.GetCellValue("Attendance", "C2")
	require.NoError(t, err)
	require.Equal(t, "Asha Nair", studentName)

	status, err := f.GetCellValue("Attendance", "G3")
	require.NoError(t, err)
	require.Equal(t, "absent", status)
}

func TestBuildAttendanceSheet(t *testing.T) {
	students := []SheetStudent{
		{UserID: "S001", FullName: "Asha Nair"},
		{UserID: "S002", FullName: "Kiran Das"},
	}

	content, err := BuildAttendanceSheet("CS101", "Data Structures", "2024-03-15", students)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestBuildStudentCard(t *testing.T) {
	content, err := BuildStudentCard("S001", "Asha Nair", "2023", "https://example.edu/student/S001")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestStudentQR(t *testing.T) {
	png, err := StudentQR("https://example.edu/student/S001")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
