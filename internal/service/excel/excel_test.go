package excel

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeImportFile(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", studentSheet)
	for i, header := range studentHeaders {
		require.NoError(t, f.SetCellValue(studentSheet, fmt.Sprintf("%c1", 'A'+i), header))
	}
	for i, row := range rows {
		for j, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+j, i+2)
			require.NoError(t, f.SetCellValue(studentSheet, cell, value))
		}
	}

	path := filepath.Join(t.TempDir(), "import.xlsx")
	require.NoError(t, f.SaveAs(path))

	return path
}

func TestReadStudentImport(t *testing.T) {
	path := writeImportFile(t, [][]interface{}{
		{"S001", "Asha Nair", "2023", "4", "REG001", "Computer Science", "+919800000001", "asha@example.edu", "secret1"},
		{"S002", "Kiran Das", "2023", "", "", "", "", "", "secret2"},
	})

	students, invalid, err := ReadStudentImport(path, map[string]int{"Computer Science": 1}, nil)
	require.NoError(t, err)
	require.Empty(t, invalid)
	require.Len(t, students, 2)

	require.Equal(t, "S001", students[0].UserID)
	require.Equal(t, "Asha Nair", students[0].FullName)
	require.NotNil(t, students[0].Semester)
	require.Equal(t, 4, *students[0].Semester)
	require.NotNil(t, students[0].DepartmentID)
	require.Equal(t, 1, *students[0].DepartmentID)

	require.Nil(t, students[1].Semester)
	require.Nil(t, students[1].DepartmentID)
}

func TestReadStudentImportInvalidRows(t *testing.T) {
	path := writeImportFile(t, [][]interface{}{
		{"", "No ID", "2023", "", "", "", "", "", "secret"},
		{"S002", "No Password", "2023", "", "", "", "", "", ""},
		{"S003", "Bad Semester", "2023", "four", "", "", "", "", "secret"},
		{"S004", "Unknown Department", "2023", "", "", "Astrology", "", "", "secret"},
		{"S005", "Bad Email", "2023", "", "", "", "", "not-an-email", "secret"},
		{"S006", "Bad Phone", "2023", "", "", "", "98-00", "", "secret"},
		{"S007", "Fine", "2023", "", "", "", "", "", "secret"},
	})

	students, invalid, err := ReadStudentImport(path, map[string]int{"Computer Science": 1}, nil)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 4, 5, 6, 7}, invalid)
	require.Len(t, students, 1)
	require.Equal(t, "S007", students[0].UserID)
}

func TestReadStudentImportRejectsExistingIDs(t *testing.T) {
	path := writeImportFile(t, [][]interface{}{
		{"S001", "Already There", "2023", "", "", "", "", "", "secret"},
	})

	students, invalid, err := ReadStudentImport(path, nil, map[string]struct{}{"S001": {}})
	require.NoError(t, err)
	require.Equal(t, []int{2}, invalid)
	require.Empty(t, students)
}

func TestReadStudentImportRejectsBothDuplicateRows(t *testing.T) {
	path := writeImportFile(t, [][]interface{}{
		{"S001", "First", "2023", "", "", "", "", "", "secret"},
		{"S001", "Second", "2023", "", "", "", "", "", "secret"},
	})

	students, invalid, err := ReadStudentImport(path, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, invalid)
	// The first copy was accepted before the duplicate showed up.
	require.Len(t, students, 1)
}

func TestBuildStudentTemplate(t *testing.T) {
	content, err := BuildStudentTemplate([]string{"Computer Science", "Mechanical"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	for i, header := range studentHeaders {
		value, err := f.GetCellValue(studentSheet, fmt.Sprintf("%c1", 'A'+i))
		require.NoError(t, err)
		require.Equal(t, header, value)
	}

	name, err := f.GetCellValue("Departments", "A2")
	require.NoError(t, err)
	require.Equal(t, "Computer Science", name)

	name, err = f.GetCellValue("Departments", "A3")
	require.NoError(t, err)
	require.Equal(t, "Mechanical", name)
}

func TestClean(t *testing.T) {
	require.Equal(t, "Asha Nair", clean("  Asha Nair\t"))
	require.Equal(t, "", clean("   "))
}
