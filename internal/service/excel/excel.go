package excel

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

const studentSheet = "Students"

var studentHeaders = []string{"Student ID", "Full Name", "Batch", "Semester", "Register Number", "Department", "Phone", "Email", "Password"}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?\d+$`)
)

// StudentRow is one valid line of a student import file.
type StudentRow struct {
	UserID         string
	FullName       string
	Batch          string
	Semester       *int
	RegisterNumber string
	DepartmentID   *int
	Phone          string
	Email          string
	Password       string
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return clean(row[i])
}

// ReadStudentImport parses an import file into rows ready for account
// creation. Invalid lines never fail the file; their 1-based row numbers come
// back in the second result so the caller can report them.
func ReadStudentImport(filePath string, departmentMap map[string]int, existingIDs map[string]struct{}) ([]StudentRow, []int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening import file")
	}
	defer f.Close()

	rows, err := f.GetRows(studentSheet)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading students sheet")
	}

	var students []StudentRow
	var invalidRows []int
	localIDs := make(map[string]int)

	for i, row := range rows {
		rowNumber := i + 1
		if i == 0 {
			continue
		}

		userID := cell(row, 0)
		fullName := cell(row, 1)
		batch := cell(row, 2)
		semester := cell(row, 3)
		registerNumber := cell(row, 4)
		department := cell(row, 5)
		phone := cell(row, 6)
		email := cell(row, 7)
		password := cell(row, 8)

		if userID == "" || fullName == "" || password == "" {
			invalidRows = append(invalidRows, rowNumber)
			continue
		}

		if _, exists := existingIDs[userID]; exists {
			invalidRows = append(invalidRows, rowNumber)
			continue
		}
		if prevRow, exists := localIDs[userID]; exists {
			invalidRows = append(invalidRows, prevRow, rowNumber)
			continue
		}

		student := StudentRow{
			UserID:         userID,
			FullName:       fullName,
			Batch:          batch,
			RegisterNumber: registerNumber,
			Phone:          phone,
			Email:          email,
			Password:       password,
		}

		if semester != "" {
			n, err := strconv.Atoi(semester)
			if err != nil {
				invalidRows = append(invalidRows, rowNumber)
				continue
			}
			student.Semester = &n
		}

		if department != "" {
			departmentID, ok := departmentMap[department]
			if !ok {
				invalidRows = append(invalidRows, rowNumber)
				continue
			}
			student.DepartmentID = &departmentID
		}

		if email != "" && !emailRegex.MatchString(email) {
			invalidRows = append(invalidRows, rowNumber)
			continue
		}
		if phone != "" && !phoneRegex.MatchString(phone) {
			invalidRows = append(invalidRows, rowNumber)
			continue
		}

		localIDs[userID] = rowNumber
		students = append(students, student)
	}

	return students, invalidRows, nil
}

// BuildStudentTemplate renders an empty import workbook: a Students sheet
// with the expected headers and a Departments sheet listing the accepted
// department names.
func BuildStudentTemplate(departments []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", studentSheet)

	for i, header := range studentHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(studentSheet, cell, header); err != nil {
			return nil, errors.Wrap(err, "writing template header")
		}
	}

	const departmentSheet = "Departments"
	if _, err := f.NewSheet(departmentSheet); err != nil {
		return nil, errors.Wrap(err, "creating departments sheet")
	}
	if err := f.SetCellValue(departmentSheet, "A1", "Department"); err != nil {
		return nil, errors.Wrap(err, "writing departments header")
	}
	for i, name := range departments {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetCellValue(departmentSheet, cell, name); err != nil {
			return nil, errors.Wrap(err, "writing department name")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "saving template")
	}

	return buf.Bytes(), nil
}
