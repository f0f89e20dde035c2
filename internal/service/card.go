package service

import (
	"bytes"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// StudentQR encodes the student's check-in link as a PNG.
func StudentQR(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}

	return png, nil
}

// BuildStudentCard renders a printable ID card with the student's details and
// a QR code holding their check-in link.
func BuildStudentCard(userID, fullName, batch, qrContent string) ([]byte, error) {
	png, err := StudentQR(qrContent)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A6", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Student ID Card", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fullName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, "ID: "+userID, "", 1, "C", false, 0, "")
	if batch != "" {
		pdf.CellFormat(0, 7, "Batch: "+batch, "", 1, "C", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("student-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("student-qr", (148-40)/2, pdf.GetY()+2, 40, 40, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering student card")
	}

	return buf.Bytes(), nil
}
