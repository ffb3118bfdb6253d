package certificate

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/certiseal/certiseal/pkg/rating"
)

// CertificateData is everything printed on a certificate PDF.
type CertificateData struct {
	ProductName     string
	Manufacturer    string
	TestNumber      string
	IssuedAt        time.Time
	Computed        rating.Computed
	OverallGrade    float64
	OverallCategory string
	VerifyURL       string
}

// RenderCertificate produces the certificate PDF: product identity, the
// per-section grade summary and the overall result, plus the public
// verification link.
func RenderCertificate(data CertificateData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Zertifikat "+data.TestNumber), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, tr("Zertifikat"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr("über die erfolgreiche Produktprüfung"), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(data.ProductName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr(data.Manufacturer), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	// Section summary table
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 8, tr("Abschnitt"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, tr("Durchschnitt"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 8, tr("Note"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 8, tr("Kategorie"), "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, s := range rating.Sections() {
		avg, grade, category := "-", "-", "-"
		if v := data.Computed.SectionAverage[s.Key]; v != nil {
			avg = formatAverage(*v)
		}
		if v := data.Computed.SectionGrade[s.Key]; v != nil {
			grade = formatGrade(*v)
		}
		if v := data.Computed.SectionCategory[s.Key]; v != nil {
			category = *v
		}
		pdf.CellFormat(80, 8, tr(fmt.Sprintf("%s: %s", s.Key, s.Label)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, avg, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, grade, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 8, tr(category), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, tr(fmt.Sprintf("Gesamtnote: %s (%s)",
		formatGrade(data.OverallGrade), data.OverallCategory)), "", 1, "C", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Prüfnummer: %s", data.TestNumber)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Ausgestellt am: %s", data.IssuedAt.Format("02.01.2006"))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Dieses Zertifikat ist online verifizierbar:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "U", 10)
	pdf.SetTextColor(0, 0, 200)
	pdf.WriteLinkString(6, data.VerifyURL, data.VerifyURL)
	pdf.SetTextColor(0, 0, 0)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAverage(v float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.2f", v), ".", ",")
}
