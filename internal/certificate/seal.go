package certificate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
)

// SealData is everything printed on a seal image.
type SealData struct {
	ProductName     string
	OverallGrade    float64
	OverallCategory string
	TestNumber      string
	VerifyURL       string
}

const (
	sealSize   = 600
	sealMargin = 24
	qrSize     = 150
)

// RenderSeal composes a round seal badge: grade and category in the center,
// product name and test number around it, QR verification code at the
// bottom. Returns the encoded PNG.
func RenderSeal(data SealData) ([]byte, error) {
	qr, err := qrcode.New(data.VerifyURL, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode verification qr: %w", err)
	}
	qrImg := qr.Image(qrSize)

	dc := gg.NewContext(sealSize, sealSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	cx, cy := float64(sealSize)/2, float64(sealSize)/2

	// Outer ring
	dc.SetRGB(0.05, 0.33, 0.18)
	dc.DrawCircle(cx, cy, float64(sealSize)/2-sealMargin)
	dc.SetLineWidth(10)
	dc.Stroke()

	// Inner ring
	dc.DrawCircle(cx, cy, float64(sealSize)/2-sealMargin-22)
	dc.SetLineWidth(3)
	dc.Stroke()

	dc.SetRGB(0.05, 0.33, 0.18)
	dc.DrawStringAnchored("GEPRÜFTE QUALITÄT", cx, 110, 0.5, 0.5)
	dc.DrawStringAnchored(truncateLabel(data.ProductName, 40), cx, 150, 0.5, 0.5)

	// Grade block
	dc.DrawStringAnchored("NOTE", cx, cy-60, 0.5, 0.5)
	dc.DrawStringAnchored(formatGrade(data.OverallGrade), cx, cy-20, 0.5, 0.5)
	dc.DrawStringAnchored(strings.ToUpper(data.OverallCategory), cx, cy+20, 0.5, 0.5)

	// Verification QR
	dc.DrawImageAnchored(qrImg, int(cx), sealSize-qrSize/2-70, 0.5, 0.5)
	dc.DrawStringAnchored("Prüf-Nr. "+data.TestNumber, cx, float64(sealSize)-48, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode seal png: %w", err)
	}
	return buf.Bytes(), nil
}

// formatGrade renders a grade with German decimal comma.
func formatGrade(grade float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.1f", grade), ".", ",")
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
