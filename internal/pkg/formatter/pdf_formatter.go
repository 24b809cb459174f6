package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Relative paths where the TTF font may live.
	// In Docker runtime we copy fonts to /app/ttf,
	// so for the compiled binary the path is ./ttf/DejaVuSans.ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}

	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}

	return ""
}

func (mf *PDFFormatter) Format(bp *entity.BusinessBlueprint) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Try to use UTF-8 capable DejaVuSans font, bundled with the project.
	fontName := "Arial"
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.MultiCell(0, 10, titleOf(bp), "", "", false)
	if bp.Subtitle != "" {
		pdf.SetFont(fontName, "", 13)
		pdf.MultiCell(0, 7, bp.Subtitle, "", "", false)
	}
	pdf.Ln(6)

	_, lineHeight := pdf.GetFontSize()

	writeHeading := func(text string) {
		pdf.SetFont(fontName, "B", 14)
		pdf.MultiCell(0, 8, text, "", "", false)
		pdf.SetFont(fontName, "", 12)
	}

	for _, section := range textSections(bp) {
		writeHeading(section.Heading)
		pdf.MultiCell(0, lineHeight*1.5, section.Items[0], "", "", false)
		pdf.Ln(3)
	}

	for _, section := range bp.ListSections() {
		if len(section.Items) == 0 {
			continue
		}
		writeHeading(section.Heading)
		for _, item := range section.Items {
			pdf.MultiCell(0, lineHeight*1.5, "- "+item, "", "", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
