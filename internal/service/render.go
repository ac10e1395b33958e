package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/cvmatch-api/internal/model"
)

// Section labels printed into the résumé
const (
	labelSummary    = "HAKKINDA"
	labelExperience = "İŞ DENEYİMİ"
	labelEducation  = "EĞİTİM"
	labelProjects   = "PROJELER"
	labelSkills     = "YETKİNLİKLER"
	labelTechnical  = "Teknik: "
	labelSoft       = "Kişisel: "
	labelAINote     = "AI ÖNERİSİ"
)

type rgb struct{ r, g, b int }

var (
	colorDarkBlue  = rgb{0, 0, 139}
	colorGrey      = rgb{128, 128, 128}
	colorLightGrey = rgb{211, 211, 211}
	colorBlack     = rgb{0, 0, 0}
)

const (
	pageMargin = 40.0 // pt

	fontUTF8     = "CVFont"
	fontFallback = "Helvetica"
)

// PDFRenderer lays a CVData out on A4 pages
type PDFRenderer struct {
	fontBytes []byte
}

// NewPDFRenderer loads an optional UTF-8 TrueType font. Without it, text is
// rendered in Helvetica and characters outside cp1252 are lost.
func NewPDFRenderer(fontPath string) *PDFRenderer {
	r := &PDFRenderer{}
	if fontPath == "" {
		return r
	}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		log.Warn().Err(err).Str("font", fontPath).Msg("Font not found, falling back to Helvetica; Turkish characters may not render")
		return r
	}

	if err := checkFont(data); err != nil {
		log.Warn().Err(err).Str("font", fontPath).Msg("Font unusable, falling back to Helvetica; Turkish characters may not render")
		return r
	}

	r.fontBytes = data
	return r
}

// checkFont registers data on a scratch document. fpdf does not record a
// TrueType parse failure, so the font is selected to surface it.
func checkFont(data []byte) error {
	trial := fpdf.New("P", "pt", "A4", "")
	trial.AddUTF8FontFromBytes(fontUTF8, "", data)
	trial.SetFont(fontUTF8, "", 10)
	return trial.Error()
}

// layout carries the document and font state while drawing
type layout struct {
	pdf  *fpdf.Fpdf
	font string
	tr   func(string) string
}

func (l *layout) style(style string, size float64, c rgb) {
	l.pdf.SetFont(l.font, style, size)
	l.pdf.SetTextColor(c.r, c.g, c.b)
}

func (l *layout) paragraph(text string, lineHeight float64, align string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	l.pdf.MultiCell(0, lineHeight, l.tr(text), "", align, false)
}

func (l *layout) space(h float64) {
	l.pdf.Ln(h)
}

func (l *layout) section(title string) {
	l.space(12)
	l.style("", 12, colorDarkBlue)
	l.pdf.CellFormat(0, 14, l.tr(title), "", 1, "L", false, 0, "")

	left, _, right, _ := l.pdf.GetMargins()
	pageW, _ := l.pdf.GetPageSize()
	y := l.pdf.GetY() + 1
	l.pdf.SetDrawColor(colorLightGrey.r, colorLightGrey.g, colorLightGrey.b)
	l.pdf.SetLineWidth(1)
	l.pdf.Line(left, y, pageW-right, y)
	l.space(6)
}

// labeled writes a bold label followed by regular text on the same line
func (l *layout) labeled(label, text string, size, lineHeight float64) {
	l.style("B", size, colorBlack)
	l.pdf.Write(lineHeight, l.tr(label))
	l.style("", size, colorBlack)
	l.pdf.Write(lineHeight, l.tr(text))
	l.pdf.Ln(lineHeight)
}

// Render builds the PDF and returns its bytes
func (r *PDFRenderer) Render(cv *model.CVData) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	l := &layout{pdf: pdf, font: fontFallback, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if len(r.fontBytes) > 0 {
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8FontFromBytes(fontUTF8, style, r.fontBytes)
			pdf.SetFont(fontUTF8, style, 10)
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("loading font: %w", err)
		}
		l.font = fontUTF8
		l.tr = func(s string) string { return s }
	}

	title := strings.TrimSpace(cv.PersonalInfo.FirstName)
	if title == "" {
		title = "CV"
	}
	pdf.SetTitle(title+" Resume", true)
	pdf.AddPage()

	// Header
	l.style("", 24, colorDarkBlue)
	l.paragraph(strings.TrimSpace(cv.PersonalInfo.FirstName+" "+cv.PersonalInfo.LastName), 28, "C")
	l.space(5)
	l.style("", 14, colorGrey)
	l.paragraph(cv.PersonalInfo.Title, 18, "C")
	l.space(15)

	// Contact
	l.style("", 9, colorGrey)
	l.paragraph(ContactLine(cv.Contact), 12, "L")
	l.space(20)

	// Summary
	l.section(labelSummary)
	l.style("", 10, colorBlack)
	l.paragraph(cv.Summary, 14, "L")

	if len(cv.Experience) > 0 {
		l.section(labelExperience)
		for _, exp := range cv.Experience {
			l.labeled(exp.Company, " - "+exp.Position, 10, 14)
			l.style("I", 9, colorGrey)
			l.paragraph(exp.Date, 12, "L")
			l.style("", 10, colorBlack)
			l.paragraph(exp.Description, 14, "L")
			l.space(10)
		}
	}

	if len(cv.Education) > 0 {
		l.section(labelEducation)
		for _, edu := range cv.Education {
			l.style("B", 10, colorBlack)
			l.paragraph(edu.School, 14, "L")
			l.style("", 9, colorGrey)
			l.paragraph(edu.Degree+" | "+edu.Date, 12, "L")
			l.space(8)
		}
	}

	if len(cv.Projects) > 0 {
		l.section(labelProjects)
		for _, p := range cv.Projects {
			l.style("B", 10, colorBlack)
			l.paragraph(p.Name, 14, "L")
			l.style("I", 9, colorGrey)
			l.paragraph(p.Date, 12, "L")
			l.style("", 10, colorBlack)
			l.paragraph(p.Description, 14, "L")
			l.space(8)
		}
	}

	if len(cv.Skills.Technical) > 0 || len(cv.Skills.Soft) > 0 {
		l.section(labelSkills)
		if len(cv.Skills.Technical) > 0 {
			l.labeled(labelTechnical, strings.Join(cv.Skills.Technical, ", "), 10, 14)
		}
		if len(cv.Skills.Soft) > 0 {
			l.labeled(labelSoft, strings.Join(cv.Skills.Soft, ", "), 10, 14)
		}
	}

	if note := cv.Feedback(); note != "" {
		l.space(20)
		left, _, right, _ := pdf.GetMargins()
		pageW, _ := pdf.GetPageSize()
		pdf.SetDrawColor(colorLightGrey.r, colorLightGrey.g, colorLightGrey.b)
		pdf.Line(left, pdf.GetY(), pageW-right, pdf.GetY())
		l.section(labelAINote)
		l.style("I", 9, colorGrey)
		l.paragraph(note, 12, "L")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ContactLine joins the printable contact fields with " | "
func ContactLine(c model.Contact) string {
	var parts []string
	for _, v := range []string{c.Email, c.Phone, c.LinkedIn, c.Location} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}

// PDFDataURL encodes PDF bytes as a downloadable data URL
func PDFDataURL(pdfBytes []byte) string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfBytes)
}
