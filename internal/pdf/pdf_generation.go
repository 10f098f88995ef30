package pdf

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders a printable guest pass.
type Generator interface {
	GeneratePass(w io.Writer, data PassData) error
}

// PassGenerator renders A6 passes with gofpdf.
type PassGenerator struct {
	FontPath string // optional UTF-8 TTF; core Helvetica otherwise
	fontName string
}

type PassData struct {
	Couple    string
	DateLabel string
	Venue     string
	Address   string
	Ceremony  string
	Reception string
	GuestName string
	Pases     int
	Code      string
}

const (
	pageWidth = 105.0
	margin    = 10.0
)

func NewPassGenerator(fontPath string) *PassGenerator {
	name := "Helvetica"
	if fontPath != "" {
		name = "DejaVu"
	}
	return &PassGenerator{FontPath: fontPath, fontName: name}
}

func (g *PassGenerator) GeneratePass(w io.Writer, data PassData) error {
	pdf := gofpdf.New("P", "mm", "A6", "")
	pdf.SetTitle("Pase "+data.GuestName, true)
	pdf.SetAuthor(data.Couple, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)

	tr := g.setupFont(pdf)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 9, tr(data.Couple), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, tr(data.DateLabel), "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, tr("Pase de invitado"), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "B", 18)
	pdf.MultiCell(0, 9, tr(data.GuestName), "", "C", false)

	pdf.SetFont(g.fontName, "B", 30)
	pdf.CellFormat(0, 16, fmt.Sprintf("%d", data.Pases), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 5, tr(pasesLabel(data.Pases)), "", 1, "C", false, 0, "")
	g.hr(pdf)

	g.kvLine(pdf, tr, "Lugar", data.Venue)
	if data.Address != "" {
		pdf.SetFont(g.fontName, "", 8)
		pdf.MultiCell(0, 4, tr(data.Address), "", "L", false)
	}
	g.kvLine(pdf, tr, "Ceremonia", data.Ceremony)
	g.kvLine(pdf, tr, "Recepción", data.Reception)

	pdf.SetY(-margin - 6)
	pdf.SetFont(g.fontName, "", 8)
	pdf.CellFormat(0, 6, tr("Código: "+data.Code), "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pass: %w", err)
	}
	return nil
}

// setupFont registers the TTF when configured and returns the text
// translator matching the font: identity for UTF-8, cp1252 for core fonts.
func (g *PassGenerator) setupFont(pdf *gofpdf.Fpdf) func(string) string {
	if g.FontPath != "" {
		pdf.AddUTF8Font(g.fontName, "", g.FontPath)
		pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}

func (g *PassGenerator) kvLine(pdf *gofpdf.Fpdf, tr func(string) string, key, val string) {
	if val == "" {
		return
	}
	pdf.SetFont(g.fontName, "B", 9)
	pdf.CellFormat(25, 6, tr(key+":"), "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 9)
	pdf.CellFormat(0, 6, tr(val), "", 1, "L", false, 0, "")
}

func (g *PassGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(margin, y, pageWidth-margin, y)
	pdf.SetY(y + 2)
}

func pasesLabel(n int) string {
	if n == 1 {
		return "pase"
	}
	return "pases"
}
