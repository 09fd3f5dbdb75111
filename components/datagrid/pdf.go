package datagrid

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer lays a Document out as an A4 table, repeating the header row on
// every page.
type PDFRenderer struct {
	orientation string
	fontSize    float64
	rowHeight   float64
	margin      float64
	compress    bool
}

// PDFOption customizes the renderer.
type PDFOption func(*PDFRenderer)

// WithLandscape switches to landscape pages, useful for wide tables.
func WithLandscape() PDFOption {
	return func(r *PDFRenderer) {
		r.orientation = "L"
	}
}

// WithPDFFontSize overrides the body font size in points.
func WithPDFFontSize(size float64) PDFOption {
	return func(r *PDFRenderer) {
		if size > 0 {
			r.fontSize = size
			r.rowHeight = size * 0.7
		}
	}
}

// WithPDFCompression toggles stream compression, on by default.
func WithPDFCompression(on bool) PDFOption {
	return func(r *PDFRenderer) {
		r.compress = on
	}
}

// NewPDFRenderer builds a renderer with portrait A4 defaults.
func NewPDFRenderer(opts ...PDFOption) *PDFRenderer {
	r := &PDFRenderer{
		orientation: "P",
		fontSize:    9,
		rowHeight:   7,
		margin:      10,
		compress:    true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderDocument implements DocumentRenderer. Long cell text wraps inside its
// column and the row grows to fit the tallest cell.
func (r *PDFRenderer) RenderDocument(doc Document) ([]byte, error) {
	pdf := fpdf.New(r.orientation, "mm", "A4", "")
	pdf.SetMargins(r.margin, r.margin, r.margin)
	pdf.SetAutoPageBreak(false, r.margin)
	pdf.SetCompression(r.compress)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, pageHeight := pdf.GetPageSize()
	columns := len(doc.Header)
	if columns == 0 {
		columns = 1
	}
	colWidth := (pageWidth - 2*r.margin) / float64(columns)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", r.fontSize)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		r.writeRow(pdf, wrapRow(pdf, tr, doc.Header, len(doc.Header), colWidth), colWidth, true)
		pdf.SetFont("Helvetica", "", r.fontSize)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetHeaderFunc(func() {
		if len(doc.Header) > 0 {
			writeHeader()
		}
	})

	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", r.fontSize)
	for i, row := range doc.Body {
		cells := wrapRow(pdf, tr, row, columns, colWidth)
		if pdf.GetY()+r.rowHeightFor(cells) > pageHeight-r.margin {
			pdf.AddPage()
		}
		pdf.SetFillColor(245, 245, 245)
		r.writeRow(pdf, cells, colWidth, i%2 == 1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("datagrid: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapRow translates each of the first n values and splits it into lines that
// fit a column.
func wrapRow(pdf *fpdf.Fpdf, tr func(string) string, values []string, n int, width float64) [][]string {
	cells := make([][]string, n)
	for j := range cells {
		value := ""
		if j < len(values) {
			value = values[j]
		}
		for _, line := range pdf.SplitLines([]byte(tr(value)), width) {
			cells[j] = append(cells[j], string(line))
		}
		if len(cells[j]) == 0 {
			cells[j] = []string{""}
		}
	}
	return cells
}

func (r *PDFRenderer) rowHeightFor(cells [][]string) float64 {
	lines := 1
	for _, cell := range cells {
		lines = max(lines, len(cell))
	}
	return float64(lines) * r.rowHeight
}

// writeRow draws one bordered row at the cursor and moves below it.
func (r *PDFRenderer) writeRow(pdf *fpdf.Fpdf, cells [][]string, colWidth float64, fill bool) {
	height := r.rowHeightFor(cells)
	x, y := pdf.GetXY()
	style := "D"
	if fill {
		style = "FD"
	}
	for j, lines := range cells {
		left := x + float64(j)*colWidth
		pdf.Rect(left, y, colWidth, height, style)
		for k, line := range lines {
			pdf.SetXY(left, y+float64(k)*r.rowHeight)
			pdf.CellFormat(colWidth, r.rowHeight, line, "", 0, "L", false, 0, "")
		}
	}
	pdf.SetXY(x, y+height)
}
