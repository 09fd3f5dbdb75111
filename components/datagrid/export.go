package datagrid

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	CSVFilename = "table-data.csv"
	CSVMIMEType = "text/csv;charset=utf-8;"
	PDFFilename = "table-data.pdf"
	PDFMIMEType = "application/pdf"

	csvDelimiter = ";"
	csvNewline   = "\r\n"
)

// Payload is a downloadable export.
type Payload struct {
	Filename string
	MIMEType string
	Data     []byte
}

// EncodeCSV renders the result as ';'-delimited, CRLF-separated text. Body
// cells are always quoted; numbers with a fractional part get a leading space
// inside the quotes so spreadsheets keep them as text.
func EncodeCSV(res Result) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(res.Labels(), csvDelimiter))
	for _, row := range res.Rows {
		buf.WriteString(csvNewline)
		for i, cell := range row {
			if i > 0 {
				buf.WriteString(csvDelimiter)
			}
			buf.WriteString(quoteCSVCell(cell))
		}
	}
	return buf.Bytes()
}

// quoteCSVCell always quotes and doubles embedded quotes, so a value holding a
// quote or the delimiter still parses as one field. Fractional numbers get a
// leading space to stop spreadsheets from reformatting them.
func quoteCSVCell(cell Cell) string {
	value := strings.ReplaceAll(cell.String(), `"`, `""`)
	if cell.HasFraction() {
		return `" ` + value + `"`
	}
	return `"` + value + `"`
}

// CSVPayload wraps EncodeCSV for download.
func CSVPayload(res Result) Payload {
	return Payload{
		Filename: CSVFilename,
		MIMEType: CSVMIMEType,
		Data:     EncodeCSV(res),
	}
}

// Document is the printable table handed to a document renderer.
type Document struct {
	Title  string
	Header []string
	Body   [][]string
}

// NewDocument coerces every cell of the result to its display string.
func NewDocument(title string, res Result) Document {
	return Document{
		Title:  title,
		Header: res.Labels(),
		Body:   res.Strings(),
	}
}

// DocumentRenderer writes a Document in a printable format.
type DocumentRenderer interface {
	RenderDocument(doc Document) ([]byte, error)
}

// DocumentPayload renders the document with the given renderer.
func DocumentPayload(doc Document, renderer DocumentRenderer) (Payload, error) {
	if renderer == nil {
		renderer = NewPDFRenderer()
	}
	data, err := renderer.RenderDocument(doc)
	if err != nil {
		return Payload{}, fmt.Errorf("datagrid: render document: %w", err)
	}
	return Payload{
		Filename: PDFFilename,
		MIMEType: PDFMIMEType,
		Data:     data,
	}, nil
}
