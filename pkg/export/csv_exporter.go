package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is a header row plus rows keyed by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter renders a Dataset as CSV. The default layout targets
// spreadsheet users in pt-BR locales: ";" separator and a UTF-8 byte order
// mark so accented company names survive opening the file in Excel.
type CSVExporter struct {
	Comma rune
	BOM   bool
}

// NewCSVExporter builds an exporter with the pt-BR spreadsheet layout.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{Comma: ';', BOM: true}
}

// Render encodes data. Cells missing from a row are written empty.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	if e.BOM {
		buf.Write(utf8BOM)
	}
	writer := csv.NewWriter(buf)
	if e.Comma != 0 {
		writer.Comma = e.Comma
	}
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	record := make([]string, len(data.Headers))
	for n, row := range data.Rows {
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", n+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
