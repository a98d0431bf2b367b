package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"empresa", "tipo_arquivo", "envios"},
		Rows: []map[string]string{
			{"empresa": "Café & Cia S/A", "tipo_arquivo": "nfe", "envios": "3"},
			{"empresa": "ACME", "tipo_arquivo": "planilha", "envios": "1"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "\ufeffempresa;tipo_arquivo;envios\nCafé & Cia S/A;nfe;3\nACME;planilha;1\n", string(out))

	plain := &CSVExporter{}
	out, err = plain.Render(Dataset{Headers: []string{"a", "b"}, Rows: []map[string]string{{"a": "x,y"}}})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n\"x,y\",\n", string(out))

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Envios 2024-03")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterPaginatesLongReports(t *testing.T) {
	data := Dataset{Headers: []string{"empresa", "envios"}}
	for i := 0; i < 120; i++ {
		data.Rows = append(data.Rows, map[string]string{"empresa": fmt.Sprintf("Empresa %03d", i), "envios": "1"})
	}
	short, err := NewPDFExporter().Render(sampleDataset(), "")
	require.NoError(t, err)
	long, err := NewPDFExporter().Render(data, "Envios")
	require.NoError(t, err)
	assert.Greater(t, len(long), len(short))
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset(), "Envios 2024/03")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Envios 202403")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"empresa", "tipo_arquivo", "envios"}, rows[0])
	assert.Equal(t, "ACME", rows[2][0])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName("[]"))
	assert.Len(t, []rune(sheetName("a very long report title that overflows")), 31)
}
