package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Title:   "Attendance Report",
		Details: [][2]string{{"Month", "2024-02"}},
		Headers: []string{"Name", "Attendance", "Medical"},
		Rows: [][]string{
			{"Nimal Perera", "18", "1.5"},
			{"Kasun Silva", "20", "0"},
		},
		Footer: "Generated 2024-03-01",
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())
	assert.Equal(t, ".pdf", f.Extension())

	_, err = ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Attendance Report", title)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)

	var found bool
	for _, r := range rows {
		if len(r) >= 3 && r[0] == "Nimal Perera" {
			found = true
			assert.Equal(t, "1.5", r[2])
		}
	}
	assert.True(t, found)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, sampleTable()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
