// Package export renders tabular reports as XLSX or PDF documents.
package export

import (
	"errors"
	"io"
	"strings"
)

var ErrUnsupportedFormat = errors.New("format must be xlsx or pdf")

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "xlsx" or "pdf" in any case; empty means xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatXLSX):
		return FormatXLSX, nil
	case string(FormatPDF):
		return FormatPDF, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (f Format) Extension() string {
	return "." + string(f)
}

// Table is a titled grid of text cells. Every row should have len(Headers) cells.
type Table struct {
	Title   string
	Details [][2]string // label/value pairs shown under the title
	Headers []string
	Rows    [][]string
	Footer  string
}

// Write renders t in format f to w.
func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, t)
	case FormatPDF:
		return WritePDF(w, t)
	default:
		return ErrUnsupportedFormat
	}
}
