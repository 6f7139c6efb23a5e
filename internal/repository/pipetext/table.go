// Package pipetext loads the pipe-delimited text exports the analyzer
// consumes. Point-of-sale systems emit these files in a handful of
// encodings, so every load runs an explicit, ordered chain of decode
// attempts before parsing. Malformed rows are skipped; a missing required
// column or an unreadable source is a structural error for the caller.
package pipetext

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const delimiter = '|'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// cp1252 leaves a handful of byte values undefined; their presence means the
// file was not written as cp1252 and the decoder must not guess.
var cp1252Undefined = [...]byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}

// decodeText decodes raw export bytes to a string, trying each supported
// encoding in order: UTF-8 with BOM, plain UTF-8, Windows-1252, Latin-1.
// Latin-1 maps every byte, so the chain as a whole cannot fail; the order
// exists so the more specific encodings win when they apply.
func decodeText(raw []byte) string {
	if bytes.HasPrefix(raw, utf8BOM) {
		stripped := raw[len(utf8BOM):]
		if utf8.Valid(stripped) {
			return string(stripped)
		}
		raw = stripped
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	if !containsUndefinedCP1252(raw) {
		if decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
			return string(decoded)
		}
	}

	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	return string(decoded)
}

func containsUndefinedCP1252(raw []byte) bool {
	for _, b := range cp1252Undefined {
		if bytes.IndexByte(raw, b) >= 0 {
			return true
		}
	}
	return false
}

// table is one parsed export: a trimmed header index plus the data rows
// whose field count matched the header. Bad rows never make it in.
type table struct {
	columns map[string]int
	rows    [][]string
}

// readTable decodes and parses a pipe-delimited source. Rows with the wrong
// field count or broken quoting are skipped, not fatal; an empty source or
// one whose header lacks a required column is an error for the caller to
// wrap in its domain sentinel.
func readTable(src io.Reader, required []string) (*table, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(decodeText(raw)))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	t := &table{columns: columns}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Bad line; skip it and keep loading
			continue
		}
		if len(record) != len(header) {
			continue
		}
		t.rows = append(t.rows, record)
	}

	return t, nil
}

// field returns the trimmed cell value for a named column in a row.
func (t *table) field(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
