// Package tabular reads registry exports (CSV in any of the usual French
// encodings, or XLSX) into a domain.Table and writes enriched tables back.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"hotel_enrich/internal/domain"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrUndetectableCSV   = errors.New("could not detect CSV encoding and delimiter")
	ErrEmptyInput        = errors.New("input has no header row")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Dialect is what sniffing settled on for a CSV payload.
type Dialect struct {
	Encoding  string
	Delimiter rune
}

type candidate struct {
	name string
	dec  encoding.Encoding // nil: bytes are already UTF-8
}

// Tried in order; the first encoding that decodes cleanly wins.
var candidates = []candidate{
	{name: "utf-8-sig", dec: unicode.UTF8BOM},
	{name: "utf-8"},
	{name: "cp1252", dec: charmap.Windows1252},
	{name: "latin-1", dec: charmap.ISO8859_1},
}

var delimiters = []rune{',', ';'}

// DecodeCSV sniffs encoding and delimiter and parses the whole payload.
// Within an encoding the delimiter that splits the header into the most
// columns wins; a header of a single column is not accepted.
func DecodeCSV(data []byte) (domain.Table, Dialect, error) {
	for _, c := range candidates {
		text, ok := decode(data, c)
		if !ok {
			continue
		}
		delim, ok := sniffDelimiter(text)
		if !ok {
			continue
		}
		t, err := parseCSV(text, delim)
		if err != nil {
			continue
		}
		return t, Dialect{Encoding: c.name, Delimiter: delim}, nil
	}
	return domain.Table{}, Dialect{}, ErrUndetectableCSV
}

func decode(data []byte, c candidate) (string, bool) {
	switch c.name {
	case "utf-8-sig":
		if !bytes.HasPrefix(data, utf8BOM) {
			return "", false
		}
	case "utf-8":
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	}
	out, _, err := transform.Bytes(c.dec.NewDecoder(), data)
	if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

func sniffDelimiter(text string) (rune, bool) {
	best, bestCols := rune(0), 1
	for _, d := range delimiters {
		r := newCSVReader(strings.NewReader(text), d)
		header, err := r.Read()
		if err != nil {
			continue
		}
		if len(header) > bestCols {
			best, bestCols = d, len(header)
		}
	}
	return best, best != 0
}

func parseCSV(text string, delim rune) (domain.Table, error) {
	r := newCSVReader(strings.NewReader(text), delim)
	records, err := r.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return domain.Table{}, ErrEmptyInput
	}
	return domain.FromRecords(records[0], records[1:]), nil
}

func newCSVReader(r io.Reader, delim rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// EncodeCSV writes t as comma-separated UTF-8, header first, optionally
// preceded by a BOM so spreadsheet tools detect the encoding.
func EncodeCSV(w io.Writer, t domain.Table, bom bool) error {
	if bom {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// CSVCodec is the in-memory CSV form used by the API. Decode failures wrap
// domain.ErrInvalidInput.
type CSVCodec struct {
	BOM bool
}

func (c CSVCodec) Decode(data []byte) (domain.Table, error) {
	t, _, err := DecodeCSV(data)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return t, nil
}

func (c CSVCodec) Encode(t domain.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, t, c.BOM); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
