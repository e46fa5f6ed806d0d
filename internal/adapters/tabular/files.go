package tabular

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"hotel_enrich/internal/domain"
)

// Reader loads registry exports from disk by extension.
type Reader struct {
	log zerolog.Logger
}

func NewReader(log zerolog.Logger) *Reader { return &Reader{log: log} }

func (r *Reader) ReadFile(path string) (domain.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Table{}, fmt.Errorf("failed to read input: %w", err)
		}
		t, d, err := DecodeCSV(data)
		if err != nil {
			return domain.Table{}, fmt.Errorf("%s: %w", path, err)
		}
		r.log.Info().Str("path", path).Str("encoding", d.Encoding).
			Str("delimiter", string(d.Delimiter)).Int("rows", t.Len()).Msg("input loaded")
		return t, nil
	case ".xlsx", ".xlsm":
		f, err := os.Open(path)
		if err != nil {
			return domain.Table{}, fmt.Errorf("failed to read input: %w", err)
		}
		defer f.Close()
		t, err := DecodeXLSX(f)
		if err != nil {
			return domain.Table{}, fmt.Errorf("%s: %w", path, err)
		}
		r.log.Info().Str("path", path).Int("rows", t.Len()).Msg("input loaded")
		return t, nil
	}
	return domain.Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Writer saves <base>.csv (UTF-8 with BOM) and <base>.xlsx side by side.
type Writer struct {
	SkipXLSX bool
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) WriteFiles(t domain.Table, dir, baseName string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var paths []string
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, t, true); err != nil {
		return nil, err
	}
	csvPath := filepath.Join(dir, baseName+".csv")
	if err := os.WriteFile(csvPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", csvPath, err)
	}
	paths = append(paths, csvPath)

	if w.SkipXLSX {
		return paths, nil
	}
	xlsxPath := filepath.Join(dir, baseName+".xlsx")
	f, err := os.Create(xlsxPath)
	if err != nil {
		return paths, fmt.Errorf("failed to create %s: %w", xlsxPath, err)
	}
	if err := EncodeXLSX(f, t); err != nil {
		f.Close()
		return paths, err
	}
	if err := f.Close(); err != nil {
		return paths, fmt.Errorf("failed to close %s: %w", xlsxPath, err)
	}
	return append(paths, xlsxPath), nil
}
