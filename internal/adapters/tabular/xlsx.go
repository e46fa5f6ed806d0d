package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hotel_enrich/internal/domain"
)

const sheetName = "Enriched"

// DecodeXLSX reads the first sheet; every cell is taken as displayed text.
func DecodeXLSX(r io.Reader) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, ErrEmptyInput
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return domain.Table{}, ErrEmptyInput
	}
	return domain.FromRecords(rows[0], rows[1:]), nil
}

// EncodeXLSX writes t to a single styled sheet through the stream writer.
func EncodeXLSX(w io.Writer, t domain.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}
	if err := sw.SetColWidth(1, max(len(t.Columns), 1), 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	for i, rec := range t.Records() {
		cells := make([]interface{}, len(rec))
		for j, v := range rec {
			cells[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		var opts []excelize.RowOpts
		if i == 0 {
			opts = append(opts, excelize.RowOpts{StyleID: headerStyle})
		}
		if err := sw.SetRow(cell, cells, opts...); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}
