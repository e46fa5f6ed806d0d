package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"hotel_enrich/internal/domain"
	"hotel_enrich/internal/enrich"
)

// batchSize bounds the rows per INSERT so a statement stays under max_allowed_packet.
const batchSize = 500

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valBool(s string) bool { return s == "true" }

// Column widths of enriched_hotels for values copied from input cells or
// lookups. The full row always survives in the `row` JSON column.
const (
	maxNameRunes   = 16000 // TEXT holds 65535 bytes, 4 per utf8mb4 rune
	maxPostalRunes = 64
	maxLabelRunes  = 255
)

// clip cuts s to at most n runes.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Sink stores a run's output table in enriched_hotels.
type Sink struct{ db *sql.DB }

func New(db *sql.DB) *Sink { return &Sink{db: db} }

// SaveTable replaces every stored row of runID with t, in one transaction.
func (s *Sink) SaveTable(ctx context.Context, runID string, t domain.Table) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteRunSQL, runID); err != nil {
		return fmt.Errorf("clear run %s: %w", runID, err)
	}
	for start := 0; start < len(t.Rows); start += batchSize {
		end := min(start+batchSize, len(t.Rows))
		if err = insertBatch(ctx, tx, runID, start, t.Rows[start:end]); err != nil {
			return fmt.Errorf("insert rows %d-%d: %w", start, end-1, err)
		}
	}
	return tx.Commit()
}

func insertBatch(ctx context.Context, tx *sql.Tx, runID string, offset int, rows []domain.Row) error {
	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*17) // 17 params per row
	for i, r := range rows {
		raw, err := json.Marshal(r)
		if err != nil {
			return err
		}
		values = append(values, rowPlaceholders)
		args = append(args,
			runID,
			offset+i,
			valStr(clip(r[domain.ColNomCommercial], maxNameRunes)),
			valStr(clip(r[domain.ColCodePostal], maxPostalRunes)),
			valStr(r[enrich.ColDepartment]),
			valStr(clip(r[enrich.ColRegion], maxLabelRunes)),
			valStr(r[enrich.ColCapacityRange]),
			r[enrich.ColSizeSegment],
			valBool(r[enrich.ColRestaurantFlag]),
			valBool(r[enrich.ColSpaFlag]),
			valStr(clip(r[enrich.ColHotelDomain], maxLabelRunes)),
			r[enrich.ColOwnership],
			valStr(clip(r[enrich.ColGroupName], maxLabelRunes)),
			valBool(r[enrich.ColLargeProperty]),
			valBool(r[enrich.ColBoutique]),
			r[enrich.ColContext],
			string(raw),
		)
	}
	_, err := tx.ExecContext(ctx, insertRowsPrefix+strings.Join(values, ","), args...)
	return err
}

func (s *Sink) CountRun(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, countRunSQL, runID).Scan(&n)
	return n, err
}

// GetRow returns the full stored row; domain.ErrNotFound when absent.
func (s *Sink) GetRow(ctx context.Context, runID string, index int) (domain.Row, error) {
	var raw []byte
	if err := s.db.QueryRowContext(ctx, getRowSQL, runID, index).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var r domain.Row
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	return r, nil
}

// CountByOwnership groups a stored run by independent_or_group.
func (s *Sink) CountByOwnership(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, countByOwnershipSQL, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return nil, err
		}
		out[k] = n
	}
	return out, rows.Err()
}
