package domain

import "context"

// TableReader loads an input table (CSV/XLSX) from disk.
type TableReader interface {
	ReadFile(path string) (Table, error)
}

// TableWriter persists the enriched table and returns the written paths.
type TableWriter interface {
	WriteFiles(t Table, dir, baseName string) ([]string, error)
}

// TableCodec converts an in-memory payload (API bodies) to and from a Table.
type TableCodec interface {
	Decode(data []byte) (Table, error)
	Encode(t Table) ([]byte, error)
}

// OutputSink receives the run's output table in an alternate medium.
type OutputSink interface {
	SaveTable(ctx context.Context, runID string, t Table) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models served by the API.

type DepartmentView struct {
	PostalCode string `json:"postal_code"`
	Department string `json:"department"`
	Name       string `json:"name,omitempty"`
	Region     string `json:"region"`
}

type DomainView struct {
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	Ownership string `json:"independent_or_group"`
	GroupName string `json:"group_name,omitempty"`
}

// EnrichedCSV is a cached API enrichment result.
type EnrichedCSV struct {
	Body []byte `json:"body"`
	Rows int    `json:"rows"`
}
