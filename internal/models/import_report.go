package models

import "fmt"

// RowError describes one source row rejected during ingestion
type RowError struct {
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s %s", e.Line, e.Field, e.Message)
}

// ImportReport aggregates the outcome of ingesting one source file. Row
// failures are collected here rather than raised one at a time, so the
// caller sees the complete data-quality picture in a single pass.
type ImportReport struct {
	Source     string     `json:"source"`
	TotalRows  int        `json:"total_rows"`
	Inserted   int        `json:"inserted"`
	Duplicates int        `json:"duplicates"`
	Rejected   []RowError `json:"rejected"`
}

// HasRejections reports whether any rows failed schema validation
func (r *ImportReport) HasRejections() bool {
	return len(r.Rejected) > 0
}
