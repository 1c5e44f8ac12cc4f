package domain

import "context"

// RowError reports why a single CSV row was rejected. Row numbers are
// 1-based and count the header row.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult aggregates a CSV import. Imports are row-at-a-time with
// partial-success semantics; a failed row never aborts the batch.
type ImportResult struct {
	Success int        `json:"success"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors"`
}

// ValidateResult is the dry-run pre-import check.
type ValidateResult struct {
	Valid  bool       `json:"valid"`
	Rows   int        `json:"rows"`
	Errors []RowError `json:"errors"`
}

// ExportResult carries rendered CSV text and the record count.
type ExportResult struct {
	CSV   string `json:"csv"`
	Count int    `json:"count"`
}

type CSVUsecase interface {
	Import(ctx context.Context, csvData string) (*ImportResult, error)
	Validate(ctx context.Context, csvData string) (*ValidateResult, error)
	Export(ctx context.Context, filter *SearchFilter) (*ExportResult, error)
}
