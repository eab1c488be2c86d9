package special

import (
	"errors"
	"fmt"
)

// ErrEmptyFile is returned when an uploaded sheet has no data rows.
var ErrEmptyFile = errors.New("file is empty")

// ErrInvalidFormat is returned when an uploaded file cannot be parsed as a
// workbook or delimited text.
var ErrInvalidFormat = errors.New("invalid file format")

// ErrDuplicateSystemNumber is returned by the direct-create path when the
// system number already belongs to another record.
var ErrDuplicateSystemNumber = errors.New("system_number already exists")

// RowError carries the validation failures of a single sheet row. Row is the
// 1-indexed spreadsheet row number including the header row.
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ValidationError aggregates every failed row of a batch. A batch with any
// failed row performs no writes; the whole report is returned at once.
type ValidationError struct {
	RowErrors []RowError
	ValidRows int
	TotalRows int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d of %d rows", len(e.RowErrors), e.TotalRows)
}
