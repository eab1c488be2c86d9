package special

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	entity "kms.GO/model/entity"
	specialRepo "kms.GO/model/repository/special"
)

// ImportMode selects how a validated batch is merged into the store.
type ImportMode string

const (
	// ModeAppend upserts each row by system_number, updating matches and
	// inserting the rest.
	ModeAppend ImportMode = "append"
	// ModeReplace discards the whole collection before inserting the batch.
	ModeReplace ImportMode = "replace"
)

// ParseMode normalizes a client-supplied mode string; anything but
// "replace" means append.
func ParseMode(raw string) ImportMode {
	if raw == string(ModeReplace) {
		return ModeReplace
	}
	return ModeAppend
}

// ImportOptions configures an import run.
type ImportOptions struct {
	Mode     ImportMode
	Filename string
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int
	Created   int
	Updated   int
	Imported  []entity.Special
	TotalTime time.Duration
}

// ImportSpecials reads tabular data from r, validates every row, and merges
// the batch into the store. Validation is all-or-nothing: if any row fails,
// a *ValidationError carrying every row's report is returned and nothing is
// written.
func ImportSpecials(repo *specialRepo.SpecialRepository, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()

	rows, err := ParseSheet(r, opts.Filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	batch := make([]entity.Special, 0, len(rows))
	var rowErrs []RowError
	for i, row := range rows {
		s, errs := ValidateRow(row)
		if len(errs) > 0 {
			// Sheet rows are 1-indexed and the header occupies row 1.
			rowErrs = append(rowErrs, RowError{Row: i + 2, Errors: errs})
			continue
		}
		batch = append(batch, s)
	}
	if len(rowErrs) > 0 {
		return nil, &ValidationError{
			RowErrors: rowErrs,
			ValidRows: len(batch),
			TotalRows: len(rows),
		}
	}

	res, err := Reconcile(repo, batch, opts.Mode)
	if err != nil {
		return nil, err
	}
	res.TotalTime = time.Since(start)
	return res, nil
}

// Reconcile merges a validated batch into the store. The batch is assumed
// well-formed; no validation happens here.
func Reconcile(repo *specialRepo.SpecialRepository, batch []entity.Special, mode ImportMode) (*ImportResult, error) {
	if mode == ModeReplace {
		return reconcileReplace(repo, batch)
	}
	return reconcileAppend(repo, batch)
}

// reconcileReplace clears the store, then inserts the batch in order with
// fresh ids and one batch-wide timestamp.
func reconcileReplace(repo *specialRepo.SpecialRepository, batch []entity.Special) (*ImportResult, error) {
	if err := repo.DeleteAll(); err != nil {
		return nil, fmt.Errorf("clear store: %w", err)
	}
	now := time.Now().UnixMilli()
	inserted := make([]entity.Special, len(batch))
	for i, s := range batch {
		s.ID = uuid.NewString()
		s.CreatedAt = now
		s.UpdatedAt = now
		inserted[i] = s
	}
	if err := repo.WriteAll(inserted); err != nil {
		return nil, err
	}
	return &ImportResult{
		TotalRows: len(batch),
		Created:   len(batch),
		Imported:  inserted,
	}, nil
}

// reconcileAppend is a sequential fold over one in-memory copy of the
// collection: records inserted earlier in the batch are visible to later
// system_number lookups. A single WriteAll persists the whole batch.
func reconcileAppend(repo *specialRepo.SpecialRepository, batch []entity.Special) (*ImportResult, error) {
	all, err := repo.ReadAll()
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	res := &ImportResult{TotalRows: len(batch)}
	for _, incoming := range batch {
		idx := -1
		for i, existing := range all {
			if existing.SystemNumber == incoming.SystemNumber {
				idx = i
				break
			}
		}
		if idx >= 0 {
			// Field-by-field overwrite; only identity and created_at survive.
			incoming.ID = all[idx].ID
			incoming.CreatedAt = all[idx].CreatedAt
			incoming.UpdatedAt = now
			all[idx] = incoming
			res.Updated++
		} else {
			incoming.ID = uuid.NewString()
			incoming.CreatedAt = now
			incoming.UpdatedAt = now
			all = append(all, incoming)
			res.Created++
		}
		res.Imported = append(res.Imported, incoming)
	}

	if err := repo.WriteAll(all); err != nil {
		return nil, err
	}
	return res, nil
}
