package mapper

import (
	"fmt"

	"github.com/portway/mapping-core/pkg/entity"
)

// Record is one raw source record as decoded JSON.
type Record = map[string]any

// Iterator provides streaming access to fetched records. The host pipeline
// implements it on top of whatever pagination the source requires.
type Iterator interface {
	// Next advances to the next record. Returns false when done or on error.
	Next() bool

	// Value returns the current record. Only valid after Next() returns true.
	Value() Record

	// Err returns any error encountered during iteration.
	Err() error

	// Close releases resources. Must be called when done.
	Close() error
}

// sliceIterator adapts an in-memory batch to the Iterator contract.
type sliceIterator struct {
	records []Record
	pos     int
}

// NewSliceIterator returns an Iterator over an in-memory record batch.
func NewSliceIterator(records []Record) Iterator {
	return &sliceIterator{records: records}
}

func (it *sliceIterator) Next() bool {
	if it.pos >= len(it.records) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator) Value() Record { return it.records[it.pos-1] }
func (it *sliceIterator) Err() error    { return nil }
func (it *sliceIterator) Close() error  { return nil }

// Result reports the outcome of mapping one batch of records of one kind.
type Result struct {
	// RunID tags all log lines and stats of one processing run.
	RunID string

	Kind string

	// Entities that passed the selector and mapped successfully.
	Entities []*entity.Entity

	// Filtered counts records dropped by selector.query.
	Filtered int

	// Rejected counts records whose identifier or blueprint could not be
	// resolved to a non-empty string.
	Rejected int

	// Errors collects per-record failures. One bad record never aborts the
	// batch.
	Errors []error
}

// RejectedError reports a record that produced no entity because a required
// mapping resolved to null or empty.
type RejectedError struct {
	Kind   string
	RawKey string // the record's "key" field, when present
	Reason string
}

func (e *RejectedError) Error() string {
	if e.RawKey != "" {
		return fmt.Sprintf("entity rejected for kind %q (key %q): %s", e.Kind, e.RawKey, e.Reason)
	}
	return fmt.Sprintf("entity rejected for kind %q: %s", e.Kind, e.Reason)
}
