package store

import "github.com/jacentio/dynacrud/query"

// Status classifies the outcome of a single query.
type Status int

const (
	// Done means the store performed the action.
	Done Status = iota

	// NotFound means a get found no item.
	NotFound

	// ConditionNotMet means a conditional write was rejected: the item was
	// missing for put/update/delete, or already present for a create-only put.
	ConditionNotMet
)

func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case NotFound:
		return "not found"
	case ConditionNotMet:
		return "condition not met"
	}
	return "unknown"
}

// Result is the logical outcome of an invoked query.
type Result struct {
	Status Status

	// Item is the record for get, put and update. A successful delete
	// yields an empty, non-nil record.
	Item query.Record

	// Items holds the records of a list query.
	Items []query.Record

	// Count is the number of matching items. Counted is set when the
	// store returned only a count (Select COUNT) and no items.
	Count   int
	Counted bool
}

// Ok reports whether the query produced a value.
func (r Result) Ok() bool {
	return r.Status == Done
}
