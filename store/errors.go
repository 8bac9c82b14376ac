package store

import "errors"

var (
	// ErrUnsupportedAction is returned for a query whose action the store
	// cannot dispatch. The wrapped message names the action.
	ErrUnsupportedAction = errors.New("dynacrud: unsupported action")

	// ErrEmptyTableName is returned when the store has no table configured.
	ErrEmptyTableName = errors.New("dynacrud: table name is required")

	// ErrUnsupportedFilter is returned for a filter on any action other
	// than a list or count query.
	ErrUnsupportedFilter = errors.New("dynacrud: filter is only supported on queries")
)
