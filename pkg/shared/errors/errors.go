package errors

import "fmt"

// FatalInputError indicates the rule catalog could not be obtained. No
// sensible output is possible without it, so the whole run aborts.
type FatalInputError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *FatalInputError) Error() string {
	return fmt.Sprintf("failed to obtain rule catalog from %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FatalInputError) Unwrap() error {
	return e.Err
}

// NewFatalInputError creates a FatalInputError for the given catalog source.
func NewFatalInputError(source string, err error) error {
	return &FatalInputError{Source: source, Err: err}
}

// NoDataError indicates that both the live implementation-status fetch and
// the cache fallback failed. It carries both causes so the report can list
// them.
type NoDataError struct {
	FetchErr error
	CacheErr error
}

// Error implements the error interface.
func (e *NoDataError) Error() string {
	return fmt.Sprintf("no implementation-status data available: live fetch failed (%v), cache fallback failed (%v)",
		e.FetchErr, e.CacheErr)
}

// NewNoDataError creates a NoDataError from the two failure causes.
func NewNoDataError(fetchErr, cacheErr error) error {
	return &NoDataError{FetchErr: fetchErr, CacheErr: cacheErr}
}

// StructureError indicates the owned region of the configuration document is
// not in the expected shape. The editor aborts the write and leaves the
// original file untouched rather than guess.
type StructureError struct {
	Table  string
	Key    string
	Reason string
}

// Error implements the error interface.
func (e *StructureError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("unexpected structure in table %q, key %q: %s", e.Table, e.Key, e.Reason)
	}
	return fmt.Sprintf("unexpected structure in table %q: %s", e.Table, e.Reason)
}

// NewStructureError creates a StructureError for the given table and key.
func NewStructureError(table, key, reason string) error {
	return &StructureError{Table: table, Key: key, Reason: reason}
}
