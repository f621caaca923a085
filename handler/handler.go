package handler

import (
	"github.com/philipp01105/jsonlog/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log record
	Handle(rec *core.Record) error

	// Close closes the handler and releases resources
	Close() error
}

// Handlers that finish with a record before Handle returns can declare
// that by implementing
//
//	CanRecycleRecord() bool
//
// Callers check for the method before returning a record to the pool.
// A handler that retains the record past Handle must not implement it,
// or must return false.
