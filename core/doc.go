// Package core defines the shared types used across the jsonlog framework.
//
// It provides the Level type for severity filtering, the Record type that
// represents a single log event, and the Field type for zero-allocation
// structured key-value extras.
//
// A Record separates the message template (Format, Args) from the rendered
// text (Message): rendering happens once, inside the formatter, and the
// result is cached back onto the record. That cache write is the only
// mutation a formatter performs.
//
// Record objects are pooled via sync.Pool to keep the hot path
// allocation-free. Callers get a Record with GetRecord and must return it
// with PutRecord once the handler has consumed it. The pool pre-allocates
// the Extras slice with capacity 8, which covers most log calls without
// triggering a slice growth.
//
// Extras live in an ordered slice rather than a map so that formatters can
// emit them deterministically in attach order. Names reserved for the
// record's own machinery (see IsInternalAttr), and names with a leading
// underscore, never appear in formatted output.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary types but will cause an allocation.
package core
