// Package handler provides the Handler interface and its built-in
// implementations for dispatching log records to outputs.
//
// All handlers here are synchronous: Handle formats and writes the
// record before returning, and reports write failures to the caller.
//
// Built-in handlers:
//
//   - StreamHandler writes one formatted line per record to any
//     io.Writer (default: stdout), serializing concurrent writes.
//   - FileHandler appends to a file it opens and owns. It does not
//     rotate; pair it with external rotation when files must stay
//     bounded.
//   - MultiHandler fans out a single record to multiple child handlers.
//   - SlogHandler adapts the Handler interface to log/slog.Handler,
//     allowing jsonlog to serve as a drop-in backend for the standard
//     library.
//
// Handlers that are done with a record when Handle returns implement
// CanRecycleRecord, which lets callers return records to the pool.
package handler
