// Package formatter defines how log records are serialized into bytes.
//
// It exposes three interfaces: Formatter, which returns a []byte,
// WriterFormatter, which writes directly to an io.Writer, and
// BufferFormatter, which fills a caller-provided buffer. Handlers check
// for the latter two at construction time and prefer them when available,
// eliminating intermediate allocations on the write path.
//
// JSONFormatter, the one built-in formatter, turns a record into a single
// JSON object with a fixed, configurable shape: the standard fields
// (timestamp, level, logger, message, module, function, line) in the
// configured order, then the record's extras in attach order, then the
// exception and stack_info keys when present. Key collisions keep the
// first position and the latest value, so the same record always encodes
// to the same bytes. Timestamps are normalized to UTC and rendered with
// millisecond precision and an explicit "+00:00" offset.
//
// The JSON is built manually with a pooled bytes.Buffer and Go's
// Append-style functions (time.AppendFormat, strconv.AppendInt) rather
// than encoding/json, both for speed and because the reflection encoder
// cannot preserve key order. Values without a native JSON shape fall back
// to their textual form, so Format never fails on a well-formed record.
//
// The emitted bytes carry no trailing newline. Handlers add the line
// framing that their transport needs.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
