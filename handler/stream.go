package handler

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/formatter"
)

// StreamConfig holds configuration for a stream handler
type StreamConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: JSONFormatter with default config)
	Formatter formatter.Formatter
}

// StreamHandler writes one formatted line per record to an io.Writer.
// A mutex serializes formatting and writing, so a single handler is safe
// for concurrent loggers sharing one stream, and each record reaches the
// writer in a single Write call.
type StreamHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	mu              sync.Mutex // protects buf and writer
	buf             bytes.Buffer
	closed          chan struct{}
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(cfg StreamConfig) *StreamHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Config{})
	}

	h := &StreamHandler{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
		closed:    make(chan struct{}),
	}

	// Cache BufferFormatter so the hot path can format into the
	// handler-owned buffer instead of allocating per record.
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if h.bufferFormatter != nil {
		h.buf.Grow(256)
	}

	return h
}

// Handle formats the record and writes it followed by a newline.
func (h *StreamHandler) Handle(rec *core.Record) error {
	if h.bufferFormatter != nil {
		h.mu.Lock()
		h.buf.Reset()
		h.bufferFormatter.FormatRecord(rec, &h.buf)
		h.buf.WriteByte('\n')
		_, err := h.writer.Write(h.buf.Bytes())
		h.mu.Unlock()
		return err
	}

	data, err := h.formatter.Format(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	h.mu.Lock()
	_, err = h.writer.Write(data)
	h.mu.Unlock()
	return err
}

// CanRecycleRecord returns true because records are written before Handle returns.
func (h *StreamHandler) CanRecycleRecord() bool {
	return true
}

// Close marks the handler closed. The writer is not owned by the handler
// and stays open.
func (h *StreamHandler) Close() error {
	select {
	case <-h.closed:
		return nil // Already closed
	default:
		close(h.closed)
	}
	return nil
}
