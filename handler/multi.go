package handler

import (
	"github.com/philipp01105/jsonlog/core"
)

// MultiHandler sends log records to multiple handlers
type MultiHandler struct {
	handlers      []Handler
	recycleRecord bool // true when every child supports record recycling
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{
		handlers:      handlers,
		recycleRecord: true,
	}
	for _, h := range handlers {
		if rc, ok := h.(interface{ CanRecycleRecord() bool }); ok {
			if !rc.CanRecycleRecord() {
				m.recycleRecord = false
			}
		} else {
			m.recycleRecord = false
		}
	}
	return m
}

// Handle processes a log record by sending it to all handlers
func (h *MultiHandler) Handle(rec *core.Record) error {
	var lastErr error
	for _, handler := range h.handlers {
		if err := handler.Handle(rec); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// CanRecycleRecord returns true if the caller can recycle the record after
// Handle returns. This is safe when all child handlers finish synchronously.
func (h *MultiHandler) CanRecycleRecord() bool {
	return h.recycleRecord
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var lastErr error
	for _, handler := range h.handlers {
		if err := handler.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
