package benchmark

import (
	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/handler"
)

// noopHandler measures the logger pipeline without formatting or I/O.
// It renders the message so deferred templates are paid for, then
// recycles the record itself.
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(rec *core.Record) error {
	_ = len(rec.RenderMessage())
	core.PutRecord(rec)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
