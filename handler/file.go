package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/formatter"
)

// FileConfig holds configuration for a file handler
type FileConfig struct {
	// Filename is the path to the log file. Parent directories are
	// created if missing.
	Filename string
	// Formatter to use (default: JSONFormatter with default config)
	Formatter formatter.Formatter
}

// FileHandler appends one formatted line per record to a file it owns.
// It does not rotate; pair it with external rotation (logrotate,
// copytruncate) when files must stay bounded.
type FileHandler struct {
	stream    *StreamHandler
	file      *os.File
	closeOnce sync.Once
	closeErr  error
}

// NewFileHandler creates a file handler appending to the given path.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filename is required")
	}

	dir := filepath.Dir(cfg.Filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &FileHandler{
		stream: NewStreamHandler(StreamConfig{
			Writer:    file,
			Formatter: cfg.Formatter,
		}),
		file: file,
	}, nil
}

// Handle formats the record and appends it to the file.
func (h *FileHandler) Handle(rec *core.Record) error {
	return h.stream.Handle(rec)
}

// CanRecycleRecord returns true because records are written before Handle returns.
func (h *FileHandler) CanRecycleRecord() bool {
	return true
}

// Close syncs and closes the file. Safe to call more than once.
func (h *FileHandler) Close() error {
	h.closeOnce.Do(func() {
		h.closeErr = h.stream.Close()
		if err := h.file.Sync(); err != nil && h.closeErr == nil {
			h.closeErr = err
		}
		if err := h.file.Close(); err != nil && h.closeErr == nil {
			h.closeErr = err
		}
	})
	return h.closeErr
}
