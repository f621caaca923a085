package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/philipp01105/jsonlog/core"
)

// ErrorKey is the attribute key the slog bridge treats as the record's
// error. An attribute with this key and an error value moves onto the
// record itself instead of the extras, so it renders as an exception.
const ErrorKey = "error"

// SlogHandler is an adapter that implements slog.Handler on top of a
// jsonlog Handler. This allows jsonlog to serve as a drop-in backend
// for log/slog.
type SlogHandler struct {
	handler Handler
	level   core.Level
	name    string
	attrs   []core.Field
	group   string
	recycle bool
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
func NewSlogHandler(h Handler, level core.Level) *SlogHandler {
	s := &SlogHandler{
		handler: h,
		level:   level,
	}
	if rc, ok := h.(interface{ CanRecycleRecord() bool }); ok {
		s.recycle = rc.CanRecycleRecord()
	}
	return s
}

// WithName returns a copy of the handler that stamps records with the
// given logger name.
func (s *SlogHandler) WithName(name string) *SlogHandler {
	c := *s
	c.name = name
	return &c
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.level
}

// Handle converts a slog.Record to a core.Record and passes it to the
// wrapped handler. An ungrouped attribute named ErrorKey holding an error
// becomes the record's error; everything else lands in the extras.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	rec := core.GetRecord()
	if record.Time.IsZero() {
		rec.Time = time.Now()
	} else {
		rec.Time = record.Time
	}
	rec.Level = slogLevelToCore(record.Level)
	rec.Logger = s.name
	rec.Format = record.Message

	if record.PC != 0 {
		if o := core.OriginFromPC(record.PC); o.Defined {
			rec.Module = o.Module
			rec.Function = o.Function
			rec.Line = o.Line
		}
	}

	// Add pre-configured attrs
	if len(s.attrs) > 0 {
		rec.Extras = append(rec.Extras, s.attrs...)
	}

	// Add record attrs
	record.Attrs(func(a slog.Attr) bool {
		if s.group == "" && a.Key == ErrorKey {
			a.Value = a.Value.Resolve()
			if err, ok := a.Value.Any().(error); ok {
				rec.Err = err
				return true
			}
		}
		rec.Extras = appendAttrFields(rec.Extras, s.group, a)
		return true
	})

	err := s.handler.Handle(rec)
	if s.recycle {
		core.PutRecord(rec)
	}
	return err
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttrFields(newAttrs, s.group, a)
	}
	c := *s
	c.attrs = newAttrs
	return &c
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	newAttrs := make([]core.Field, len(s.attrs))
	copy(newAttrs, s.attrs)
	c := *s
	c.attrs = newAttrs
	c.group = newGroup
	return &c
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttrFields converts a slog.Attr to fields under the given group
// prefix and appends them. Group values flatten into one field per member
// with dotted keys; empty groups are elided and an empty-keyed group is
// inlined at the current level, per the slog.Handler contract.
func appendAttrFields(fields []core.Field, group string, a slog.Attr) []core.Field {
	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	if group != "" && a.Key != "" {
		key = group + "." + a.Key
	} else if a.Key == "" {
		key = group
	}

	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(fields, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindFloat64:
		return append(fields, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(fields, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		t := a.Value.Time()
		return append(fields, core.Field{Key: key, Type: core.TimeType, Int64: t.UnixNano()})
	case slog.KindDuration:
		return append(fields, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			fields = appendAttrFields(fields, key, ga)
		}
		return fields
	default:
		return append(fields, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}
