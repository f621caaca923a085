// Package logger is the public API of jsonlog. Most users only need to
// import this package.
//
// A Logger is immutable after construction: the name, extras, level,
// and handler are set once via the Builder and never modified. This
// makes Logger inherently safe for concurrent use without any locking
// on the read path.
//
// The package initializes a default Logger (InfoLevel, JSON lines to
// stdout, caller capture on) in init(). The package-level functions
// Info, Error, Debugf, etc. delegate to this default instance, so
// simple programs can log without any setup:
//
//	logger.Info("ready", logger.Int("port", 8080))
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    WithName("app.web").
//	    WithCaller(true).
//	    Build()
//
// Child loggers are created via With, which returns a new Logger that
// shares the same handler but carries additional default extras, and
// Named, which extends the dotted logger name:
//
//	reqLog := log.Named("http").With(logger.String("request_id", id))
//
// The formatted variants (Infof, Errorf, ...) do not render their
// template at the call site: the template and args travel on the record
// and render once during formatting, after the level gate.
//
// Level checks happen before any allocation, so filtered-out messages
// cost only a single integer comparison. Hot paths that log at very high
// rates can additionally opt into WithCoarseClock, which stamps records
// from a cached clock instead of calling time.Now() per record.
package logger
