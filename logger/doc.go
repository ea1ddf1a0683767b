// Package logger is the public API of basin. Most users only need to
// import this package and one sink package.
//
// A Logger stamps each message into a record, drops it if the severity
// is below the logger's threshold, and hands the survivors to its sinks.
// The read path takes no locks: the level is one atomic, the sink list an
// atomically swapped snapshot. Construct loggers with a Builder:
//
//	log, err := logger.NewBuilder().
//	    WithName("server").
//	    WithLevel(logger.LevelDebug).
//	    WithSink(sink.NewStderrSink(termstyle.ModeAuto)).
//	    Build()
//
// The package maintains a default logger, created on first use, writing
// styled output to stderr at info level. The package-level functions
// Info, Warnf, Error and friends delegate to it, so simple programs can
// log without setup:
//
//	logger.Info("ready")
//	logger.Warnf("disk %d%% full", pct)
//
// WithAsync moves sink I/O onto a background worker behind a bounded
// queue; Flush waits for the queue to empty and pushes the sinks'
// buffers down. InitEnvLevel reads thresholds from the BASIN_LEVEL
// environment variable.
//
// Level checks happen before the message is built, so filtered-out
// records cost a pair of integer comparisons.
package logger
