// Package core defines the shared types used across the basin engine.
//
// It provides the Level type and its atomic LevelFilter for severity
// filtering, the Record type that represents a single log event, source
// location capture, and the error taxonomy shared by formatters, sinks and
// loggers.
//
// Record objects are pooled via sync.Pool to keep the hot path
// allocation-free. Loggers get a Record with GetRecord and return it with
// PutRecord once every sink has consumed it; application code never owns a
// Record.
//
// LevelFilter checks are a single atomic load plus an integer comparison,
// so callers can gate work behind Enabled without taking locks. Threshold
// updates become visible to other goroutines eventually; records already
// past the check when the threshold changes may still be delivered.
package core
