package core

import (
	"sync"
	"time"
)

// A Record is one log event flowing from a logger to its sinks. Records are
// immutable once dispatched: sinks and formatters only read them.
type Record struct {
	Time       time.Time
	Level      Level
	LoggerName string
	Payload    string
	ThreadID   uint64
	Source     SourceLocation
}

var recordPool = sync.Pool{
	New: func() any {
		return new(Record)
	},
}

// GetRecord returns a cleared Record from the pool. Callers hand ownership
// back with PutRecord once every sink has seen it.
func GetRecord() *Record {
	return recordPool.Get().(*Record)
}

// PutRecord resets r and returns it to the pool. r must not be used after
// this call.
func PutRecord(r *Record) {
	*r = Record{}
	recordPool.Put(r)
}
