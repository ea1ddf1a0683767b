package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPoolReset(t *testing.T) {
	r := GetRecord()
	r.Time = time.Now()
	r.Level = LevelError
	r.LoggerName = "orders"
	r.Payload = "boom"
	r.ThreadID = 7
	r.Source = SourceLocation{Defined: true, File: "a.go", Line: 12}
	PutRecord(r)

	r2 := GetRecord()
	defer PutRecord(r2)
	assert.Equal(t, Record{}, *r2, "pooled records must come back cleared")
}

func TestCaptureSource(t *testing.T) {
	loc := CaptureSource(0)
	require.True(t, loc.Defined)
	assert.Equal(t, "record_test.go", loc.ShortFile())
	assert.Greater(t, loc.Line, 0)
	assert.Contains(t, loc.Function, "TestCaptureSource")
	assert.Equal(t, "TestCaptureSource", loc.ShortFunction())
}

func TestCaptureSourceSkip(t *testing.T) {
	var loc SourceLocation
	func() {
		loc = CaptureSource(1)
	}()
	require.True(t, loc.Defined)
	assert.Contains(t, loc.Function, "TestCaptureSourceSkip")
	assert.False(t, strings.Contains(loc.ShortFunction(), "func"), "skip should step over the closure")
}

func TestSourceLocationZero(t *testing.T) {
	var loc SourceLocation
	assert.False(t, loc.Defined)
	assert.Empty(t, loc.ShortFile())
}
