package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoroutineID(t *testing.T) {
	id := GoroutineID()
	require.NotZero(t, id)
	assert.Equal(t, id, GoroutineID(), "id must be stable within one goroutine")

	other := make(chan uint64, 1)
	go func() {
		other <- GoroutineID()
	}()
	assert.NotEqual(t, id, <-other, "distinct goroutines must report distinct ids")
}

func BenchmarkGoroutineID(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		GoroutineID()
	}
}
