package singlekit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type connTable struct {
	conns map[string]int
}

func TestResettableSameReference(t *testing.T) {
	var r Resettable[connTable]

	v1 := r.Get()
	require.NotNil(t, v1)
	assert.Same(t, v1, r.Get())
}

func TestResettableReset(t *testing.T) {
	var r Resettable[connTable]

	v1 := r.Get()
	r.Reset()
	v2 := r.Get()

	assert.NotSame(t, v1, v2)
	assert.Same(t, v2, r.Get())
}

func TestResettableResetEmpty(t *testing.T) {
	var r Resettable[connTable]

	// Reset before any Get is a no-op.
	r.Reset()
	require.NotNil(t, r.Get())
}

func TestResettableIndependentHolders(t *testing.T) {
	var a, b Resettable[connTable]

	assert.NotSame(t, a.Get(), b.Get())
}

func TestResettableConcurrent(t *testing.T) {
	var r Resettable[connTable]
	var wg sync.WaitGroup
	n := 100
	results := make([]*connTable, n)

	for i := range n {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = r.Get()
		}(i)
	}

	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func BenchmarkResettableGet(b *testing.B) {
	var r Resettable[connTable]
	r.Get()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Get()
	}
}
