package singlekit

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tenantCache struct {
	ID int
}

func TestKeyedDefaultFactory(t *testing.T) {
	err := SetKeyedFactory[string](func() (*tenantCache, error) {
		return &tenantCache{ID: 1}, nil
	})
	require.NoError(t, err)

	a1, err := KeyedInstance[string, *tenantCache]("a")
	require.NoError(t, err)
	a2, err := KeyedInstance[string, *tenantCache]("a")
	require.NoError(t, err)

	assert.Same(t, a1, a2)
	assert.Equal(t, 1, a1.ID)

	b, err := KeyedInstance[string, *tenantCache]("b")
	require.NoError(t, err)
	assert.NotSame(t, a1, b)
}

type keyedPerCall struct {
	name string
}

func TestKeyedPerCallFactoryPreferred(t *testing.T) {
	err := SetKeyedFactory[string](func() (*keyedPerCall, error) {
		return &keyedPerCall{name: "default"}, nil
	})
	require.NoError(t, err)

	v, err := KeyedInstance[string, *keyedPerCall]("k", func() (*keyedPerCall, error) {
		return &keyedPerCall{name: "percall"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "percall", v.name)
}

type keyedOrphan struct{ n int }

func TestKeyedNoFactory(t *testing.T) {
	_, err := KeyedInstance[string, *keyedOrphan]("first")
	assert.ErrorIs(t, err, ErrNoFactory)
}

type keyedNilKey struct{ n int }

func TestKeyedNilKey(t *testing.T) {
	var key *int
	_, err := KeyedInstance[*int, *keyedNilKey](key, func() (*keyedNilKey, error) {
		return &keyedNilKey{}, nil
	})
	assert.ErrorIs(t, err, ErrNilKey)
}

func TestSetKeyedFactoryNil(t *testing.T) {
	assert.ErrorIs(t, SetKeyedFactory[string, *keyedOrphan](nil), ErrNilFactory)
}

type keyedRemovable struct{ n int }

func TestKeyedRemoveOnlyThatKey(t *testing.T) {
	factory := func() (*keyedRemovable, error) { return &keyedRemovable{}, nil }

	a1, err := KeyedInstance[string, *keyedRemovable]("a", factory)
	require.NoError(t, err)
	b1, err := KeyedInstance[string, *keyedRemovable]("b", factory)
	require.NoError(t, err)

	assert.True(t, RemoveKeyedInstance[string, *keyedRemovable]("a"))

	a2, err := KeyedInstance[string, *keyedRemovable]("a", factory)
	require.NoError(t, err)
	b2, err := KeyedInstance[string, *keyedRemovable]("b", factory)
	require.NoError(t, err)

	assert.NotSame(t, a1, a2)
	assert.Same(t, b1, b2)
}

func TestKeyedRemoveAbsent(t *testing.T) {
	assert.False(t, RemoveKeyedInstance[string, *keyedRemovable]("missing"))
}

type keyedFlaky struct{ n int }

func TestKeyedFactoryErrorNotCached(t *testing.T) {
	boom := errors.New("provision failed")
	var calls atomic.Int32
	factory := func() (*keyedFlaky, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return &keyedFlaky{}, nil
	}

	_, err := KeyedInstance[string, *keyedFlaky]("k", factory)
	assert.ErrorIs(t, err, boom)

	v, err := KeyedInstance[string, *keyedFlaky]("k", factory)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int32(2), calls.Load())
}

type keyedNilResult struct{ n int }

func TestKeyedNilResult(t *testing.T) {
	_, err := KeyedInstance[string, *keyedNilResult]("k", func() (*keyedNilResult, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrNoInstanceProduced)
}

type keyedStructKey struct{ n int }

func TestKeyedStructKeys(t *testing.T) {
	type shard struct {
		Region string
		Index  int
	}
	factory := func() (*keyedStructKey, error) { return &keyedStructKey{}, nil }

	v1, err := KeyedInstance[shard, *keyedStructKey](shard{Region: "us", Index: 1}, factory)
	require.NoError(t, err)

	// Key equality is value equality, not identity.
	v2, err := KeyedInstance[shard, *keyedStructKey](shard{Region: "us", Index: 1}, factory)
	require.NoError(t, err)
	assert.Same(t, v1, v2)

	v3, err := KeyedInstance[shard, *keyedStructKey](shard{Region: "eu", Index: 1}, factory)
	require.NoError(t, err)
	assert.NotSame(t, v1, v3)
}

type keyedConc struct{ n int }

func TestKeyedConcurrentOneInvocationPerKey(t *testing.T) {
	var calls atomic.Int32
	err := SetKeyedFactory[int](func() (*keyedConc, error) {
		calls.Add(1)
		return &keyedConc{}, nil
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	n := 100
	results := make([]*keyedConc, n)

	for i := range n {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			v, err := KeyedInstance[int, *keyedConc](idx % 4)
			assert.NoError(t, err)
			results[idx] = v
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(4), calls.Load())
	for i := range n {
		assert.Same(t, results[i%4], results[i])
	}
}

func BenchmarkKeyedInstance(b *testing.B) {
	factory := func() (*tenantCache, error) { return &tenantCache{}, nil }
	_, _ = KeyedInstance[int, *tenantCache](0, factory)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = KeyedInstance[int, *tenantCache](0, factory)
	}
}
