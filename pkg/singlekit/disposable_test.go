package singlekit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	closed   bool
	closeErr error
}

func (c *fakeConn) Close() error {
	c.closed = true
	return c.closeErr
}

type plainState struct {
	n int
}

func TestDisposableSameReference(t *testing.T) {
	var d Disposable[fakeConn]

	v1 := d.Get()
	require.NotNil(t, v1)
	assert.Same(t, v1, d.Get())
}

func TestDisposableResetCloses(t *testing.T) {
	var d Disposable[fakeConn]

	v1 := d.Get()
	require.NoError(t, d.Reset())

	// The disposal side effect happened before Reset returned.
	assert.True(t, v1.closed)

	v2 := d.Get()
	assert.NotSame(t, v1, v2)
	assert.False(t, v2.closed)
}

func TestDisposableResetReturnsCloseError(t *testing.T) {
	var d Disposable[fakeConn]
	boom := errors.New("close failed")

	v1 := d.Get()
	v1.closeErr = boom

	assert.ErrorIs(t, d.Reset(), boom)

	// The slot is cleared even when Close fails.
	assert.NotSame(t, v1, d.Get())
}

func TestDisposableResetEmpty(t *testing.T) {
	var d Disposable[fakeConn]
	assert.NoError(t, d.Reset())
}

func TestDisposableNonCloser(t *testing.T) {
	var d Disposable[plainState]

	v1 := d.Get()
	require.NoError(t, d.Reset())
	assert.NotSame(t, v1, d.Get())
}
