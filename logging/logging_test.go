package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNeverReturnsNil(t *testing.T) {
	assert.NotNil(t, New(true))
	assert.NotNil(t, New(false))
}

func TestSafeFallsBackToNop(t *testing.T) {
	l := Safe(nil)
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info("should be swallowed") })
}

func TestSafePassesThroughNonNilLogger(t *testing.T) {
	l := New(false)
	assert.Same(t, l, Safe(l))
}
