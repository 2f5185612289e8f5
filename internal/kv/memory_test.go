package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryErrorInjection(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	m := NewMemory()
	m.GetErr = boom
	m.SetErr = boom
	m.RemoveErr = boom

	_, _, err := m.Get(ctx, "todos")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, m.Set(ctx, "todos", nil), boom)
	assert.ErrorIs(t, m.Remove(ctx, "todos"), boom)
	assert.Equal(t, 0, m.Keys())
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "todos", in))
	in[0] = 'X'

	out, _, err := m.Get(ctx, "todos")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[0] = 'Y'
	again, _, err := m.Get(ctx, "todos")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
