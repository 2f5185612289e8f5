package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("ids are valid UUIDs", func(t *testing.T) {
		_, err := uuid.Parse(NewID())
		require.NoError(t, err)
	})

	t.Run("ids are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := NewID()
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0192ab34", ShortID("0192ab34-5678-7abc-8def-0123456789ab"))
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "", ShortID(""))
}

func TestHasIDPrefix(t *testing.T) {
	id := "0192AB34-5678"
	assert.True(t, HasIDPrefix(id, "0192ab"))
	assert.True(t, HasIDPrefix(id, ""))
	assert.False(t, HasIDPrefix(id, "0193"))
}
