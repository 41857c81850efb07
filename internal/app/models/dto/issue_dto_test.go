package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalID_TriState(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		var req UpdateIssueRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &req))
		assert.False(t, req.AssignedTo.Set)
	})

	t.Run("explicit null", func(t *testing.T) {
		var req UpdateIssueRequest
		require.NoError(t, json.Unmarshal([]byte(`{"assignedTo":null}`), &req))
		assert.True(t, req.AssignedTo.Set)
		assert.Nil(t, req.AssignedTo.Value)
	})

	t.Run("value", func(t *testing.T) {
		var req UpdateIssueRequest
		require.NoError(t, json.Unmarshal([]byte(`{"assignedTo":42}`), &req))
		assert.True(t, req.AssignedTo.Set)
		require.NotNil(t, req.AssignedTo.Value)
		assert.Equal(t, int64(42), *req.AssignedTo.Value)
	})

	t.Run("rejects non-numeric", func(t *testing.T) {
		var req UpdateIssueRequest
		assert.Error(t, json.Unmarshal([]byte(`{"assignedTo":"abc"}`), &req))
	})
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(2, 10, 42)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 42, info.TotalItems)

	assert.Equal(t, 0, NewPaginationInfo(1, 10, 0).TotalPages)
}
