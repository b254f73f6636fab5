package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMapGetDoesNotInsert(t *testing.T) {
	var m DefaultMap[string, Column]

	column := m.Get("Doing")
	assert.Equal(t, 0, column.Len())
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Keys())
}

func TestDefaultMapGetMutInserts(t *testing.T) {
	var m DefaultMap[string, Column]

	m.GetMut("Doing").Insert(Task{Title: "write tests"})
	m.GetMut("Backlog")

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"Backlog", "Doing"}, m.Keys())
	assert.Equal(t, 1, m.Get("Doing").Len())
	assert.Same(t, m.GetMut("Doing"), m.GetMut("Doing"))
}

func TestDefaultMapJSON(t *testing.T) {
	var empty DefaultMap[string, int]
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	var m DefaultMap[string, int]
	require.NoError(t, json.Unmarshal([]byte(`{"a": 3, "b": null}`), &m))
	assert.Equal(t, 3, m.Get("a"))
	assert.Equal(t, 0, m.Get("b"))
	assert.Equal(t, 0, m.Get("missing"))
	assert.Equal(t, 2, m.Len())
}
