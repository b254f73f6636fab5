package keymaps

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestBuildKeyMapDefaults(t *testing.T) {
	km := BuildKeyMap(nil)

	assert.Equal(t, []string{"k", "up"}, km.MoveUp.Keys())
	assert.Equal(t, []string{"ctrl+q", "ctrl+c"}, km.QuitApp.Keys())
	assert.Equal(t, key.Help{Key: "D", Desc: "difficulty"}, km.ChangeDifficulty.Help())
}

func TestBuildKeyMapOverrides(t *testing.T) {
	km := BuildKeyMap(map[string]string{
		"Delete":   "x, delete",
		"MoveDown": "",
	})

	assert.Equal(t, []string{"x", "delete"}, km.Delete.Keys())
	assert.Equal(t, "x", km.Delete.Help().Key)
	// an empty override keeps the default
	assert.Equal(t, []string{"j", "down"}, km.MoveDown.Keys())
}

func TestCanonicalName(t *testing.T) {
	name, ok := CanonicalName("changepriority")
	assert.True(t, ok)
	assert.Equal(t, "ChangePriority", name)

	_, ok = CanonicalName("fly")
	assert.False(t, ok)
}

func TestHints(t *testing.T) {
	km := BuildKeyMap(nil)
	km.Rename.SetEnabled(false)

	assert.Equal(t, []string{"n new", "d delete"}, Hints(km.Create, km.Rename, km.Delete))
}
