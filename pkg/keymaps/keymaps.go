package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ToggleKeyHints":   {"?", "show/hide key hints"},
	"QuitApp":          {"ctrl+q,ctrl+c", "quit"},
	"MoveUp":           {"k,up", "up"},
	"MoveDown":         {"j,down", "down"},
	"NextColumn":       {"l,right", "next column"},
	"PrevColumn":       {"h,left", "previous column"},
	"NextTab":          {"tab", "next tab"},
	"PrevTab":          {"shift+tab", "previous tab"},
	"Open":             {"enter", "open"},
	"Back":             {"q,esc", "back"},
	"Create":           {"n", "new"},
	"Rename":           {"r", "rename"},
	"Delete":           {"d", "delete"},
	"ChangePriority":   {"p", "priority"},
	"ChangeDifficulty": {"D", "difficulty"},
	"SetDueDate":       {"t", "due date"},
	"MoveToColumn":     {"m", "move"},
}

type KeyMap struct {
	ToggleKeyHints   key.Binding
	QuitApp          key.Binding
	MoveUp           key.Binding
	MoveDown         key.Binding
	NextColumn       key.Binding
	PrevColumn       key.Binding
	NextTab          key.Binding
	PrevTab          key.Binding
	Open             key.Binding
	Back             key.Binding
	Create           key.Binding
	Rename           key.Binding
	Delete           key.Binding
	ChangePriority   key.Binding
	ChangeDifficulty key.Binding
	SetDueDate       key.Binding
	MoveToColumn     key.Binding
}

func BuildKeyMap(configOverrides map[string]string) KeyMap {
	km := KeyMap{}
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := configOverrides[action]; exists && override != "" {
			keyStr = override
		}

		binding := parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		switch action {
		case "ToggleKeyHints":
			km.ToggleKeyHints = binding
		case "QuitApp":
			km.QuitApp = binding
		case "MoveUp":
			km.MoveUp = binding
		case "MoveDown":
			km.MoveDown = binding
		case "NextColumn":
			km.NextColumn = binding
		case "PrevColumn":
			km.PrevColumn = binding
		case "NextTab":
			km.NextTab = binding
		case "PrevTab":
			km.PrevTab = binding
		case "Open":
			km.Open = binding
		case "Back":
			km.Back = binding
		case "Create":
			km.Create = binding
		case "Rename":
			km.Rename = binding
		case "Delete":
			km.Delete = binding
		case "ChangePriority":
			km.ChangePriority = binding
		case "ChangeDifficulty":
			km.ChangeDifficulty = binding
		case "SetDueDate":
			km.SetDueDate = binding
		case "MoveToColumn":
			km.MoveToColumn = binding
		}
	}
	return km
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if keyStr == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	keys := strings.Split(keyStr, ",")
	for i, k := range keys {
		keys[i] = strings.TrimSpace(k)
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// CanonicalName maps a case-insensitive action name (config keys arrive
// lowercased) to its entry in KeyDefinitions.
func CanonicalName(action string) (string, bool) {
	for name := range KeyDefinitions {
		if strings.EqualFold(name, action) {
			return name, true
		}
	}
	return "", false
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}

// Hints renders "key help" pairs for the given bindings, skipping disabled ones.
func Hints(bindings ...key.Binding) []string {
	var hints []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return hints
}
