package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"kraban/pkg/keymaps"
	"kraban/pkg/utils"
)

//go:embed default.toml
var defaultConfig []byte

// FileName is the name of the configuration file inside the config dir.
const FileName = "kraban.toml"

// Config holds the application configuration
type Config struct {
	Tabs                  []TabConfig
	AppColor              lipgloss.Color
	CollapseUnfocusedTabs bool
	ShowKeyHints          bool
	AlwaysOpen            AlwaysOpen
	DefaultDueDates       DefaultDueDates
	KeyMap                map[string]string
}

// TabConfig is an ordered group of columns displayed together.
type TabConfig []ColumnConfig

// ColumnIndex returns the position of the named column in the tab, or -1.
func (t TabConfig) ColumnIndex(name string) int {
	for i, column := range t {
		if column.Name == name {
			return i
		}
	}
	return -1
}

// ColumnConfig describes a single column.
type ColumnConfig struct {
	Name       string
	Color      lipgloss.Color
	DoneColumn bool
}

// DefaultDueDates is the automatic due date policy, in days from today.
type DefaultDueDates struct {
	Enable bool `mapstructure:"enable"`
	High   int  `mapstructure:"high"`
	Medium int  `mapstructure:"medium"`
	Low    int  `mapstructure:"low"`
}

// AlwaysOpen selects the prompts opened after an item is created.
type AlwaysOpen struct {
	Priority   bool `mapstructure:"priority"`
	Difficulty bool `mapstructure:"difficulty"`
	DueDate    bool `mapstructure:"due_date"`
}

type columnRaw struct {
	Name       string `mapstructure:"name"`
	Color      string `mapstructure:"color"`
	Tab        int    `mapstructure:"tab"`
	DoneColumn bool   `mapstructure:"done_column"`
}

type configRaw struct {
	Columns               []columnRaw       `mapstructure:"column"`
	AppColor              string            `mapstructure:"app_color"`
	CollapseUnfocusedTabs bool              `mapstructure:"collapse_unfocused_tabs"`
	ShowKeyHints          bool              `mapstructure:"show_key_hints"`
	AlwaysOpen            AlwaysOpen        `mapstructure:"always_open"`
	DefaultDueDates       DefaultDueDates   `mapstructure:"default_due_dates"`
	KeyMap                map[string]string `mapstructure:"keymap"`
}

// Columns returns every configured column in tab order.
func (c *Config) Columns() []ColumnConfig {
	var columns []ColumnConfig
	for _, tab := range c.Tabs {
		columns = append(columns, tab...)
	}
	return columns
}

// ColumnNames returns the name of every configured column in tab order.
func (c *Config) ColumnNames() []string {
	var names []string
	for _, column := range c.Columns() {
		names = append(names, column.Name)
	}
	return names
}

// Column looks up a column by name.
func (c *Config) Column(name string) (ColumnConfig, bool) {
	for _, column := range c.Columns() {
		if column.Name == name {
			return column, true
		}
	}
	return ColumnConfig{}, false
}

// DefaultPath returns the path of the user configuration file.
func DefaultPath() (string, error) {
	dir, err := utils.GetDir(utils.ConfigDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := parse(nil)
	if err != nil {
		panic(fmt.Sprintf("built-in config is invalid: %v", err))
	}
	return cfg
}

// Load loads the application configuration from the specified path.
// The built-in defaults are read first and the user file is merged on top of them.
// If configPath is empty the default location is used, and a missing default
// file is created with the built-in contents.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = defaultPath

		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			if err := os.WriteFile(configPath, defaultConfig, 0644); err != nil {
				return nil, fmt.Errorf("error writing default config: %w", err)
			}
			utils.Log("Wrote default config to %s", configPath)
		}
	}

	configData, err := os.ReadFile(utils.ExpandHome(configPath))
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	cfg, err := parse(configData)
	if err != nil {
		return nil, fmt.Errorf("error loading config %s: %w", configPath, err)
	}
	return cfg, nil
}

// parse reads the built-in defaults, merges the user document over them and validates the result.
func parse(userConfig []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, err
	}
	if len(userConfig) > 0 {
		if err := v.MergeConfig(bytes.NewReader(userConfig)); err != nil {
			return nil, err
		}
	}

	var raw configRaw
	if err := v.Unmarshal(&raw); err != nil {
		return nil, err
	}
	return build(raw)
}

func build(raw configRaw) (*Config, error) {
	if len(raw.Columns) == 0 {
		return nil, errors.New("at least one column must be configured")
	}

	due := raw.DefaultDueDates
	if due.High < 0 || due.Medium < 0 || due.Low < 0 {
		return nil, errors.New("default_due_dates offsets must not be negative")
	}

	seen := make(map[string]bool, len(raw.Columns))
	var tabs []TabConfig
	for _, column := range raw.Columns {
		if column.Name == "" {
			return nil, errors.New("column name must not be empty")
		}
		if seen[column.Name] {
			return nil, fmt.Errorf("duplicate column %q", column.Name)
		}
		seen[column.Name] = true
		if column.Tab < 0 {
			return nil, fmt.Errorf("column %q has a negative tab index", column.Name)
		}

		for column.Tab >= len(tabs) {
			tabs = append(tabs, TabConfig{})
		}
		tabs[column.Tab] = append(tabs[column.Tab], ColumnConfig{
			Name:       column.Name,
			Color:      lipgloss.Color(column.Color),
			DoneColumn: column.DoneColumn,
		})
	}

	// Gaps in tab indexes would render as empty tabs
	compact := tabs[:0]
	for _, tab := range tabs {
		if len(tab) > 0 {
			compact = append(compact, tab)
		}
	}

	keyMap := keymaps.GetDefaultKeyMappings()
	for action, keys := range raw.KeyMap {
		name, ok := keymaps.CanonicalName(action)
		if !ok {
			return nil, fmt.Errorf("unknown keymap action %q", action)
		}
		keyMap[name] = keys
	}

	return &Config{
		Tabs:                  compact,
		AppColor:              lipgloss.Color(raw.AppColor),
		CollapseUnfocusedTabs: raw.CollapseUnfocusedTabs,
		ShowKeyHints:          raw.ShowKeyHints,
		AlwaysOpen:            raw.AlwaysOpen,
		DefaultDueDates:       due,
		KeyMap:                keyMap,
	}, nil
}

// PrintDefault writes the built-in configuration to stdout.
func PrintDefault() {
	fmt.Print(string(defaultConfig))
}

// WriteDefault writes the built-in configuration to the default location.
func WriteDefault() (string, error) {
	path, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, defaultConfig, 0644); err != nil {
		return "", err
	}
	return path, nil
}
