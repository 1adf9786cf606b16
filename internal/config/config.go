package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"listbox/internal/domain"
	"listbox/internal/eventbus"
)

// FileName is the config file looked up in the working directory
const FileName = ".listbox.toml"

// ErrNotFound is returned when the config file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version    int          `toml:"version"`
	TypeAhead  TypeAhead    `toml:"typeahead"`
	Single     SingleList   `toml:"single"`
	Multiple   MultipleList `toml:"multiple"`
	UISettings UISettings   `toml:"ui"`
}

// TypeAhead holds type-ahead settings
type TypeAhead struct {
	Timeout Duration `toml:"timeout"`
}

// SingleList is the demo single-select list: plain string options
type SingleList struct {
	Options []string `toml:"options"`
	Value   string   `toml:"value,omitempty"`
}

// MultipleList is the demo multiple-select list: record options
type MultipleList struct {
	Options []domain.Member `toml:"options"`
	Values  []string        `toml:"values"` // member names
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowAttributes bool `toml:"show_attributes"`
	AutosaveOnExit bool `toml:"autosave_on_exit"`
}

// Duration is a time.Duration written as a string such as "400ms"
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus eventbus.EventBus
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return &configService{}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus}
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path})
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}

	return nil
}

// normalize fills in the sections a partial file left out
func (c *Config) normalize() {
	defaults := DefaultConfig()
	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.TypeAhead.Timeout.Duration <= 0 {
		c.TypeAhead.Timeout = defaults.TypeAhead.Timeout
	}
	if c.Single.Options == nil {
		c.Single = defaults.Single
	}
	if c.Multiple.Options == nil {
		c.Multiple = defaults.Multiple
	}
}

// DefaultTypeAheadTimeout matches the type-ahead package default
const DefaultTypeAheadTimeout = 400 * time.Millisecond

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		TypeAhead: TypeAhead{Timeout: Duration{DefaultTypeAheadTimeout}},
		Single: SingleList{
			Options: []string{"John", "Paul", "George", "Ringo", "Cam"},
			Value:   "Cam",
		},
		Multiple: MultipleList{
			Options: []domain.Member{
				{Name: "John"}, {Name: "Jude"}, {Name: "June"},
				{Name: "Paul"}, {Name: "Phil"}, {Name: "Prince"},
				{Name: "George"}, {Name: "Geoff"}, {Name: "Gary"},
				{Name: "Ringo"}, {Name: "Rodney"}, {Name: "Rick"},
			},
			Values: []string{"John", "George"},
		},
		UISettings: UISettings{
			ShowAttributes: false,
			AutosaveOnExit: true,
		},
	}
}

// SelectedMembers resolves the configured multiple-select values to options
func (c *Config) SelectedMembers() []domain.Member {
	var out []domain.Member
	for _, name := range c.Multiple.Values {
		for _, m := range c.Multiple.Options {
			if m.Name == name {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
