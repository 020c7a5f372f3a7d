package channels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is used when no channel map path is configured.
const DefaultPath = "channels.toml"

// config represents the complete channel map file for TOML marshaling.
type config struct {
	Version  int                `toml:"version"`
	Channels map[string]Channel `toml:"channels"`
}

// tomlStore implements Store using TOML file storage.
type tomlStore struct {
	configPath string
	config     *config
}

// NewTOML creates a new TOML-based store.
func NewTOML(configPath string) Store {
	if configPath == "" {
		configPath = DefaultPath
	}

	return &tomlStore{
		configPath: configPath,
		config: &config{
			Version:  1,
			Channels: make(map[string]Channel),
		},
	}
}

// Load loads the channel map from file. A missing file leaves the map empty.
func (s *tomlStore) Load() error {
	if _, err := os.Stat(s.configPath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to read channel map: %w", err)
	}

	if unmarshalErr := toml.Unmarshal(data, s.config); unmarshalErr != nil {
		return fmt.Errorf("failed to parse channel map: %w", unmarshalErr)
	}

	if s.config.Channels == nil {
		s.config.Channels = make(map[string]Channel)
	}
	if s.config.Version == 0 {
		s.config.Version = 1
	}

	for name, ch := range s.config.Channels {
		ch.Name = name
		if err := ch.Validate(); err != nil {
			return fmt.Errorf("invalid channel map %s: %w", s.configPath, err)
		}
		s.config.Channels[name] = ch
	}

	return nil
}

// Save writes the channel map to file.
func (s *tomlStore) Save() error {
	dir := filepath.Dir(s.configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create channel map directory: %w", err)
	}

	data, err := toml.Marshal(s.config)
	if err != nil {
		return fmt.Errorf("failed to marshal channel map: %w", err)
	}

	if writeErr := os.WriteFile(s.configPath, data, 0o644); writeErr != nil {
		return fmt.Errorf("failed to write channel map: %w", writeErr)
	}

	return nil
}

func (s *tomlStore) Get(name string) (Channel, bool) {
	ch, ok := s.config.Channels[name]
	return ch, ok
}

// Put adds or replaces a channel and saves the map.
func (s *tomlStore) Put(ch Channel) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	s.config.Channels[ch.Name] = ch
	return s.Save()
}

// Merge adds or replaces every channel and saves the map once. Nothing
// changes unless all channels are valid.
func (s *tomlStore) Merge(list []Channel) error {
	for _, ch := range list {
		if err := ch.Validate(); err != nil {
			return err
		}
	}
	for _, ch := range list {
		s.config.Channels[ch.Name] = ch
	}
	return s.Save()
}

func (s *tomlStore) All() map[string]Channel {
	return s.config.Channels
}

// Names returns the channel names in sorted order.
func (s *tomlStore) Names() []string {
	names := make([]string, 0, len(s.config.Channels))
	for name := range s.config.Channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
