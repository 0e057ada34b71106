package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultServer is used when no server address is configured or passed on the
// command line.
const DefaultServer = "127.0.0.1:1200"

// Config holds the application configuration
type Config struct {
	Name     string   `json:"name,omitempty"`     // Display name, set once via the identity prompt
	Server   string   `json:"server,omitempty"`   // Bus address (host:port)
	Channels []string `json:"channels,omitempty"` // Channels to subscribe to

	MaxMessages          int  `json:"max_messages,omitempty"`          // Chat log cap (0 = default)
	NotificationsEnabled bool `json:"notifications_enabled,omitempty"` // Desktop notifications for flagged messages

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hallway"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Used by Load and by tests.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureInitialized fills zero values after unmarshaling. Only safe during
// single-threaded initialization.
func (c *Config) ensureInitialized() {
	if c.Server == "" {
		c.Server = DefaultServer
	}
	if len(c.Channels) == 0 {
		c.Channels = []string{"chat", "typing", "users", "history", "ping"}
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if strings.TrimSpace(c.Server) == "" {
		return fmt.Errorf("empty server address")
	}
	seen := make(map[string]bool, len(c.Channels))
	for _, ch := range c.Channels {
		if ch == "" {
			return fmt.Errorf("empty channel name found")
		}
		if seen[ch] {
			return fmt.Errorf("duplicate channel: %s", ch)
		}
		seen[ch] = true
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// GetName returns the persisted display name, or "" when none is set
func (c *Config) GetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Name
}

// SetName updates the display name
func (c *Config) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Name = name
}

// GetServer returns the configured bus address
func (c *Config) GetServer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Server
}

// SetServer updates the bus address
func (c *Config) SetServer(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Server = addr
}

// GetChannels returns a copy of the subscribed channel list
func (c *Config) GetChannels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	chans := make([]string, len(c.Channels))
	copy(chans, c.Channels)
	return chans
}

// GetMaxMessages returns the chat log cap
func (c *Config) GetMaxMessages() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.MaxMessages <= 0 {
		return 500
	}
	return c.MaxMessages
}

// GetNotificationsEnabled returns whether desktop notifications are on
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}
