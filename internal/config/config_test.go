package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom on missing file should not error, got %v", err)
	}

	if cfg.GetName() != "" {
		t.Errorf("Expected empty name, got %q", cfg.GetName())
	}
	if cfg.GetServer() != DefaultServer {
		t.Errorf("Expected default server %q, got %q", DefaultServer, cfg.GetServer())
	}
	if len(cfg.GetChannels()) == 0 {
		t.Error("Expected default channels to be populated")
	}
}

func TestConfig_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	cfg.SetName("alice")
	cfg.SetServer("chat.example.com:1200")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.GetName() != "alice" {
		t.Errorf("Expected name 'alice', got %q", reloaded.GetName())
	}
	if reloaded.GetServer() != "chat.example.com:1200" {
		t.Errorf("Expected saved server, got %q", reloaded.GetServer())
	}
}

func TestLoadFrom_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("Expected error for corrupt config")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Error should mention the file path, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"valid", &Config{Server: "h:1", Channels: []string{"chat"}}, false},
		{"empty server", &Config{Server: "  ", Channels: []string{"chat"}}, true},
		{"empty channel", &Config{Server: "h:1", Channels: []string{""}}, true},
		{"duplicate channel", &Config{Server: "h:1", Channels: []string{"chat", "chat"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetMaxMessages_Default(t *testing.T) {
	cfg := &Config{}
	if cfg.GetMaxMessages() != 500 {
		t.Errorf("Expected default cap 500, got %d", cfg.GetMaxMessages())
	}

	cfg.MaxMessages = 100
	if cfg.GetMaxMessages() != 100 {
		t.Errorf("Expected configured cap 100, got %d", cfg.GetMaxMessages())
	}
}
