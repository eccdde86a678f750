package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extraction.Provider != "openai" {
		t.Errorf("expected openai provider, got %s", cfg.Extraction.Provider)
	}
	if cfg.Extraction.APIKey != "${OPENAI_API_KEY}" {
		t.Error("expected API key placeholder")
	}
	if cfg.Extraction.MaxConcurrent != 8 {
		t.Errorf("expected max_concurrent 8, got %d", cfg.Extraction.MaxConcurrent)
	}
	if cfg.Grounding.Threshold != 0.5 {
		t.Errorf("expected grounding threshold 0.5, got %f", cfg.Grounding.Threshold)
	}
	if cfg.Extraction.RetryDelay() != time.Second {
		t.Errorf("expected 1s retry delay, got %s", cfg.Extraction.RetryDelay())
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_API_KEY", "secret123")
		defer os.Unsetenv("TEST_API_KEY")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		configContent := `
extraction:
  provider: mock
  max_retries: 2
grounding:
  threshold: 0.7
`
		if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Extraction.Provider != "mock" {
			t.Errorf("expected mock, got %s", cfg.Extraction.Provider)
		}
		if cfg.Extraction.MaxRetries != 2 {
			t.Errorf("expected 2 retries, got %d", cfg.Extraction.MaxRetries)
		}
		if cfg.Grounding.Threshold != 0.7 {
			t.Errorf("expected threshold 0.7, got %f", cfg.Grounding.Threshold)
		}
		// Unset keys fall back to defaults.
		if cfg.Server.Port != 8417 {
			t.Errorf("expected default port 8417, got %d", cfg.Server.Port)
		}
	})
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configFile, []byte("extraction:\n  provider: mock\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				cfg := mgr.Get()
				_ = cfg.Extraction.Provider
			}
			done <- struct{}{}
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_WatchConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configFile, []byte("extraction:\n  model: gpt-4o\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	if got := mgr.Get().Extraction.Model; got != "gpt-4o" {
		t.Errorf("initial model mismatch: got %s", got)
	}

	var callbackCount atomic.Int32
	var lastValue atomic.Value

	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(cfg.Extraction.Model)
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("extraction:\n  model: gpt-4o-mini\n"), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	// Wait for the watcher to detect the change (fsnotify is async)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Error("callback was not invoked after config file change")
	}

	if got := mgr.Get().Extraction.Model; got != "gpt-4o-mini" {
		t.Errorf("config not updated: got %s", got)
	}
	if v := lastValue.Load(); v != "gpt-4o-mini" {
		t.Errorf("callback received wrong value: got %v", v)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "extraction:") || !strings.Contains(content, "${OPENAI_API_KEY}") {
		t.Errorf("default config missing expected keys:\n%s", content)
	}
}
