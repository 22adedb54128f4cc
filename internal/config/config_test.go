package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.League != def.League {
		t.Errorf("League = %q, want %q", cfg.League, def.League)
	}
	if cfg.RESTPort != def.RESTPort || cfg.WSPort != def.WSPort {
		t.Errorf("ports = %s/%s, want %s/%s", cfg.RESTPort, cfg.WSPort, def.RESTPort, def.WSPort)
	}
	if cfg.FetchAttempts != 15 || cfg.FetchTimeout != 30*time.Second {
		t.Errorf("fetch = %d attempts / %s timeout", cfg.FetchAttempts, cfg.FetchTimeout)
	}
	if cfg.CacheEnabled {
		t.Error("CacheEnabled should default off")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldhouse.yaml")
	yaml := "league: womens\nworkers: 4\nrest_port: \"9090\"\nlive_interval: 15s\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.League != "womens" || cfg.Workers != 4 || cfg.RESTPort != "9090" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LiveInterval != 15*time.Second {
		t.Errorf("LiveInterval = %s, want 15s", cfg.LiveInterval)
	}
	// Keys the file omits keep their defaults.
	if cfg.WSPort != "8081" {
		t.Errorf("WSPort = %q, want the default", cfg.WSPort)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("an explicit path that does not exist should error")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FIELDHOUSE_LEAGUE", "womens")
	t.Setenv("FIELDHOUSE_FETCH_ATTEMPTS", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.League != "womens" {
		t.Errorf("League = %q, want the env override", cfg.League)
	}
	if cfg.FetchAttempts != 3 {
		t.Errorf("FetchAttempts = %d, want 3", cfg.FetchAttempts)
	}
}
