package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/crowdtris/internal/config"
	"github.com/vovakirdan/crowdtris/internal/games/tetris"
	"github.com/vovakirdan/crowdtris/internal/vote"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "crowdtris.yaml")
	data := "state:\n  backend: redis\nlog:\n  level: warn\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	flagConfig = cfgPath
	flagState = filepath.Join(dir, "save.json")
	flagDBPath = filepath.Join(dir, "feed.db")
	flagSeed = 9
	flagTheme = config.ThemeLight
	t.Cleanup(func() {
		flagConfig, flagState, flagDBPath, flagTheme = "", "", "", ""
		flagSeed = 0
	})

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	// --state forces the file backend
	if cfg.State.Backend != config.BackendFile || cfg.State.Path != flagState {
		t.Errorf("state = %+v, expected file backend at %s", cfg.State, flagState)
	}
	if cfg.Feed.DB != flagDBPath {
		t.Errorf("feed db = %q, expected %q", cfg.Feed.DB, flagDBPath)
	}
	if cfg.Board.Seed != 9 || cfg.Theme != config.ThemeLight || cfg.Log.Level != "warn" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigRejectsBadTheme(t *testing.T) {
	flagTheme = "neon"
	t.Cleanup(func() { flagTheme = "" })

	if _, err := loadConfig(); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestDescribe(t *testing.T) {
	res := tetris.TickResult{Intent: vote.Left, Locked: true, Cleared: []int{12, 11}, Spawned: true}
	got := describe(res)

	for _, want := range []string{"intent=left", "locked", "cleared=2", "spawned"} {
		if !strings.Contains(got, want) {
			t.Errorf("describe() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "reset") {
		t.Errorf("describe() = %q, should not mention reset", got)
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:22":       "22",
		"no-port-at-all": "no-port-at-all",
	}
	for addr, expected := range tests {
		if got := portOf(addr); got != expected {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, expected)
		}
	}
}
