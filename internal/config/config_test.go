package config

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/gravlab/internal/body"
	"github.com/san-kum/gravlab/internal/engine"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Mode != "interactive" {
		t.Errorf("expected interactive mode, got %s", cfg.Mode)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.1 }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"bad mode", func(c *Config) { c.Mode = "warp" }},
		{"nothing to build", func(c *Config) { c.Preset = ""; c.Bodies = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := Default()
	cfg.Mode = "cluster"
	cfg.Preset = ""
	cfg.Dt = 0.02
	cfg.Seed = 99
	cfg.Bodies = []BodyConfig{
		{Mass: 10, Position: [3]float64{1, 2, 3}, Kind: "spiral"},
		{Mass: 5, Velocity: [3]float64{0.1, 0, -0.1}, Kind: "elliptical"},
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Mode != "cluster" || loaded.Dt != 0.02 || loaded.Seed != 99 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if len(loaded.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(loaded.Bodies))
	}
	if loaded.Bodies[0].Position != [3]float64{1, 2, 3} {
		t.Errorf("body position mangled: %+v", loaded.Bodies[0].Position)
	}
}

func TestBuildFromPreset(t *testing.T) {
	cfg := Default()
	cfg.Preset = "binary"

	sim, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if sim.Len() != 2 {
		t.Errorf("expected 2 bodies, got %d", sim.Len())
	}
}

func TestBuildExplicitBodies(t *testing.T) {
	cfg := Default()
	cfg.Mode = "cluster"
	cfg.Bodies = []BodyConfig{
		{Mass: 10, Kind: "spiral"},
		{Mass: 8, Position: [3]float64{5, 0, 0}, Kind: "elliptical", Fixed: true},
	}

	sim, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if sim.Mode() != engine.Cluster {
		t.Errorf("expected cluster mode, got %v", sim.Mode())
	}

	bodies := sim.Bodies()
	if bodies[0].Kind != body.Spiral {
		t.Errorf("expected spiral, got %v", bodies[0].Kind)
	}
	if !bodies[1].Fixed {
		t.Error("second body should be fixed")
	}
}

func TestBuildRejectsBadBody(t *testing.T) {
	cfg := Default()
	cfg.Bodies = []BodyConfig{{Mass: -1}}

	if _, err := cfg.Build(); err == nil {
		t.Error("expected error for negative mass body")
	}
}
