package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults drifted from DefaultConfig()\nembedded: %+v\nbuiltin:  %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("progression:\n  growth_factor: 2.2\nname_max: 8\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Progression.GrowthFactor != 2.2 || cfg.NameMax != 8 {
		t.Errorf("overrides not applied: growth=%v name_max=%d", cfg.Progression.GrowthFactor, cfg.NameMax)
	}
	if cfg.Progression.Quota != 20 || cfg.Road.X != 98 {
		t.Error("keys absent from the file should keep their defaults")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("screen: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("progression:\n  quota: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.yaml"), bad, invalid} {
		if _, _, err := Load(path); err == nil {
			t.Errorf("Load(%q) should fail", filepath.Base(path))
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"growth factor not above one", func(c *Config) { c.Progression.GrowthFactor = 1 }},
		{"spawn band overlaps frame", func(c *Config) { c.Enemies.SpawnMaxY = -20 }},
		{"inverted enemy counts", func(c *Config) { c.Enemies.BaseMin, c.Enemies.BaseMax = 4, 3 }},
		{"road leaves screen", func(c *Config) { c.Road.Width = 700 }},
		{"lanes too narrow", func(c *Config) { c.Road.Width = 80 }},
		{"scenery zone too narrow", func(c *Config) { c.Road.X = 40 }},
		{"zero quota", func(c *Config) { c.Progression.Quota = 0 }},
		{"stages preset without stages", func(c *Config) { c.Progression.Stages = nil }},
		{"unknown strategy", func(c *Config) { c.Presets[0].Strategy = "random" }},
		{"duplicate preset", func(c *Config) { c.Presets[1].Name = "easy" }},
		{"no presets", func(c *Config) { c.Presets = nil }},
		{"zero modal fps", func(c *Config) { c.Timing.ModalFPS = 0 }},
		{"zero name max", func(c *Config) { c.NameMax = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should reject this configuration")
			}
		})
	}
}

func TestPresetLookup(t *testing.T) {
	cfg := DefaultConfig()

	p, err := cfg.Preset("campaign")
	if err != nil {
		t.Fatalf("Preset(campaign) error: %v", err)
	}
	if p.Strategy != StrategyStages {
		t.Errorf("CAMPAIGN strategy = %q, expected %q", p.Strategy, StrategyStages)
	}

	if _, err := cfg.Preset("nightmare"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Preset(nightmare) error = %v, expected ErrUnknownPreset", err)
	}

	names := cfg.PresetNames()
	if len(names) != 4 || names[0] != "EASY" || names[3] != "CAMPAIGN" {
		t.Errorf("PresetNames() = %v", names)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	out, err := DefaultConfig().YAML()
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := parse(out)
	if err != nil {
		t.Fatalf("rendered YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("rendered YAML should reproduce the configuration")
	}
}
