package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/ringshot/internal/sim"
)

// isolate points the search path at empty directories so a developer's own
// config files can't leak into the test.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEmbeddedMatchesDefaults(t *testing.T) {
	isolate(t)

	cfg, src, err := LoadSource("")
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if src != EmbeddedSource {
		t.Errorf("source = %q, expected %q", src, EmbeddedSource)
	}
	if cfg != DefaultRingshotConfig() {
		t.Errorf("embedded YAML drifted from DefaultRingshotConfig:\n%+v\n%+v", cfg, DefaultRingshotConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "ringshot.yaml"), "capacity:\n  max_bullets: 7\n")
	cfg, src, err := LoadSource("")
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if cfg.Capacity.MaxBullets != 7 || src != filepath.Join("configs", "ringshot.yaml") {
		t.Fatalf("expected local config, got max_bullets=%d from %q", cfg.Capacity.MaxBullets, src)
	}
	if cfg.Capacity.MaxEnemies != 100 {
		t.Errorf("missing keys should keep defaults, max_enemies = %d", cfg.Capacity.MaxEnemies)
	}

	userPath := filepath.Join(home, ".ringshot", "configs", "ringshot.yaml")
	writeFile(t, userPath, "capacity:\n  max_bullets: 9\n")
	cfg, src, err = LoadSource("")
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if cfg.Capacity.MaxBullets != 9 || src != userPath {
		t.Fatalf("user config should win over local, got %d from %q", cfg.Capacity.MaxBullets, src)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "capacity:\n  max_bullets: 11\n")
	cfg, err = Load(custom)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Capacity.MaxBullets != 11 {
		t.Errorf("custom path should win, got %d", cfg.Capacity.MaxBullets)
	}
}

func TestLoadSkipsBrokenSearchFiles(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, "configs", "ringshot.yaml"), "world: [unclosed\n")

	cfg, src, err := LoadSource("")
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if src != EmbeddedSource || cfg != DefaultRingshotConfig() {
		t.Errorf("broken search file should fall through to defaults, got %q", src)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	_, work := isolate(t)

	if _, err := Load(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(work, "bad.toml")
	writeFile(t, bad, "world = = 3")
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error for broken TOML")
	}
}

func TestLoadTOML(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, "ringshot.toml")
	writeFile(t, path, `
[world]
width = 640
height = 360

[shooting]
delay = 0.5

[rules]
bullets = "retain"
pierce = "inert"
game_over = "continue"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Width != 640 || cfg.World.Height != 360 || cfg.Shooting.Delay != 0.5 {
		t.Errorf("TOML values not applied: %+v", cfg)
	}
	if cfg.Rules != sim.ClassicRules() {
		t.Errorf("rules = %+v, expected classic", cfg.Rules)
	}
	if cfg.Player.Speed != 1000 {
		t.Errorf("missing keys should keep defaults, player speed = %f", cfg.Player.Speed)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	_, work := isolate(t)

	want := DefaultRingshotConfig()
	want.Capacity.MaxEnemies = 42
	want.Difficulty.Rate = 0.5
	want.Rules = sim.ClassicRules()

	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			data, err := Encode(want, format)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			path := filepath.Join(work, "dump."+format)
			writeFile(t, path, string(data))

			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got != want {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}

	if _, err := Encode(want, "ini"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RingshotConfig)
		want   string
	}{
		{"zero width", func(c *RingshotConfig) { c.World.Width = 0 }, "world size"},
		{"negative height", func(c *RingshotConfig) { c.World.Height = -1 }, "world size"},
		{"no enemies", func(c *RingshotConfig) { c.Capacity.MaxEnemies = 0 }, "max_enemies"},
		{"no bullets", func(c *RingshotConfig) { c.Capacity.MaxBullets = 0 }, "max_bullets"},
		{"zero delay", func(c *RingshotConfig) { c.Shooting.Delay = 0 }, "delay"},
		{"inverted clamp", func(c *RingshotConfig) { c.Difficulty.Min = 50; c.Difficulty.Max = 10 }, "difficulty"},
		{"zero frame clamp", func(c *RingshotConfig) { c.Platform.MaxFrameTime = 0 }, "max_frame_time"},
		{"unknown policy", func(c *RingshotConfig) { c.Rules.Pierce = "explode" }, "pierce policy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRingshotConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultRingshotConfig()
	cfg.Enemies.SpawnRadius = 123
	cfg.Difficulty.Rate = 2

	want := sim.DefaultParams(800, 480, 100, 100)
	want.SpawnRadius = 123
	want.GameTimeRate = 2
	if p := cfg.Params(); p != want {
		t.Errorf("params mismatch:\n got %+v\nwant %+v", p, want)
	}

	cfg.Enemies.SpawnRadius = 0
	if got := cfg.Params().SpawnRadius; got != 400 {
		t.Errorf("zero spawn radius should default to half width, got %f", got)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		gameTime float64
		rate     float64
	}{
		{DifficultyEasy, 12, 0},
		{DifficultyNormal, 20, 0},
		{DifficultyHard, 30, 0.25},
		{DifficultyFixed, 25, 0},
		{"", 25, 1},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRingshotConfig()
			cfg.Difficulty.GameTime = 25
			cfg.Difficulty.Rate = 1

			ApplyPreset(&cfg, tc.preset)

			if cfg.Difficulty.GameTime != tc.gameTime || cfg.Difficulty.Rate != tc.rate {
				t.Errorf("got game_time=%g rate=%g, expected %g/%g",
					cfg.Difficulty.GameTime, cfg.Difficulty.Rate, tc.gameTime, tc.rate)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q): %v", name, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestEmbeddedDefaultMatchesDefaults(t *testing.T) {
	if got := EmbeddedDefault(); got != DefaultRingshotConfig() {
		t.Errorf("embedded yaml drifted from the hardcoded defaults:\n%+v\n%+v", got, DefaultRingshotConfig())
	}
	if !strings.HasPrefix(string(DefaultYAML()), "#") {
		t.Error("default yaml should keep its header comment")
	}
}
