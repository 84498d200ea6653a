package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default MaxDepth is 1", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxDepth != 1 {
			t.Errorf("expected MaxDepth to be 1, got %d", cfg.MaxDepth)
		}
	})

	t.Run("default KeyPreviewLimit keeps section defaults", func(t *testing.T) {
		t.Parallel()
		if cfg.KeyPreviewLimit != 0 {
			t.Errorf("expected KeyPreviewLimit to be 0, got %d", cfg.KeyPreviewLimit)
		}
	})

	t.Run("default BatchSize is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 4 {
			t.Errorf("expected BatchSize to be 4, got %d", cfg.BatchSize)
		}
	})

	t.Run("default Year is the current season", func(t *testing.T) {
		t.Parallel()
		if cfg.Year != DefaultYear(time.Now()) {
			t.Errorf("expected Year %d, got %d", DefaultYear(time.Now()), cfg.Year)
		}
	})

	t.Run("no credentials by default", func(t *testing.T) {
		t.Parallel()
		if cfg.ESPNS2 != "" || cfg.SWID != "" {
			t.Error("expected empty credentials")
		}
	})
}

// TestDefaultYear tests the season rollover.
func TestDefaultYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "january belongs to last season", now: time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC), want: 2024},
		{name: "february belongs to last season", now: time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), want: 2024},
		{name: "march starts the new season", now: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), want: 2025},
		{name: "autumn", now: time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC), want: 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DefaultYear(tt.now); got != tt.want {
				t.Errorf("got %d, expected %d", got, tt.want)
			}
		})
	}
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// validConfig returns a minimal valid configuration.
	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.LeagueIDs = []int{123456}
		cfg.Year = 2024
		return cfg
	}

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "valid with credentials", modify: func(c *Config) { c.ESPNS2, c.SWID = "s2", "{swid}" }},
		{name: "no league", modify: func(c *Config) { c.LeagueIDs = nil }, want: ErrNoLeague},
		{name: "non-positive league", modify: func(c *Config) { c.LeagueIDs = []int{1, 0} }, want: ErrInvalidLeagueID},
		{name: "year too early", modify: func(c *Config) { c.Year = 2003 }, want: ErrInvalidYear},
		{name: "year too late", modify: func(c *Config) { c.Year = time.Now().Year() + 2 }, want: ErrInvalidYear},
		{name: "earliest year", modify: func(c *Config) { c.Year = EarliestYear }},
		{name: "negative week", modify: func(c *Config) { c.Week = -1 }, want: ErrInvalidWeek},
		{name: "zero timeout", modify: func(c *Config) { c.Timeout = 0 }, want: ErrInvalidTimeout},
		{name: "zero depth", modify: func(c *Config) { c.MaxDepth = 0 }, want: ErrInvalidMaxDepth},
		{name: "depth over limit", modify: func(c *Config) { c.MaxDepth = MaxDepthLimit + 1 }, want: ErrInvalidMaxDepth},
		{name: "negative key preview", modify: func(c *Config) { c.KeyPreviewLimit = -1 }, want: ErrInvalidKeyPreviewLimit},
		{name: "only espn_s2", modify: func(c *Config) { c.ESPNS2 = "s2" }, want: ErrIncompleteCredentials},
		{name: "only swid", modify: func(c *Config) { c.SWID = "{swid}" }, want: ErrIncompleteCredentials},
		{name: "zero batch", modify: func(c *Config) { c.BatchSize = 0 }, want: ErrInvalidBatchSize},
		{name: "json and markdown", modify: func(c *Config) { c.JSONReport, c.MarkdownReport = true, true }, want: ErrConflictingReportFormats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// writeConfig writes a config file into a temporary directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		f, err := LoadConfigFile("/nonexistent/path/.ffscope")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if f != nil {
			t.Error("expected nil file when not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `league_id: 123456
year: 2023
espn_s2: "default-s2"
swid: "{DEFAULT}"
timeout: 45s
explore:
  max_depth: 2
  key_preview_limit: 7
leagues:
  987:
    espn_s2: "other-s2"
    swid: "{OTHER}"
`)

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.LeagueID != 123456 || f.Year != 2023 {
			t.Errorf("unexpected league %d/%d", f.LeagueID, f.Year)
		}
		if f.Timeout != 45*time.Second {
			t.Errorf("expected 45s timeout, got %v", f.Timeout)
		}
		if f.Explore.MaxDepth != 2 || f.Explore.KeyPreviewLimit != 7 {
			t.Errorf("unexpected explore settings %+v", f.Explore)
		}
		if lc, ok := f.Leagues[987]; !ok || lc.SWID != "{OTHER}" {
			t.Errorf("unexpected league entry %+v", f.Leagues)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfigFile(writeConfig(t, `invalid: yaml: content: [}`)); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Leagues map", func(t *testing.T) {
		t.Parallel()

		f, err := LoadConfigFile(writeConfig(t, "year: 2024\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Leagues == nil {
			t.Error("expected Leagues map to be initialized")
		}
	})
}

// TestFileApply tests merging the file into a config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	f := &File{
		LeagueID: 123456,
		Year:     2023,
		ESPNS2:   "file-s2",
		SWID:     "{FILE}",
		Timeout:  time.Minute,
		Explore:  ExploreConfig{MaxDepth: 3},
	}

	t.Run("fills an empty config", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		f.Apply(cfg)

		if !slices.Equal(cfg.LeagueIDs, []int{123456}) || cfg.Year != 2023 {
			t.Errorf("unexpected league %v/%d", cfg.LeagueIDs, cfg.Year)
		}
		if cfg.ESPNS2 != "file-s2" || cfg.SWID != "{FILE}" {
			t.Error("expected file credentials")
		}
		if cfg.Timeout != time.Minute || cfg.MaxDepth != 3 {
			t.Errorf("unexpected timeout %v depth %d", cfg.Timeout, cfg.MaxDepth)
		}
		if cfg.KeyPreviewLimit != 0 {
			t.Error("expected unset key preview to keep the default")
		}
		if cfg.File != f {
			t.Error("expected File to be recorded")
		}
	})

	t.Run("keeps leagues given on the command line", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.LeagueIDs = []int{42}
		f.Apply(cfg)

		if !slices.Equal(cfg.LeagueIDs, []int{42}) {
			t.Errorf("got %v, expected [42]", cfg.LeagueIDs)
		}
	})
}

// TestConfigCredentials tests per-league credentials.
func TestConfigCredentials(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.ESPNS2, cfg.SWID = "global-s2", "{GLOBAL}"
	cfg.File = &File{Leagues: map[int]LeagueConfig{
		1: {ESPNS2: "one-s2", SWID: "{ONE}"},
		2: {ESPNS2: "half"},
	}}

	tests := []struct {
		name     string
		leagueID int
		wantS2   string
		wantSWID string
	}{
		{name: "league entry wins", leagueID: 1, wantS2: "one-s2", wantSWID: "{ONE}"},
		{name: "incomplete entry is ignored", leagueID: 2, wantS2: "global-s2", wantSWID: "{GLOBAL}"},
		{name: "unknown league uses global", leagueID: 3, wantS2: "global-s2", wantSWID: "{GLOBAL}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s2, swid := cfg.Credentials(tt.leagueID)
			if s2 != tt.wantS2 || swid != tt.wantSWID {
				t.Errorf("got %q/%q, expected %q/%q", s2, swid, tt.wantS2, tt.wantSWID)
			}
		})
	}
}

// TestApplyEnv tests environment overrides.
func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	t.Run("overrides config", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := cfg.ApplyEnv(env(map[string]string{
			EnvLeagueID: "111, 222",
			EnvYear:     "2022",
			EnvESPNS2:   "env-s2",
			EnvSWID:     "{ENV}",
		}), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(cfg.LeagueIDs, []int{111, 222}) || cfg.Year != 2022 {
			t.Errorf("unexpected league %v/%d", cfg.LeagueIDs, cfg.Year)
		}
		if cfg.ESPNS2 != "env-s2" || cfg.SWID != "{ENV}" {
			t.Error("expected env credentials")
		}
	})

	t.Run("arguments win over league env", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.LeagueIDs = []int{9}
		if err := cfg.ApplyEnv(env(map[string]string{EnvLeagueID: "111"}), true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(cfg.LeagueIDs, []int{9}) {
			t.Errorf("got %v, expected [9]", cfg.LeagueIDs)
		}
	})

	t.Run("invalid league id", func(t *testing.T) {
		t.Parallel()

		err := NewConfig().ApplyEnv(env(map[string]string{EnvLeagueID: "abc"}), false)
		if !errors.Is(err, ErrInvalidLeagueID) || !strings.Contains(err.Error(), EnvLeagueID) {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("invalid year", func(t *testing.T) {
		t.Parallel()

		err := NewConfig().ApplyEnv(env(map[string]string{EnvYear: "next"}), false)
		if !errors.Is(err, ErrInvalidYear) {
			t.Errorf("unexpected error %v", err)
		}
	})
}

// TestParseLeagueIDs tests league id parsing.
func TestParseLeagueIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    []int
		wantErr bool
	}{
		{name: "single", args: []string{"123"}, want: []int{123}},
		{name: "blank entries skipped", args: []string{" 1", "", "2 "}, want: []int{1, 2}},
		{name: "not a number", args: []string{"x"}, wantErr: true},
		{name: "negative", args: []string{"-5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLeagueIDs(tt.args)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLeagueID) {
					t.Errorf("expected ErrInvalidLeagueID, got %v", err)
				}
				return
			}
			if err != nil || !slices.Equal(got, tt.want) {
				t.Errorf("got %v, %v; expected %v", got, err, tt.want)
			}
		})
	}
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "year: 2024\n")
		if result := FindConfigFile(path); result != path {
			t.Errorf("expected %q, got %q", path, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	for name, dir := range map[string]string{"config": XDGConfigDir()} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if filepath.Base(dir) != AppName {
				t.Errorf("expected %s dir to end in %s, got %q", name, AppName, dir)
			}
		})
	}
}
