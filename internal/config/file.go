package config

import "time"

// LeagueConfig holds the settings of one league in the config file.
type LeagueConfig struct {
	// ESPNS2 is the espn_s2 cookie for this league.
	ESPNS2 string `yaml:"espn_s2,omitempty"`

	// SWID is the SWID cookie for this league.
	SWID string `yaml:"swid,omitempty"`
}

// ExploreConfig holds reporter settings from the config file.
type ExploreConfig struct {
	// MaxDepth is the number of object levels rendered per section.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// KeyPreviewLimit is the number of mapping keys shown.
	KeyPreviewLimit int `yaml:"key_preview_limit,omitempty"`
}

// File represents the structure of the .ffscope configuration file.
type File struct {
	// LeagueID is the league explored when none is given on the command
	// line.
	LeagueID int `yaml:"league_id,omitempty"`

	// Year is the default season.
	Year int `yaml:"year,omitempty"`

	// ESPNS2 and SWID are the default cookies for private leagues.
	ESPNS2 string `yaml:"espn_s2,omitempty"`
	SWID   string `yaml:"swid,omitempty"`

	// Timeout bounds each API request, for example "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Explore holds reporter settings.
	Explore ExploreConfig `yaml:"explore,omitempty"`

	// Leagues maps league ids to league-specific settings.
	Leagues map[int]LeagueConfig `yaml:"leagues,omitempty"`
}

// Apply copies the file settings into cfg. The league id is only used
// when cfg has none. Call Apply before reading the environment and flags.
func (f *File) Apply(cfg *Config) {
	cfg.File = f

	if f.LeagueID > 0 && len(cfg.LeagueIDs) == 0 {
		cfg.LeagueIDs = []int{f.LeagueID}
	}
	if f.Year != 0 {
		cfg.Year = f.Year
	}
	if f.ESPNS2 != "" {
		cfg.ESPNS2 = f.ESPNS2
	}
	if f.SWID != "" {
		cfg.SWID = f.SWID
	}
	if f.Timeout > 0 {
		cfg.Timeout = f.Timeout
	}
	if f.Explore.MaxDepth > 0 {
		cfg.MaxDepth = f.Explore.MaxDepth
	}
	if f.Explore.KeyPreviewLimit > 0 {
		cfg.KeyPreviewLimit = f.Explore.KeyPreviewLimit
	}
}
