package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout bounds each ESPN API request.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxDepth renders only the members of each explored object.
	// Raise it to expand nested objects inline.
	DefaultMaxDepth = 1

	// MaxDepthLimit caps MaxDepth.
	MaxDepthLimit = 6

	// DefaultBatchSize is the number of leagues explored at once.
	DefaultBatchSize = 4

	// EarliestYear is the first season the ESPN API serves.
	EarliestYear = 2004

	// AppName is the application name used for XDG directory paths.
	AppName = "ffscope"

	// DefaultUserAgent identifies ffscope in API requests.
	DefaultUserAgent = "ffscope (+https://github.com/nao1215/ffscope)"
)

// Config holds all configuration options for ffscope.
// It is populated from the config file, the environment and CLI flags, in
// that order of increasing precedence, and passed down explicitly.
type Config struct {
	// LeagueIDs are the ESPN leagues to explore.
	LeagueIDs []int

	// Year is the season to load.
	Year int

	// Week is the matchup period of the standings command. 0 means the
	// league's current matchup period.
	Week int

	// ESPNS2 is the espn_s2 session cookie of a private league.
	ESPNS2 string

	// SWID is the SWID cookie of a private league, a braced GUID.
	SWID string

	// Timeout bounds each API request.
	Timeout time.Duration

	// MaxDepth is the number of object levels rendered per section.
	MaxDepth int

	// KeyPreviewLimit is the number of mapping keys shown. 0 keeps the
	// default of each section: 5 for players, 10 elsewhere.
	KeyPreviewLimit int

	// Raw explores the raw API document instead of the league models.
	Raw bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogJSON writes logs as JSON instead of text.
	LogJSON bool

	// BatchSize is the number of leagues explored concurrently.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the default locations (see FindConfigFile).
	ConfigFilePath string

	// File holds the loaded configuration file, if any.
	File *File

	// JSONReport enables JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output. Mutually exclusive with
	// JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// BaseURL overrides the ESPN API base URL. Empty uses the public API.
	BaseURL string

	// UserAgent is the User-Agent header sent with API requests.
	UserAgent string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Year:      DefaultYear(time.Now()),
		Timeout:   DefaultTimeout,
		MaxDepth:  DefaultMaxDepth,
		BatchSize: DefaultBatchSize,
		UserAgent: DefaultUserAgent,
	}
}

// DefaultYear returns the season in progress at now. ESPN rolls the new
// season over in spring, so January and February still belong to the
// previous year's season.
func DefaultYear(now time.Time) int {
	if now.Month() < time.March {
		return now.Year() - 1
	}
	return now.Year()
}

// XDGConfigDir returns the XDG config directory for ffscope.
// On Linux: ~/.config/ffscope
// On macOS: ~/Library/Application Support/ffscope
// On Windows: %APPDATA%\ffscope
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Credentials returns the cookies for a league. A league entry in the
// config file wins over the global cookies.
func (c *Config) Credentials(leagueID int) (espnS2, swid string) {
	espnS2, swid = c.ESPNS2, c.SWID
	if c.File != nil {
		if lc, ok := c.File.Leagues[leagueID]; ok && lc.ESPNS2 != "" && lc.SWID != "" {
			espnS2, swid = lc.ESPNS2, lc.SWID
		}
	}
	return espnS2, swid
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if len(c.LeagueIDs) == 0 {
		return ErrNoLeague
	}
	for _, id := range c.LeagueIDs {
		if id <= 0 {
			return ErrInvalidLeagueID
		}
	}

	if c.Year < EarliestYear || c.Year > time.Now().Year()+1 {
		return ErrInvalidYear
	}

	if c.Week < 0 {
		return ErrInvalidWeek
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxDepth < 1 || c.MaxDepth > MaxDepthLimit {
		return ErrInvalidMaxDepth
	}

	if c.KeyPreviewLimit < 0 {
		return ErrInvalidKeyPreviewLimit
	}

	// Both cookies or none: one without the other never authenticates.
	if (c.ESPNS2 == "") != (c.SWID == "") {
		return ErrIncompleteCredentials
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
