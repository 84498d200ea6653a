package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so that callers can use
// errors.Is() while users still get a readable message.
var (
	// ErrNoLeague is returned when no league id is given by argument,
	// environment or config file.
	ErrNoLeague = errors.New("no league specified: pass a league id, set FFSCOPE_LEAGUE_ID or add league_id to .ffscope")

	// ErrInvalidLeagueID is returned for a league id that is not positive.
	ErrInvalidLeagueID = errors.New("invalid league id: must be positive")

	// ErrInvalidYear is returned for a season the ESPN API does not serve.
	ErrInvalidYear = errors.New("invalid year: must be a season from 2004 to next year")

	// ErrInvalidWeek is returned for a negative week.
	ErrInvalidWeek = errors.New("invalid week: must be 0 (current) or positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxDepth is returned when the report depth is out of range.
	ErrInvalidMaxDepth = errors.New("invalid depth: must be between 1 and 6")

	// ErrInvalidKeyPreviewLimit is returned for a negative key preview.
	ErrInvalidKeyPreviewLimit = errors.New("invalid key preview limit: must be non-negative")

	// ErrIncompleteCredentials is returned when only one of espn_s2 and
	// SWID is set.
	ErrIncompleteCredentials = errors.New("incomplete credentials: espn_s2 and SWID must be set together")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
