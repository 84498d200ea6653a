package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnv.
const (
	EnvLeagueID = "FFSCOPE_LEAGUE_ID"
	EnvYear     = "FFSCOPE_YEAR"
	EnvESPNS2   = "ESPN_S2"
	EnvSWID     = "ESPN_SWID"
)

// ApplyEnv overrides cfg with the environment read through getenv.
// FFSCOPE_LEAGUE_ID accepts a comma-separated list and only applies when
// no league was given on the command line.
func (c *Config) ApplyEnv(getenv func(string) string, leaguesFromArgs bool) error {
	if v := strings.TrimSpace(getenv(EnvLeagueID)); v != "" && !leaguesFromArgs {
		ids, err := ParseLeagueIDs(strings.Split(v, ","))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLeagueID, err)
		}
		c.LeagueIDs = ids
	}

	if v := strings.TrimSpace(getenv(EnvYear)); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvYear, ErrInvalidYear)
		}
		c.Year = year
	}

	if v := strings.TrimSpace(getenv(EnvESPNS2)); v != "" {
		c.ESPNS2 = v
	}
	if v := strings.TrimSpace(getenv(EnvSWID)); v != "" {
		c.SWID = v
	}
	return nil
}

// ParseLeagueIDs converts league id arguments. Blank entries are skipped.
func ParseLeagueIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		id, err := strconv.Atoi(a)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%q: %w", a, ErrInvalidLeagueID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
