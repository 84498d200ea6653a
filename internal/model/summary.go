package model

import (
	"fmt"
	"sort"
	"time"
)

// LeagueSummary is the connectivity check of a league: its name, current
// week, standings and the matchups of the current week.
type LeagueSummary struct {
	// LeagueID is the ESPN league id.
	LeagueID int `json:"league_id"`

	// Year is the season.
	Year int `json:"year"`

	// Name is the league name.
	Name string `json:"name"`

	// CurrentWeek is the league's current scoring period.
	CurrentWeek int `json:"current_week"`

	// Week is the matchup period of Matchups.
	Week int `json:"week"`

	// TeamCount is the number of teams.
	TeamCount int `json:"team_count"`

	// Standings are ranked by wins, most first.
	Standings []StandingRow `json:"standings"`

	// Matchups are the games of Week. Byes are not listed.
	Matchups []MatchupRow `json:"matchups"`

	// GeneratedAt is when the summary was built.
	GeneratedAt time.Time `json:"generated_at"`
}

// StandingRow is one team in the standings.
type StandingRow struct {
	Rank          int     `json:"rank"`
	TeamID        int     `json:"team_id"`
	Team          string  `json:"team"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

// Record returns "W-L", or "W-L-T" when there are ties.
func (r StandingRow) Record() string {
	if r.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// MatchupRow is one game of a week.
type MatchupRow struct {
	AwayTeam  string  `json:"away_team"`
	AwayScore float64 `json:"away_score"`
	HomeTeam  string  `json:"home_team"`
	HomeScore float64 `json:"home_score"`
}

// NewLeagueSummary creates an empty summary.
func NewLeagueSummary(leagueID, year int) *LeagueSummary {
	return &LeagueSummary{
		LeagueID:    leagueID,
		Year:        year,
		Standings:   make([]StandingRow, 0),
		Matchups:    make([]MatchupRow, 0),
		GeneratedAt: time.Now(),
	}
}

// AddStanding appends a team row. Call RankStandings once all rows are in.
func (s *LeagueSummary) AddStanding(row StandingRow) {
	s.Standings = append(s.Standings, row)
}

// AddMatchup appends a game and reports whether it was kept. A matchup
// without an away team is a bye and is skipped.
func (s *LeagueSummary) AddMatchup(row MatchupRow) bool {
	if row.AwayTeam == "" || row.HomeTeam == "" {
		return false
	}
	s.Matchups = append(s.Matchups, row)
	return true
}

// RankStandings sorts the standings by wins, most first, and numbers
// them from 1. Teams with equal wins keep the order they were added in.
func (s *LeagueSummary) RankStandings() {
	sort.SliceStable(s.Standings, func(i, j int) bool {
		return s.Standings[i].Wins > s.Standings[j].Wins
	})
	for i := range s.Standings {
		s.Standings[i].Rank = i + 1
	}
}
