package model

import (
	"strings"
	"testing"
)

// TestRankStandings tests the stable wins-descending order.
func TestRankStandings(t *testing.T) {
	t.Parallel()

	s := NewLeagueSummary(1, 2024)
	s.AddStanding(StandingRow{Team: "Gamma", Wins: 1, Losses: 3})
	s.AddStanding(StandingRow{Team: "Alpha", Wins: 3, Losses: 1})
	s.AddStanding(StandingRow{Team: "Delta", Wins: 1, Losses: 3})
	s.AddStanding(StandingRow{Team: "Beta", Wins: 3, Losses: 1})
	s.RankStandings()

	t.Run("most wins first, ties keep input order", func(t *testing.T) {
		t.Parallel()

		names := make([]string, len(s.Standings))
		for i, r := range s.Standings {
			names[i] = r.Team
		}
		if got := strings.Join(names, ","); got != "Alpha,Beta,Gamma,Delta" {
			t.Errorf("got %s, expected Alpha,Beta,Gamma,Delta", got)
		}
	})

	t.Run("ranks start at 1", func(t *testing.T) {
		t.Parallel()

		for i, r := range s.Standings {
			if r.Rank != i+1 {
				t.Errorf("row %d has rank %d", i, r.Rank)
			}
		}
	})
}

// TestAddMatchup tests that byes are skipped.
func TestAddMatchup(t *testing.T) {
	t.Parallel()

	s := NewLeagueSummary(1, 2024)

	if !s.AddMatchup(MatchupRow{AwayTeam: "Alpha", AwayScore: 100, HomeTeam: "Beta", HomeScore: 90}) {
		t.Error("expected matchup to be kept")
	}
	if s.AddMatchup(MatchupRow{HomeTeam: "Gamma"}) {
		t.Error("expected bye to be skipped")
	}
	if len(s.Matchups) != 1 {
		t.Errorf("expected 1 matchup, got %d", len(s.Matchups))
	}
}

// TestStandingRowRecord tests record formatting.
func TestStandingRowRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  StandingRow
		want string
	}{
		{name: "no ties", row: StandingRow{Wins: 7, Losses: 3}, want: "7-3"},
		{name: "with ties", row: StandingRow{Wins: 6, Losses: 3, Ties: 1}, want: "6-3-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.row.Record(); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}
