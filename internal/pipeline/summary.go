package pipeline

import (
	"github.com/nao1215/ffscope/internal/espn"
	"github.com/nao1215/ffscope/internal/model"
)

// Summarize builds the standings and the matchups of a week from a loaded
// league. A week of 0 means the current matchup period. Matchups come from
// the loaded schedule, so no request is made.
func Summarize(l *espn.League, week int) *model.LeagueSummary {
	s := model.NewLeagueSummary(l.LeagueID, l.Year)
	if l.Settings != nil {
		s.Name = l.Settings.Name
	}
	s.CurrentWeek = l.CurrentWeek
	s.TeamCount = len(l.Teams)

	if week <= 0 {
		week = l.CurrentMatchupPeriod
	}
	s.Week = week

	for _, t := range l.Teams {
		s.AddStanding(model.StandingRow{
			TeamID:        t.TeamID,
			Team:          t.Name,
			Wins:          t.Wins,
			Losses:        t.Losses,
			Ties:          t.Ties,
			PointsFor:     t.PointsFor,
			PointsAgainst: t.PointsAgainst,
		})
	}
	s.RankStandings()

	for _, m := range l.Scoreboard(week) {
		if m.IsBye() || m.HomeTeam == nil {
			continue
		}
		s.AddMatchup(model.MatchupRow{
			AwayTeam:  m.AwayTeam.Name,
			AwayScore: m.AwayScore,
			HomeTeam:  m.HomeTeam.Name,
			HomeScore: m.HomeScore,
		})
	}
	return s
}
