package espn

import "github.com/nao1215/ffscope/internal/introspect"

func init() {
	introspect.RegisterDocs(League{}, map[string]string{
		"BoxScores":         "Fetch box scores with player lineups for a matchup period (0 = current).",
		"Scoreboard":        "Matchups of a matchup period from the loaded schedule (0 = current).",
		"Standings":         "Teams ordered by final standing, or playoff seed during the season.",
		"TopScorer":         "Team with the most points for.",
		"LeastScorer":       "Team with the fewest points for.",
		"MostPointsAgainst": "Team with the most points against.",
		"TeamByID":          "Team with the given id, or nil.",
	})
	introspect.RegisterDocs(Team{}, map[string]string{
		"Record":        "Season record as W-L, or W-L-T with ties.",
		"WinPercentage": "Wins over games played, ties counted as half.",
		"PlayerByName":  "Rostered player with the given name, or nil.",
	})
	introspect.RegisterDocs(Player{}, map[string]string{
		"WeekPoints": "Points scored in a week and whether the week has stats.",
	})
	introspect.RegisterDocs(BoxScore{}, map[string]string{
		"Winner": "Team with the higher score, or nil for a tie or bye.",
	})
	introspect.RegisterDocs(BoxPlayer{}, map[string]string{
		"Starter": "Whether the player is in the starting lineup.",
	})
	introspect.RegisterDocs(Matchup{}, map[string]string{
		"IsBye": "Whether the matchup has no opponent.",
	})
}
