package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// League is one season of a fantasy league.
type League struct {
	LeagueID             int
	Year                 int
	CurrentWeek          int
	NFLWeek              int
	CurrentMatchupPeriod int
	FirstScoringPeriod   int
	FinalScoringPeriod   int
	PreviousSeasons      []int
	Settings             *Settings
	Teams                []*Team
	Members              []*Owner
	Draft                []*Pick

	client   *Client
	schedule []matchupWire
}

// Open fetches a league season and builds its models. The league views and
// the draft are requested concurrently.
func Open(ctx context.Context, c *Client, leagueID, year int) (*League, error) {
	if leagueID <= 0 {
		return nil, ErrInvalidLeagueID
	}

	var (
		lw    leagueWire
		draft draftWire
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		body, err := c.FetchLeague(ctx, leagueID, year, Query{Views: leagueViews})
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &lw); err != nil {
			return fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
		}
		return nil
	})
	eg.Go(func() error {
		body, err := c.FetchLeague(ctx, leagueID, year, Query{Views: []string{"mDraftDetail"}})
		if err != nil {
			return err
		}
		var dw leagueWire
		if err := json.Unmarshal(body, &dw); err != nil {
			return fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
		}
		draft = dw.DraftDetail
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	lw.DraftDetail = draft
	l := buildLeague(lw, year)
	l.client = c
	return l, nil
}

// buildLeague converts the wire document into models.
func buildLeague(w leagueWire, year int) *League {
	l := &League{
		LeagueID:             w.ID,
		Year:                 year,
		NFLWeek:              w.Status.LatestScoringPeriod,
		CurrentMatchupPeriod: w.Status.CurrentMatchupPeriod,
		FirstScoringPeriod:   w.Status.FirstScoringPeriod,
		FinalScoringPeriod:   w.Status.FinalScoringPeriod,
		PreviousSeasons:      append([]int{}, w.Status.PreviousSeasons...),
		Settings:             newSettings(w.Settings),
		Teams:                make([]*Team, 0, len(w.Teams)),
		Members:              make([]*Owner, 0, len(w.Members)),
		Draft:                make([]*Pick, 0, len(w.DraftDetail.Picks)),
		schedule:             w.Schedule,
	}
	if w.SeasonID > 0 {
		l.Year = w.SeasonID
	}

	l.CurrentWeek = w.ScoringPeriodID
	if l.FinalScoringPeriod > 0 && l.CurrentWeek > l.FinalScoringPeriod {
		l.CurrentWeek = l.FinalScoringPeriod
	}
	if l.CurrentMatchupPeriod == 0 {
		l.CurrentMatchupPeriod = l.CurrentWeek
	}

	owners := make(map[string]*Owner, len(w.Members))
	for _, m := range w.Members {
		o := &Owner{ID: m.ID, DisplayName: m.DisplayName, FirstName: m.FirstName, LastName: m.LastName}
		owners[m.ID] = o
		l.Members = append(l.Members, o)
	}

	for _, tw := range w.Teams {
		l.Teams = append(l.Teams, newTeam(tw, owners, l.Settings.DivisionMap))
	}
	l.linkSchedules()
	l.buildDraft(w.DraftDetail)
	return l
}

// linkSchedules fills each team's opponents, scores and outcomes from the
// league schedule, in matchup period order.
func (l *League) linkSchedules() {
	matchups := append([]matchupWire(nil), l.schedule...)
	sort.SliceStable(matchups, func(i, j int) bool {
		return matchups[i].MatchupPeriodID < matchups[j].MatchupPeriodID
	})

	for _, m := range matchups {
		if m.Home == nil || m.Away == nil {
			continue
		}
		home := l.TeamByID(m.Home.TeamID)
		away := l.TeamByID(m.Away.TeamID)
		if home == nil || away == nil {
			continue
		}
		home.Schedule = append(home.Schedule, away)
		home.Scores = append(home.Scores, m.Home.TotalPoints)
		home.Outcomes = append(home.Outcomes, outcome(m.Winner, winnerHome))
		away.Schedule = append(away.Schedule, home)
		away.Scores = append(away.Scores, m.Away.TotalPoints)
		away.Outcomes = append(away.Outcomes, outcome(m.Winner, winnerAway))
	}
}

// outcome maps a schedule winner onto W, L, T or U for one side.
func outcome(winner, side string) string {
	switch winner {
	case side:
		return "W"
	case winnerTie:
		return "T"
	case winnerHome, winnerAway:
		return "L"
	default:
		return "U"
	}
}

// buildDraft resolves team and player names of draft picks.
func (l *League) buildDraft(d draftWire) {
	players := make(map[int]string)
	for _, t := range l.Teams {
		for _, p := range t.Roster {
			players[p.PlayerID] = p.Name
		}
	}

	for _, pw := range d.Picks {
		p := &Pick{
			Overall:          pw.OverallPickNumber,
			Round:            pw.RoundID,
			RoundPick:        pw.RoundPickNumber,
			TeamID:           pw.TeamID,
			PlayerID:         pw.PlayerID,
			PlayerName:       players[pw.PlayerID],
			Keeper:           pw.Keeper,
			BidAmount:        pw.BidAmount,
			NominatingTeamID: pw.NominatingTeamID,
		}
		if t := l.TeamByID(pw.TeamID); t != nil {
			p.TeamName = t.Name
		}
		l.Draft = append(l.Draft, p)
	}
}

// TeamByID returns the team with the given id, or nil.
func (l *League) TeamByID(id int) *Team {
	for _, t := range l.Teams {
		if t.TeamID == id {
			return t
		}
	}
	return nil
}

// Standings returns the teams ordered by final standing when the season is
// over and by current playoff seed otherwise.
func (l *League) Standings() []*Team {
	teams := append([]*Team(nil), l.Teams...)
	rank := func(t *Team) int {
		if t.FinalStanding > 0 {
			return t.FinalStanding
		}
		return t.Standing
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return rank(teams[i]) < rank(teams[j])
	})
	return teams
}

// TopScorer returns the team with the most points for.
func (l *League) TopScorer() *Team {
	return l.pickTeam(func(a, b *Team) bool { return a.PointsFor > b.PointsFor })
}

// LeastScorer returns the team with the fewest points for.
func (l *League) LeastScorer() *Team {
	return l.pickTeam(func(a, b *Team) bool { return a.PointsFor < b.PointsFor })
}

// MostPointsAgainst returns the team with the most points against.
func (l *League) MostPointsAgainst() *Team {
	return l.pickTeam(func(a, b *Team) bool { return a.PointsAgainst > b.PointsAgainst })
}

// pickTeam returns the first team for which better holds against every
// other team, or nil for an empty league.
func (l *League) pickTeam(better func(a, b *Team) bool) *Team {
	var best *Team
	for _, t := range l.Teams {
		if best == nil || better(t, best) {
			best = t
		}
	}
	return best
}

// Matchup is a scheduled game between two teams. AwayTeam is nil for a bye.
type Matchup struct {
	Week      int
	HomeTeam  *Team
	AwayTeam  *Team
	HomeScore float64
	AwayScore float64
	Winner    string
	IsPlayoff bool
	Tier      string
}

// IsBye reports whether the matchup has no opponent.
func (m *Matchup) IsBye() bool {
	return m.AwayTeam == nil
}

// Scoreboard returns the matchups of a matchup period from the loaded
// schedule. A week of 0 means the current matchup period. Games in progress
// carry their live scores.
func (l *League) Scoreboard(week int) []*Matchup {
	if week <= 0 {
		week = l.CurrentMatchupPeriod
	}

	var out []*Matchup
	for _, m := range l.schedule {
		if m.MatchupPeriodID != week || m.Home == nil {
			continue
		}
		mu := &Matchup{
			Week:      m.MatchupPeriodID,
			HomeTeam:  l.TeamByID(m.Home.TeamID),
			Winner:    m.Winner,
			Tier:      m.PlayoffTierType,
			IsPlayoff: m.PlayoffTierType != "" && m.PlayoffTierType != "NONE",
		}
		mu.HomeScore, _ = sideScores(m.Home)
		if m.Away != nil {
			mu.AwayTeam = l.TeamByID(m.Away.TeamID)
			mu.AwayScore, _ = sideScores(m.Away)
		}
		out = append(out, mu)
	}
	return out
}

// BoxScores fetches the box scores of a matchup period with player
// lineups. A week of 0 means the current matchup period. Byes are included
// with a nil AwayTeam.
func (l *League) BoxScores(ctx context.Context, week int) ([]*BoxScore, error) {
	if l.client == nil {
		return nil, fmt.Errorf("league %d was not opened with a client", l.LeagueID)
	}
	if week <= 0 {
		week = l.CurrentMatchupPeriod
	}

	q := Query{
		Views:         []string{"mMatchupScore", "mScoreboard"},
		ScoringPeriod: week,
		Filter:        fmt.Sprintf(`{"schedule":{"filterMatchupPeriodIds":{"value":[%d]}}}`, week),
	}
	body, err := l.client.FetchLeague(ctx, l.LeagueID, l.Year, q)
	if err != nil {
		return nil, err
	}

	var w leagueWire
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}

	var out []*BoxScore
	for _, m := range w.Schedule {
		if m.MatchupPeriodID != week || m.Home == nil {
			continue
		}
		out = append(out, l.newBoxScore(m, week))
	}
	return out, nil
}
