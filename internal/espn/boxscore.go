package espn

// BoxScore is a matchup with live scores and the lineups of both teams.
// AwayTeam is nil for a bye.
type BoxScore struct {
	Week          int
	HomeTeam      *Team
	AwayTeam      *Team
	HomeScore     float64
	AwayScore     float64
	HomeProjected float64
	AwayProjected float64
	HomeLineup    []*BoxPlayer
	AwayLineup    []*BoxPlayer
	IsPlayoff     bool
	MatchupType   string
}

// Winner returns the team with the higher score, or nil for a tie or a bye.
func (b *BoxScore) Winner() *Team {
	if b.AwayTeam == nil {
		return nil
	}
	switch {
	case b.HomeScore > b.AwayScore:
		return b.HomeTeam
	case b.AwayScore > b.HomeScore:
		return b.AwayTeam
	default:
		return nil
	}
}

// BoxPlayer is a player in a box score lineup.
type BoxPlayer struct {
	PlayerID        int
	Name            string
	Position        string
	SlotPosition    string
	ProTeam         string
	InjuryStatus    string
	Points          float64
	ProjectedPoints float64
}

// Starter reports whether the player is not on the bench or injured reserve.
func (p *BoxPlayer) Starter() bool {
	return p.SlotPosition != "BE" && p.SlotPosition != "IR"
}

// newBoxScore builds a BoxScore for one schedule entry.
func (l *League) newBoxScore(m matchupWire, week int) *BoxScore {
	b := &BoxScore{
		Week:        week,
		MatchupType: m.PlayoffTierType,
		IsPlayoff:   m.PlayoffTierType != "" && m.PlayoffTierType != "NONE",
	}
	b.HomeTeam = l.TeamByID(m.Home.TeamID)
	b.HomeScore, b.HomeProjected = sideScores(m.Home)
	b.HomeLineup = lineup(m.Home, week)
	if m.Away != nil {
		b.AwayTeam = l.TeamByID(m.Away.TeamID)
		b.AwayScore, b.AwayProjected = sideScores(m.Away)
		b.AwayLineup = lineup(m.Away, week)
	}
	return b
}

// sideScores prefers live totals over the settled total.
func sideScores(s *matchupSide) (score, projected float64) {
	score = s.TotalPoints
	if s.TotalPointsLive != nil {
		score = *s.TotalPointsLive
	}
	projected = score
	if s.TotalProjectedPointsLive != nil {
		projected = *s.TotalProjectedPointsLive
	}
	return score, projected
}

// lineup builds the box score players of one side for a scoring period.
func lineup(s *matchupSide, week int) []*BoxPlayer {
	if s.RosterForCurrentScoringPeriod == nil {
		return []*BoxPlayer{}
	}

	out := make([]*BoxPlayer, 0, len(s.RosterForCurrentScoringPeriod.Entries))
	for _, e := range s.RosterForCurrentScoringPeriod.Entries {
		p := newPlayer(e)
		bp := &BoxPlayer{
			PlayerID:     p.PlayerID,
			Name:         p.Name,
			Position:     p.Position,
			SlotPosition: p.LineupSlot,
			ProTeam:      p.ProTeam,
			InjuryStatus: p.InjuryStatus,
		}
		if st, ok := p.Stats[week]; ok {
			bp.Points = st.Points
			bp.ProjectedPoints = st.ProjectedPoints
		} else {
			bp.Points = e.PlayerPoolEntry.AppliedStatTotal
		}
		out = append(out, bp)
	}
	return out
}
