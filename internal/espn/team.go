package espn

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Owner is a league member.
type Owner struct {
	ID          string
	DisplayName string
	FirstName   string
	LastName    string
}

// Team is a fantasy team with its season record and roster.
type Team struct {
	TeamID        int
	Abbrev        string
	Name          string
	DivisionID    int
	DivisionName  string
	LogoURL       string
	Owners        []*Owner
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	Standing      int
	FinalStanding int
	StreakLength  int
	StreakType    string
	Acquisitions  int
	Drops         int
	Trades        int
	Roster        []*Player

	// Schedule holds the opponent of each played or scheduled matchup,
	// aligned with Scores and Outcomes. Bye weeks are skipped.
	Schedule []*Team
	Scores   []float64
	Outcomes []string
}

// Record returns the season record as "W-L" or "W-L-T" when there are ties.
func (t *Team) Record() string {
	if t.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", t.Wins, t.Losses, t.Ties)
	}
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}

// WinPercentage returns wins over games played, counting ties as half.
func (t *Team) WinPercentage() float64 {
	games := t.Wins + t.Losses + t.Ties
	if games == 0 {
		return 0
	}
	return (float64(t.Wins) + float64(t.Ties)/2) / float64(games)
}

// PlayerByName returns the rostered player with the given name
// (case-insensitive), or nil.
func (t *Team) PlayerByName(name string) *Player {
	for _, p := range t.Roster {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// teamName follows ESPN's display rule: the team name, or location and
// nickname for older leagues.
func teamName(w teamWire) string {
	if w.Name != "" {
		return w.Name
	}
	return strings.TrimSpace(w.Location + " " + w.Nickname)
}

// newTeam builds a Team without its schedule.
func newTeam(w teamWire, owners map[string]*Owner, divisions map[int]string) *Team {
	t := &Team{
		TeamID:        w.ID,
		Abbrev:        w.Abbrev,
		Name:          teamName(w),
		DivisionID:    w.DivisionID,
		DivisionName:  divisions[w.DivisionID],
		LogoURL:       w.Logo,
		Wins:          w.Record.Overall.Wins,
		Losses:        w.Record.Overall.Losses,
		Ties:          w.Record.Overall.Ties,
		PointsFor:     w.Record.Overall.PointsFor,
		PointsAgainst: w.Record.Overall.PointsAgainst,
		Standing:      w.PlayoffSeed,
		FinalStanding: w.RankCalculatedFinal,
		StreakLength:  w.Record.Overall.StreakLength,
		StreakType:    w.Record.Overall.StreakType,
		Acquisitions:  w.TransactionCounter.Acquisitions,
		Drops:         w.TransactionCounter.Drops,
		Trades:        w.TransactionCounter.Trades,
		Owners:        make([]*Owner, 0, len(w.Owners)),
		Roster:        make([]*Player, 0, len(w.Roster.Entries)),
	}
	for _, id := range w.Owners {
		if o, ok := owners[id]; ok {
			t.Owners = append(t.Owners, o)
		} else {
			t.Owners = append(t.Owners, &Owner{ID: id})
		}
	}
	for _, e := range w.Roster.Entries {
		t.Roster = append(t.Roster, newPlayer(e))
	}
	return t
}

// PlayerStats are the points of one scoring period.
type PlayerStats struct {
	Points          float64
	ProjectedPoints float64
}

// Player is a rostered NFL player.
type Player struct {
	PlayerID             int
	Name                 string
	Position             string
	ProTeam              string
	LineupSlot           string
	EligibleSlots        []string
	InjuryStatus         string
	Injured              bool
	AcquisitionType      string
	PercentOwned         float64
	PercentStarted       float64
	TotalPoints          float64
	AvgPoints            float64
	ProjectedTotalPoints float64
	ProjectedAvgPoints   float64

	// Stats maps a scoring period (week) to its points.
	Stats map[int]PlayerStats
}

// WeekPoints returns the points scored in week and whether the week has
// stats.
func (p *Player) WeekPoints(week int) (float64, bool) {
	s, ok := p.Stats[week]
	return s.Points, ok
}

// newPlayer builds a Player from a roster entry.
func newPlayer(e rosterEntryWire) *Player {
	pw := e.PlayerPoolEntry.Player
	injury := e.InjuryStatus
	if injury == "" {
		injury = pw.InjuryStatus
	}

	p := &Player{
		PlayerID:        pw.ID,
		Name:            pw.FullName,
		Position:        lookupName(positionNames, pw.DefaultPositionID),
		ProTeam:         lookupName(proTeamNames, pw.ProTeamID),
		LineupSlot:      lookupName(slotNames, e.LineupSlotID),
		EligibleSlots:   make([]string, 0, len(pw.EligibleSlots)),
		InjuryStatus:    injury,
		Injured:         pw.Injured,
		AcquisitionType: e.AcquisitionType,
		PercentOwned:    pw.Ownership.PercentOwned,
		PercentStarted:  pw.Ownership.PercentStarted,
		Stats:           make(map[int]PlayerStats),
	}
	if p.PlayerID == 0 {
		p.PlayerID = e.PlayerID
	}
	for _, id := range pw.EligibleSlots {
		p.EligibleSlots = append(p.EligibleSlots, lookupName(slotNames, id))
	}
	applyStats(p, pw.Stats)
	return p
}

// applyStats splits stat entries into season totals (scoring period 0)
// and per-week points.
func applyStats(p *Player, stats []statWire) {
	for _, s := range stats {
		if s.ScoringPeriodID == 0 {
			switch s.StatSourceID {
			case statSourceActual:
				p.TotalPoints = s.AppliedTotal
				p.AvgPoints = s.AppliedAverage
			case statSourceProjected:
				p.ProjectedTotalPoints = s.AppliedTotal
				p.ProjectedAvgPoints = s.AppliedAverage
			}
			continue
		}

		week := p.Stats[s.ScoringPeriodID]
		switch s.StatSourceID {
		case statSourceActual:
			week.Points = s.AppliedTotal
		case statSourceProjected:
			week.ProjectedPoints = s.AppliedTotal
		}
		p.Stats[s.ScoringPeriodID] = week
	}
}

// Pick is one draft selection.
type Pick struct {
	Overall    int
	Round      int
	RoundPick  int
	TeamID     int
	TeamName   string
	PlayerID   int
	PlayerName string
	Keeper     bool
	BidAmount  int

	// NominatingTeamID is set for auction drafts.
	NominatingTeamID int
}

// ScoringItem is one scoring rule.
type ScoringItem struct {
	StatID int
	Points float64
}

// Settings are the league rules for a season.
type Settings struct {
	Name              string
	TeamCount         int
	RegSeasonCount    int
	PlayoffTeamCount  int
	KeeperCount       int
	VetoVotesRequired int
	TradeDeadline     int64
	ScoringType       string
	DraftType         string
	FAABBudget        int
	UsesFAAB          bool
	ScoringFormat     []ScoringItem

	// MatchupPeriods maps a matchup period to its scoring periods.
	MatchupPeriods map[int][]int

	// DivisionMap maps a division id to its name.
	DivisionMap map[int]string

	// PositionSlotCounts maps a lineup slot to the number of starters.
	PositionSlotCounts map[string]int
}

// newSettings builds Settings from the wire form.
func newSettings(w settingsWire) *Settings {
	s := &Settings{
		Name:               w.Name,
		TeamCount:          w.Size,
		RegSeasonCount:     w.ScheduleSettings.MatchupPeriodCount,
		PlayoffTeamCount:   w.ScheduleSettings.PlayoffTeamCount,
		KeeperCount:        w.DraftSettings.KeeperCount,
		VetoVotesRequired:  w.TradeSettings.VetoVotesRequired,
		TradeDeadline:      w.TradeSettings.DeadlineDate,
		ScoringType:        w.ScoringSettings.ScoringType,
		DraftType:          w.DraftSettings.Type,
		FAABBudget:         w.AcquisitionSettings.AcquisitionBudget,
		UsesFAAB:           w.AcquisitionSettings.IsUsingBudget,
		ScoringFormat:      make([]ScoringItem, 0, len(w.ScoringSettings.ScoringItems)),
		MatchupPeriods:     make(map[int][]int, len(w.ScheduleSettings.MatchupPeriods)),
		DivisionMap:        make(map[int]string, len(w.ScheduleSettings.Divisions)),
		PositionSlotCounts: make(map[string]int),
	}
	for _, item := range w.ScoringSettings.ScoringItems {
		s.ScoringFormat = append(s.ScoringFormat, ScoringItem(item))
	}
	for k, periods := range w.ScheduleSettings.MatchupPeriods {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		sorted := append([]int(nil), periods...)
		sort.Ints(sorted)
		s.MatchupPeriods[id] = sorted
	}
	for _, d := range w.ScheduleSettings.Divisions {
		s.DivisionMap[d.ID] = d.Name
	}
	for k, n := range w.RosterSettings.LineupSlotCounts {
		if n == 0 {
			continue
		}
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		s.PositionSlotCounts[lookupName(slotNames, id)] = n
	}
	return s
}
