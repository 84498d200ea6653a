package espn

// Wire types mirror the JSON documents returned by the league endpoint.
// Only the fields the models use are decoded.

type leagueWire struct {
	ID              int           `json:"id"`
	SeasonID        int           `json:"seasonId"`
	ScoringPeriodID int           `json:"scoringPeriodId"`
	Status          statusWire    `json:"status"`
	Settings        settingsWire  `json:"settings"`
	Members         []memberWire  `json:"members"`
	Teams           []teamWire    `json:"teams"`
	Schedule        []matchupWire `json:"schedule"`
	DraftDetail     draftWire     `json:"draftDetail"`
}

type statusWire struct {
	CurrentMatchupPeriod int   `json:"currentMatchupPeriod"`
	FirstScoringPeriod   int   `json:"firstScoringPeriod"`
	FinalScoringPeriod   int   `json:"finalScoringPeriod"`
	LatestScoringPeriod  int   `json:"latestScoringPeriod"`
	PreviousSeasons      []int `json:"previousSeasons"`
	IsActive             bool  `json:"isActive"`
}

type settingsWire struct {
	Name                string                  `json:"name"`
	Size                int                     `json:"size"`
	ScheduleSettings    scheduleSettingsWire    `json:"scheduleSettings"`
	ScoringSettings     scoringSettingsWire     `json:"scoringSettings"`
	TradeSettings       tradeSettingsWire       `json:"tradeSettings"`
	DraftSettings       draftSettingsWire       `json:"draftSettings"`
	AcquisitionSettings acquisitionSettingsWire `json:"acquisitionSettings"`
	RosterSettings      rosterSettingsWire      `json:"rosterSettings"`
}

type scheduleSettingsWire struct {
	MatchupPeriodCount int              `json:"matchupPeriodCount"`
	PlayoffTeamCount   int              `json:"playoffTeamCount"`
	MatchupPeriods     map[string][]int `json:"matchupPeriods"`
	Divisions          []divisionWire   `json:"divisions"`
}

type divisionWire struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type scoringSettingsWire struct {
	ScoringType  string            `json:"scoringType"`
	ScoringItems []scoringItemWire `json:"scoringItems"`
}

type scoringItemWire struct {
	StatID int     `json:"statId"`
	Points float64 `json:"points"`
}

type tradeSettingsWire struct {
	DeadlineDate      int64 `json:"deadlineDate"`
	VetoVotesRequired int   `json:"vetoVotesRequired"`
}

type draftSettingsWire struct {
	Type        string `json:"type"`
	KeeperCount int    `json:"keeperCount"`
}

type acquisitionSettingsWire struct {
	AcquisitionBudget int  `json:"acquisitionBudget"`
	IsUsingBudget     bool `json:"isUsingAcquisitionBudget"`
}

type rosterSettingsWire struct {
	LineupSlotCounts map[string]int `json:"lineupSlotCounts"`
}

type memberWire struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type teamWire struct {
	ID                  int                    `json:"id"`
	Abbrev              string                 `json:"abbrev"`
	Name                string                 `json:"name"`
	Location            string                 `json:"location"`
	Nickname            string                 `json:"nickname"`
	DivisionID          int                    `json:"divisionId"`
	Owners              []string               `json:"owners"`
	Logo                string                 `json:"logo"`
	PlayoffSeed         int                    `json:"playoffSeed"`
	RankCalculatedFinal int                    `json:"rankCalculatedFinal"`
	Record              recordWire             `json:"record"`
	TransactionCounter  transactionCounterWire `json:"transactionCounter"`
	Roster              rosterWire             `json:"roster"`
}

type recordWire struct {
	Overall overallWire `json:"overall"`
}

type overallWire struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
	StreakLength  int     `json:"streakLength"`
	StreakType    string  `json:"streakType"`
}

type transactionCounterWire struct {
	Acquisitions int `json:"acquisitions"`
	Drops        int `json:"drops"`
	Trades       int `json:"trades"`
}

type rosterWire struct {
	Entries []rosterEntryWire `json:"entries"`
}

type rosterEntryWire struct {
	PlayerID        int                 `json:"playerId"`
	LineupSlotID    int                 `json:"lineupSlotId"`
	InjuryStatus    string              `json:"injuryStatus"`
	AcquisitionType string              `json:"acquisitionType"`
	PlayerPoolEntry playerPoolEntryWire `json:"playerPoolEntry"`
}

type playerPoolEntryWire struct {
	AppliedStatTotal float64    `json:"appliedStatTotal"`
	Player           playerWire `json:"player"`
}

type playerWire struct {
	ID                int           `json:"id"`
	FullName          string        `json:"fullName"`
	DefaultPositionID int           `json:"defaultPositionId"`
	ProTeamID         int           `json:"proTeamId"`
	InjuryStatus      string        `json:"injuryStatus"`
	Injured           bool          `json:"injured"`
	EligibleSlots     []int         `json:"eligibleSlots"`
	Ownership         ownershipWire `json:"ownership"`
	Stats             []statWire    `json:"stats"`
}

type ownershipWire struct {
	PercentOwned   float64 `json:"percentOwned"`
	PercentStarted float64 `json:"percentStarted"`
}

type statWire struct {
	SeasonID        int     `json:"seasonId"`
	ScoringPeriodID int     `json:"scoringPeriodId"`
	StatSourceID    int     `json:"statSourceId"`
	StatSplitTypeID int     `json:"statSplitTypeId"`
	AppliedTotal    float64 `json:"appliedTotal"`
	AppliedAverage  float64 `json:"appliedAverage"`
}

type matchupWire struct {
	ID              int          `json:"id"`
	MatchupPeriodID int          `json:"matchupPeriodId"`
	Home            *matchupSide `json:"home"`
	Away            *matchupSide `json:"away"`
	Winner          string       `json:"winner"`
	PlayoffTierType string       `json:"playoffTierType"`
}

type matchupSide struct {
	TeamID                        int         `json:"teamId"`
	TotalPoints                   float64     `json:"totalPoints"`
	TotalPointsLive               *float64    `json:"totalPointsLive"`
	TotalProjectedPointsLive      *float64    `json:"totalProjectedPointsLive"`
	RosterForCurrentScoringPeriod *rosterWire `json:"rosterForCurrentScoringPeriod"`
}

type draftWire struct {
	Drafted bool       `json:"drafted"`
	Picks   []pickWire `json:"picks"`
}

type pickWire struct {
	OverallPickNumber int  `json:"overallPickNumber"`
	RoundID           int  `json:"roundId"`
	RoundPickNumber   int  `json:"roundPickNumber"`
	TeamID            int  `json:"teamId"`
	PlayerID          int  `json:"playerId"`
	Keeper            bool `json:"keeper"`
	BidAmount         int  `json:"bidAmount"`
	NominatingTeamID  int  `json:"nominatingTeamId"`
}
