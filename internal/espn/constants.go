package espn

import "strconv"

// positionNames maps defaultPositionId to a fantasy position.
var positionNames = map[int]string{
	1:  "QB",
	2:  "RB",
	3:  "WR",
	4:  "TE",
	5:  "K",
	7:  "P",
	9:  "DT",
	10: "DE",
	11: "LB",
	12: "CB",
	13: "S",
	14: "HC",
	16: "D/ST",
}

// slotNames maps lineupSlotId and eligibleSlots ids to a lineup slot.
var slotNames = map[int]string{
	0:  "QB",
	1:  "TQB",
	2:  "RB",
	3:  "RB/WR",
	4:  "WR",
	5:  "WR/TE",
	6:  "TE",
	7:  "OP",
	8:  "DT",
	9:  "DE",
	10: "LB",
	11: "DL",
	12: "CB",
	13: "S",
	14: "DB",
	15: "DP",
	16: "D/ST",
	17: "K",
	18: "P",
	19: "HC",
	20: "BE",
	21: "IR",
	23: "RB/WR/TE",
	24: "ER",
}

// proTeamNames maps proTeamId to an NFL team abbreviation.
var proTeamNames = map[int]string{
	0:  "None",
	1:  "ATL",
	2:  "BUF",
	3:  "CHI",
	4:  "CIN",
	5:  "CLE",
	6:  "DAL",
	7:  "DEN",
	8:  "DET",
	9:  "GB",
	10: "TEN",
	11: "IND",
	12: "KC",
	13: "LV",
	14: "LAR",
	15: "MIA",
	16: "MIN",
	17: "NE",
	18: "NO",
	19: "NYG",
	20: "NYJ",
	21: "PHI",
	22: "ARI",
	23: "PIT",
	24: "LAC",
	25: "SF",
	26: "SEA",
	27: "TB",
	28: "WSH",
	29: "CAR",
	30: "JAX",
	33: "BAL",
	34: "HOU",
}

// lookupName returns names[id], or the id itself when unknown.
func lookupName(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return strconv.Itoa(id)
}

// Stat sources used in player stat entries.
const (
	statSourceActual    = 0
	statSourceProjected = 1
)

// Matchup outcomes as reported by the schedule.
const (
	winnerHome      = "HOME"
	winnerAway      = "AWAY"
	winnerTie       = "TIE"
	winnerUndecided = "UNDECIDED"
)
