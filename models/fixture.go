package models

type FixtureStatus string

const (
	FixturePendingDate  FixtureStatus = "pending_date"
	FixtureUpcoming     FixtureStatus = "upcoming"
	FixtureLive         FixtureStatus = "live"
	FixtureCompleted    FixtureStatus = "completed"
	FixturePendingTeams FixtureStatus = "pending_teams" // только для финалов плей-офф
)

func (s FixtureStatus) IsValid() bool {
	switch s {
	case FixturePendingDate, FixtureUpcoming, FixtureLive, FixtureCompleted, FixturePendingTeams:
		return true
	}
	return false
}

// Названия раундов плей-офф.
const (
	RoundSemifinal1 = "Semifinal 1"
	RoundSemifinal2 = "Semifinal 2"
	RoundFinal      = "Final"

	SecondLegSuffix = " - Vuelta"
)

// Fixture - матч группового этапа.
type Fixture struct {
	ID           string        `json:"id" db:"id"`
	ZoneID       string        `json:"zoneId" db:"zone_id"`
	Team1ID      string        `json:"team1Id" db:"team1_id"`
	Team2ID      string        `json:"team2Id" db:"team2_id"`
	Matchday     int           `json:"matchday" db:"matchday"`
	Status       FixtureStatus `json:"status" db:"status"`
	Score1       *int          `json:"score1,omitempty" db:"score1"`
	Score2       *int          `json:"score2,omitempty" db:"score2"`
	OrderInRound int           `json:"-" db:"order_in_round"`
}

// Result returns the scored outcome of a completed fixture.
func (f *Fixture) Result() (MatchResult, bool) {
	if f.Status != FixtureCompleted || f.Score1 == nil || f.Score2 == nil {
		return MatchResult{}, false
	}
	return MatchResult{Team1ID: f.Team1ID, Team2ID: f.Team2ID, Score1: *f.Score1, Score2: *f.Score2}, true
}

// PlayoffFixture - матч плей-офф. Команды финала неизвестны до завершения полуфиналов.
type PlayoffFixture struct {
	ID           string        `json:"id" db:"id"`
	ZoneID       string        `json:"zoneId" db:"zone_id"`
	Round        string        `json:"round" db:"round_label"`
	MatchLabel   string        `json:"matchLabel" db:"match_label"`
	Team1ID      *string       `json:"team1Id" db:"team1_id"`
	Team2ID      *string       `json:"team2Id" db:"team2_id"`
	Status       FixtureStatus `json:"status" db:"status"`
	IsSecondLeg  bool          `json:"isSecondLeg,omitempty" db:"is_second_leg"`
	Score1       *int          `json:"score1,omitempty" db:"score1"`
	Score2       *int          `json:"score2,omitempty" db:"score2"`
	OrderInRound int           `json:"-" db:"order_in_round"`
}

// MatchResult - завершенный матч со счетом, вход для расчета таблицы.
type MatchResult struct {
	Team1ID string `json:"team1Id"`
	Team2ID string `json:"team2Id"`
	Score1  int    `json:"score1"`
	Score2  int    `json:"score2"`
}
