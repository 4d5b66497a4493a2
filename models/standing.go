package models

// StandingEntry - строка турнирной таблицы зоны. Всегда вычисляется заново из матчей.
type StandingEntry struct {
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	Position       int    `json:"position"`
	Points         int    `json:"points"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
}
