package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/zone-cup/models"
)

func refs(names ...string) []models.TeamRef {
	teams := make([]models.TeamRef, len(names))
	for i, n := range names {
		teams[i] = models.TeamRef{ID: "id-" + n, Name: n}
	}
	return teams
}

func result(a, b string, s1, s2 int) models.MatchResult {
	return models.MatchResult{Team1ID: "id-" + a, Team2ID: "id-" + b, Score1: s1, Score2: s2}
}

func byTeam(standings []models.StandingEntry) map[string]models.StandingEntry {
	m := make(map[string]models.StandingEntry, len(standings))
	for _, s := range standings {
		m[s.TeamName] = s
	}
	return m
}

func TestCalculateStandingsNoMatches(t *testing.T) {
	standings := CalculateStandings(refs("Delta", "Alpha", "Charlie", "Bravo"), nil, models.DefaultRules())

	require.Len(t, standings, 4)
	for i, name := range []string{"Alpha", "Bravo", "Charlie", "Delta"} {
		assert.Equal(t, name, standings[i].TeamName)
		assert.Equal(t, i+1, standings[i].Position)
		assert.Zero(t, standings[i].Points)
		assert.Zero(t, standings[i].Played)
	}
}

func TestCalculateStandingsExampleScenario(t *testing.T) {
	rules := &models.RulesConfig{PointsForWin: 3, PointsForDraw: 1, PointsForLoss: 0, RoundRobinType: models.RoundRobinOneWay,
		Tiebreakers: models.DefaultRules().Tiebreakers}
	standings := CalculateStandings(refs("C", "B", "A"), []models.MatchResult{
		result("A", "B", 2, 1),
		result("B", "C", 1, 1),
	}, rules)

	require.Len(t, standings, 3)
	table := byTeam(standings)
	assert.Equal(t, 3, table["A"].Points)
	assert.Equal(t, 1, table["A"].Played)
	assert.Equal(t, 1, table["B"].Points)
	assert.Equal(t, 2, table["B"].Played)
	assert.Equal(t, 1, table["C"].Points)
	assert.Equal(t, 1, table["C"].Played)

	// B проиграл 1-2 и сыграл 1-1: разница -1, поэтому C выше по разнице мячей.
	assert.Equal(t, []string{"A", "C", "B"}, names(standings))
	assert.Equal(t, -1, table["B"].GoalDifference)
	assert.Equal(t, 0, table["C"].GoalDifference)

	// Без критериев равные по очкам B и C идут по имени.
	rules.Tiebreakers = nil
	standings = CalculateStandings(refs("C", "B", "A"), []models.MatchResult{
		result("A", "B", 2, 1),
		result("B", "C", 1, 1),
	}, rules)
	assert.Equal(t, []string{"A", "B", "C"}, names(standings))
	assert.Equal(t, []int{1, 2, 3}, []int{standings[0].Position, standings[1].Position, standings[2].Position})
}

func names(standings []models.StandingEntry) []string {
	out := make([]string, len(standings))
	for i, s := range standings {
		out[i] = s.TeamName
	}
	return out
}

func TestCalculateStandingsNilRulesUsesDefaults(t *testing.T) {
	standings := CalculateStandings(refs("A", "B"), []models.MatchResult{result("A", "B", 0, 0)}, nil)
	table := byTeam(standings)
	assert.Equal(t, 1, table["A"].Points)
	assert.Equal(t, 1, table["B"].Drawn)
}

func TestCalculateStandingsCounters(t *testing.T) {
	standings := CalculateStandings(refs("A", "B", "C", "D"), []models.MatchResult{
		result("A", "B", 3, 0),
		result("C", "D", 1, 2),
		result("A", "C", 1, 1),
		result("D", "B", 0, 4),
		result("X", "A", 9, 0), // команда вне зоны
	}, models.DefaultRules())

	table := byTeam(standings)
	a := table["A"]
	assert.Equal(t, models.StandingEntry{TeamID: "id-A", TeamName: "A", Position: 1, Points: 4, Played: 2, Won: 1, Drawn: 1,
		GoalsFor: 4, GoalsAgainst: 1, GoalDifference: 3}, a)
	assert.Equal(t, 1, table["B"].Won)
	assert.Equal(t, 1, table["B"].Lost)
	assert.Equal(t, 4, table["B"].GoalsFor)
	assert.Equal(t, 3, table["B"].GoalsAgainst)
}

func TestCalculateStandingsTiebreakerOrder(t *testing.T) {
	// A и B по 3 очка: у A лучше разница, у B больше забитых.
	matches := []models.MatchResult{
		result("A", "C", 2, 0),
		result("B", "D", 4, 3),
		result("C", "B", 5, 0),
		result("D", "A", 1, 0),
	}
	teams := refs("A", "B", "C", "D")

	byDiff := models.DefaultRules()
	standings := CalculateStandings(teams, matches, byDiff)
	assert.Equal(t, "C", standings[0].TeamName)
	positions := byTeam(standings)
	assert.Less(t, positions["A"].Position, positions["B"].Position)

	byGoals := models.DefaultRules()
	byGoals.Tiebreakers[0].Priority = 2
	byGoals.Tiebreakers[1].Priority = 1
	require.NoError(t, byGoals.Validate())
	positions = byTeam(CalculateStandings(teams, matches, byGoals))
	assert.Less(t, positions["B"].Position, positions["A"].Position)
}

func TestCalculateStandingsDirectResult(t *testing.T) {
	// A и B равны по очкам и разнице, но B выиграл личную встречу.
	matches := []models.MatchResult{
		result("B", "A", 1, 0),
		result("A", "C", 2, 0),
		result("C", "B", 1, 0),
	}
	rules := &models.RulesConfig{PointsForWin: 3, PointsForDraw: 1, RoundRobinType: models.RoundRobinOneWay,
		Tiebreakers: []models.TiebreakerRule{
			{ID: models.TiebreakerDirectResult, Priority: 1, Enabled: true},
		}}
	require.NoError(t, rules.Validate())

	standings := CalculateStandings(refs("A", "B", "C"), matches, rules)
	// Все по 3 очка, в мини-турнире каждый набрал по 3 очка, порядок по имени.
	assert.Equal(t, []string{"A", "B", "C"}, []string{standings[0].TeamName, standings[1].TeamName, standings[2].TeamName})

	matches = append(matches, result("D", "C", 0, 3))
	standings = CalculateStandings(refs("A", "B", "C", "D"), matches, &models.RulesConfig{PointsForWin: 3, PointsForDraw: 1,
		RoundRobinType: models.RoundRobinOneWay,
		Tiebreakers: []models.TiebreakerRule{
			{ID: models.TiebreakerDirectResult, Priority: 1, Enabled: true},
		}})
	// C: 6 очков, A и B по 3, личная встреча за B.
	assert.Equal(t, "C", standings[0].TeamName)
	assert.Equal(t, "B", standings[1].TeamName)
	assert.Equal(t, "A", standings[2].TeamName)
}

func TestCalculateStandingsPointsCoefficient(t *testing.T) {
	matches := []models.MatchResult{
		result("A", "C", 1, 0),
		result("B", "C", 1, 0),
		result("B", "D", 0, 0),
		result("A", "D", 0, 2),
	}
	rules := &models.RulesConfig{PointsForWin: 3, PointsForDraw: 1, RoundRobinType: models.RoundRobinOneWay,
		Tiebreakers: []models.TiebreakerRule{
			{ID: models.TiebreakerPointsCoefficient, Priority: 1, Enabled: true},
		}}
	standings := CalculateStandings(refs("A", "B", "C", "D"), append(matches, result("B", "A", 0, 0)), rules)
	positions := byTeam(standings)
	// B: 5 очков за 3 матча, D: 4 за 2, A: 4 за 3
	assert.Equal(t, 1, positions["B"].Position)
	assert.Equal(t, 2, positions["D"].Position)
	assert.Equal(t, 3, positions["A"].Position)
}

func TestCalculateStandingsDeterministicAndUniquePositions(t *testing.T) {
	teams := refs("Same", "Same", "Other", "Another")
	teams[1].ID = "id-Same-2"
	matches := []models.MatchResult{result("Other", "Another", 1, 1)}

	first := CalculateStandings(teams, matches, models.DefaultRules())
	second := CalculateStandings(teams, matches, models.DefaultRules())
	assert.Equal(t, first, second)

	positions := make(map[int]bool)
	for _, s := range first {
		assert.False(t, positions[s.Position])
		positions[s.Position] = true
	}
}

func TestCalculateStandingsMoreWinsNeverHurts(t *testing.T) {
	base := []models.MatchResult{
		result("A", "B", 1, 1),
		result("C", "D", 2, 0),
		result("A", "C", 0, 1),
	}
	before := byTeam(CalculateStandings(refs("A", "B", "C", "D"), base, models.DefaultRules()))

	improved := append([]models.MatchResult{}, base...)
	improved[2] = result("A", "C", 2, 1)
	after := byTeam(CalculateStandings(refs("A", "B", "C", "D"), improved, models.DefaultRules()))

	assert.GreaterOrEqual(t, after["A"].Points, before["A"].Points)
	assert.LessOrEqual(t, after["A"].Position, before["A"].Position)
}
