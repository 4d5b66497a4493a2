package brackets

import (
	"sort"

	"github.com/Dosada05/zone-cup/models"
)

// CalculateStandings считает таблицу зоны по завершенным матчам.
// Если правила не заданы, используются правила по умолчанию.
// Матчи с командами вне списка игнорируются.
func CalculateStandings(teams []models.TeamRef, results []models.MatchResult, rules *models.RulesConfig) []models.StandingEntry {
	if rules == nil {
		rules = models.DefaultRules()
	}

	entries := make([]*models.StandingEntry, 0, len(teams))
	index := make(map[string]*models.StandingEntry, len(teams))
	for _, team := range teams {
		if _, dup := index[team.ID]; dup {
			continue
		}
		entry := &models.StandingEntry{TeamID: team.ID, TeamName: team.Name}
		entries = append(entries, entry)
		index[team.ID] = entry
	}

	counted := make([]models.MatchResult, 0, len(results))
	for _, m := range results {
		home, away := index[m.Team1ID], index[m.Team2ID]
		if home == nil || away == nil || home == away || m.Score1 < 0 || m.Score2 < 0 {
			continue
		}
		counted = append(counted, m)

		home.Played++
		away.Played++
		home.GoalsFor += m.Score1
		home.GoalsAgainst += m.Score2
		away.GoalsFor += m.Score2
		away.GoalsAgainst += m.Score1

		switch {
		case m.Score1 > m.Score2:
			home.Won++
			away.Lost++
			home.Points += rules.PointsForWin
			away.Points += rules.PointsForLoss
		case m.Score1 < m.Score2:
			away.Won++
			home.Lost++
			away.Points += rules.PointsForWin
			home.Points += rules.PointsForLoss
		default:
			home.Drawn++
			away.Drawn++
			home.Points += rules.PointsForDraw
			away.Points += rules.PointsForDraw
		}
	}

	for _, e := range entries {
		e.GoalDifference = e.GoalsFor - e.GoalsAgainst
	}

	criteria := rules.EnabledTiebreakers()
	headToHead := headToHeadPoints(entries, counted, criteria, rules)

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		for _, c := range criteria {
			if cmp := compareByCriterion(c, a, b, headToHead); cmp != 0 {
				return cmp > 0
			}
		}
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		return a.TeamID < b.TeamID
	})

	standings := make([]models.StandingEntry, len(entries))
	for i, e := range entries {
		e.Position = i + 1
		standings[i] = *e
	}
	return standings
}

// compareByCriterion возвращает >0, если a выше b по критерию.
// drawLot не применяется: детерминированный порядок по имени заменяет жребий.
func compareByCriterion(c models.TiebreakerCriterion, a, b *models.StandingEntry, headToHead map[string]int) int {
	switch c {
	case models.TiebreakerGoalDifference:
		return a.GoalDifference - b.GoalDifference
	case models.TiebreakerGoalsFor:
		return a.GoalsFor - b.GoalsFor
	case models.TiebreakerMatchesWon:
		return a.Won - b.Won
	case models.TiebreakerDirectResult:
		return headToHead[a.TeamID] - headToHead[b.TeamID]
	case models.TiebreakerPointsCoefficient:
		// a.Points/a.Played против b.Points/b.Played без деления
		left := a.Points * max(b.Played, 1)
		right := b.Points * max(a.Played, 1)
		if a.Played == 0 {
			left = 0
		}
		if b.Played == 0 {
			right = 0
		}
		return left - right
	}
	return 0
}

// headToHeadPoints считает очки в личных встречах внутри групп команд,
// равных по очкам и по всем критериям, стоящим перед directResult.
func headToHeadPoints(entries []*models.StandingEntry, results []models.MatchResult, criteria []models.TiebreakerCriterion, rules *models.RulesConfig) map[string]int {
	preceding := -1
	for i, c := range criteria {
		if c == models.TiebreakerDirectResult {
			preceding = i
			break
		}
	}
	if preceding < 0 {
		return nil
	}
	before := criteria[:preceding]

	group := make(map[string]int, len(entries))
	groups := 0
	for i, e := range entries {
		if _, assigned := group[e.TeamID]; assigned {
			continue
		}
		group[e.TeamID] = groups
		for _, other := range entries[i+1:] {
			if _, assigned := group[other.TeamID]; assigned || other.Points != e.Points {
				continue
			}
			tied := true
			for _, c := range before {
				if compareByCriterion(c, e, other, nil) != 0 {
					tied = false
					break
				}
			}
			if tied {
				group[other.TeamID] = groups
			}
		}
		groups++
	}

	points := make(map[string]int, len(entries))
	for _, m := range results {
		if group[m.Team1ID] != group[m.Team2ID] {
			continue
		}
		switch {
		case m.Score1 > m.Score2:
			points[m.Team1ID] += rules.PointsForWin
			points[m.Team2ID] += rules.PointsForLoss
		case m.Score1 < m.Score2:
			points[m.Team2ID] += rules.PointsForWin
			points[m.Team1ID] += rules.PointsForLoss
		default:
			points[m.Team1ID] += rules.PointsForDraw
			points[m.Team2ID] += rules.PointsForDraw
		}
	}
	return points
}
