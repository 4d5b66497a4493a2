package brackets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/zone-cup/models"
)

// PlayoffQualifiers - количество команд зоны, выходящих в плей-офф.
const PlayoffQualifiers = 4

var ErrNotEnoughQualifiers = errors.New("not enough ranked teams for a playoff bracket")

const (
	labelSemifinal1 = "1st vs 4th"
	labelSemifinal2 = "2nd vs 3rd"
	labelFinal      = "Winner SF1 vs Winner SF2"
)

// BuildPlayoffFixtures строит сетку зоны по таблице: 1-4 и 2-3 в полуфиналах,
// финал без команд. В режиме two-way добавляются ответные матчи (Vuelta).
func BuildPlayoffFixtures(zoneID string, standings []models.StandingEntry, mode models.RoundRobinType) ([]models.PlayoffFixture, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unsupported round robin type %q", models.ErrInvalidConfiguration, mode)
	}
	if len(standings) < PlayoffQualifiers {
		return nil, fmt.Errorf("%w: zone %s has %d teams ranked, %d required", ErrNotEnoughQualifiers, zoneID, len(standings), PlayoffQualifiers)
	}

	ranked := make(map[int]string, PlayoffQualifiers)
	for _, entry := range standings {
		if entry.Position >= 1 && entry.Position <= PlayoffQualifiers {
			ranked[entry.Position] = entry.TeamID
		}
	}
	for pos := 1; pos <= PlayoffQualifiers; pos++ {
		if ranked[pos] == "" {
			return nil, fmt.Errorf("%w: zone %s has no team at position %d", ErrNotEnoughQualifiers, zoneID, pos)
		}
	}

	first, second, third, fourth := ranked[1], ranked[2], ranked[3], ranked[4]

	fixtures := []models.PlayoffFixture{
		newPlayoffFixture(zoneID, models.RoundSemifinal1, labelSemifinal1, &first, &fourth, false),
		newPlayoffFixture(zoneID, models.RoundSemifinal2, labelSemifinal2, &second, &third, false),
		newPlayoffFixture(zoneID, models.RoundFinal, labelFinal, nil, nil, false),
	}

	if mode == models.RoundRobinTwoWay {
		fixtures = append(fixtures,
			newPlayoffFixture(zoneID, models.RoundSemifinal1+models.SecondLegSuffix, reverseLabel(labelSemifinal1), &fourth, &first, true),
			newPlayoffFixture(zoneID, models.RoundSemifinal2+models.SecondLegSuffix, reverseLabel(labelSemifinal2), &third, &second, true),
			newPlayoffFixture(zoneID, models.RoundFinal+models.SecondLegSuffix, reverseLabel(labelFinal), nil, nil, true),
		)
	}

	for i := range fixtures {
		fixtures[i].OrderInRound = i + 1
	}
	return fixtures, nil
}

func newPlayoffFixture(zoneID, round, label string, team1, team2 *string, secondLeg bool) models.PlayoffFixture {
	status := models.FixturePendingDate
	if team1 == nil || team2 == nil {
		status = models.FixturePendingTeams
	}
	return models.PlayoffFixture{
		ZoneID:      zoneID,
		Round:       round,
		MatchLabel:  label,
		Team1ID:     team1,
		Team2ID:     team2,
		Status:      status,
		IsSecondLeg: secondLeg,
	}
}

func reverseLabel(label string) string {
	parts := strings.SplitN(label, " vs ", 2)
	if len(parts) != 2 {
		return label
	}
	return parts[1] + " vs " + parts[0]
}

// BaseRound убирает суффикс ответного матча: "Semifinal 1 - Vuelta" -> "Semifinal 1".
func BaseRound(round string) string {
	return strings.TrimSuffix(round, models.SecondLegSuffix)
}

// TieWinner определяет победителя пары по сумме всех матчей.
// Нужны завершенные матчи со счетом; при равенстве суммы победителя нет.
func TieWinner(legs []models.PlayoffFixture) (string, bool) {
	if len(legs) == 0 {
		return "", false
	}
	goals := make(map[string]int, 2)
	for _, leg := range legs {
		if leg.Status != models.FixtureCompleted || leg.Team1ID == nil || leg.Team2ID == nil || leg.Score1 == nil || leg.Score2 == nil {
			return "", false
		}
		goals[*leg.Team1ID] += *leg.Score1
		goals[*leg.Team2ID] += *leg.Score2
	}
	if len(goals) != 2 {
		return "", false
	}

	var winner string
	best, tied := -1, false
	for teamID, total := range goals {
		switch {
		case total > best:
			winner, best, tied = teamID, total, false
		case total == best:
			tied = true
		}
	}
	if tied {
		return "", false
	}
	return winner, true
}

// ResolveFinal заполняет команды финала зоны, когда обе полуфинальные пары
// определили победителей. Возвращает только измененные финальные матчи.
func ResolveFinal(fixtures []models.PlayoffFixture) []models.PlayoffFixture {
	legs := make(map[string][]models.PlayoffFixture, 3)
	for _, f := range fixtures {
		base := BaseRound(f.Round)
		legs[base] = append(legs[base], f)
	}

	winner1, ok1 := TieWinner(legs[models.RoundSemifinal1])
	winner2, ok2 := TieWinner(legs[models.RoundSemifinal2])
	if !ok1 || !ok2 {
		return nil
	}

	updated := make([]models.PlayoffFixture, 0, 2)
	for _, final := range legs[models.RoundFinal] {
		if final.Status != models.FixturePendingTeams {
			continue
		}
		home, away := winner1, winner2
		if final.IsSecondLeg {
			home, away = winner2, winner1
		}
		final.Team1ID = &home
		final.Team2ID = &away
		final.Status = models.FixturePendingDate
		updated = append(updated, final)
	}
	return updated
}
