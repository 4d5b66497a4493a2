package brackets

import (
	"errors"
	"fmt"

	"github.com/Dosada05/zone-cup/models"
)

var ErrInvalidTeamList = errors.New("invalid team list")

// Pairing - один матч расписания кругового турнира.
type Pairing struct {
	Team1ID  string `json:"team1Id"`
	Team2ID  string `json:"team2Id"`
	Matchday int    `json:"matchday"`
}

// slot - позиция в круге: либо команда, либо пропуск тура.
type slot struct {
	teamID string
	bye    bool
}

// GenerateRoundRobin строит расписание методом круга.
// Позиция 0 фиксирована, после каждого тура последний элемент переносится на позицию 1.
// При нечетном количестве команд добавляется пропуск, матчи с ним отбрасываются.
// В режиме two-way вторая половина повторяет первую со сменой хозяев и сдвигом тура на n-1.
func GenerateRoundRobin(teamIDs []string, mode models.RoundRobinType) ([]Pairing, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unsupported round robin type %q", models.ErrInvalidConfiguration, mode)
	}

	seen := make(map[string]bool, len(teamIDs))
	for _, id := range teamIDs {
		if id == "" {
			return nil, fmt.Errorf("%w: empty team id", ErrInvalidTeamList)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: team %s listed twice", ErrInvalidTeamList, id)
		}
		seen[id] = true
	}

	if len(teamIDs) < 2 {
		return []Pairing{}, nil
	}

	slots := make([]slot, 0, len(teamIDs)+1)
	for _, id := range teamIDs {
		slots = append(slots, slot{teamID: id})
	}
	if len(slots)%2 != 0 {
		slots = append(slots, slot{bye: true})
	}

	n := len(slots)
	days := n - 1
	pairings := make([]Pairing, 0, days*n/2)

	for day := 0; day < days; day++ {
		for i := 0; i < n/2; i++ {
			home, away := slots[i], slots[n-1-i]
			if home.bye || away.bye {
				continue
			}
			pairings = append(pairings, Pairing{
				Team1ID:  home.teamID,
				Team2ID:  away.teamID,
				Matchday: day + 1,
			})
		}

		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	if mode == models.RoundRobinTwoWay {
		firstLeg := len(pairings)
		for i := 0; i < firstLeg; i++ {
			p := pairings[i]
			pairings = append(pairings, Pairing{
				Team1ID:  p.Team2ID,
				Team2ID:  p.Team1ID,
				Matchday: p.Matchday + days,
			})
		}
	}

	return pairings, nil
}
