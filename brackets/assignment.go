package brackets

import "github.com/Dosada05/zone-cup/models"

// Shuffler - источник случайности для жеребьевки. *rand.Rand подходит.
type Shuffler interface {
	Intn(n int) int
}

// ShuffleTeams возвращает перемешанную копию (Фишер-Йетс).
func ShuffleTeams(teamIDs []string, rng Shuffler) []string {
	shuffled := make([]string, len(teamIDs))
	copy(shuffled, teamIDs)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// DistributeTeams раскладывает команды по зонам по порядку, заполняя каждую
// до models.ZoneSize. Не поместившиеся команды возвращаются отдельно.
func DistributeTeams(teamIDs []string, zoneIDs []string) (map[string][]string, []string) {
	assignment := make(map[string][]string, len(zoneIDs))
	next := 0
	for _, zoneID := range zoneIDs {
		end := min(next+models.ZoneSize, len(teamIDs))
		assignment[zoneID] = append(make([]string, 0, end-next), teamIDs[next:end]...)
		next = end
	}
	return assignment, append(make([]string, 0, len(teamIDs)-next), teamIDs[next:]...)
}
