package models

// SeedingState - состояние жеребьевки групп турнира.
type SeedingState string

const (
	SeedingUnseeded SeedingState = "unseeded"
	SeedingSeeded   SeedingState = "seeded"
)

func (s SeedingState) IsValid() bool {
	return s == SeedingUnseeded || s == SeedingSeeded
}

// CanTransitionTo: unseeded -> seeded только через жеребьевку, seeded -> unseeded только через сброс.
func (s SeedingState) CanTransitionTo(next SeedingState) bool {
	allowed := map[SeedingState][]SeedingState{
		SeedingUnseeded: {SeedingSeeded},
		SeedingSeeded:   {SeedingUnseeded},
	}
	for _, candidate := range allowed[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TournamentSettings - единственная запись с конфигурацией турнира.
type TournamentSettings struct {
	Rules RulesConfig  `json:"rules"`
	State SeedingState `json:"state"`
}

func (s *TournamentSettings) IsSeeded() bool {
	return s.State == SeedingSeeded
}
