package models

// ZoneSize - фиксированное количество команд в зоне.
const ZoneSize = 4

// Zone представляет группу (зону) из не более чем четырех команд.
type Zone struct {
	ID           string   `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	DisplayOrder int      `json:"-" db:"display_order"`
	TeamIDs      []string `json:"teamIds" db:"-"`

	// Locked зеркалит глобальное состояние жеребьевки.
	Locked bool `json:"locked" db:"-"`
}

func (z *Zone) Contains(teamID string) bool {
	for _, id := range z.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

func (z *Zone) IsFull() bool {
	return len(z.TeamIDs) >= ZoneSize
}

// IsComplete reports whether the zone has exactly ZoneSize teams and can be seeded.
func (z *Zone) IsComplete() bool {
	return len(z.TeamIDs) == ZoneSize
}
