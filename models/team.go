package models

// Team - команда (клуб), участвующая в турнире.
// Жизненным циклом команд управляет внешний раздел клубов, здесь они только читаются.
type Team struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logoUrl,omitempty" db:"-"`
}

// TeamRef is the minimal team reference the standings engine works with.
type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (t Team) Ref() TeamRef {
	return TeamRef{ID: t.ID, Name: t.Name}
}
