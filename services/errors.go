package services

import (
	"errors"

	"github.com/Dosada05/zone-cup/models"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrNotFound        = errors.New("requested resource not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrZoneNotFound    = errors.New("zone not found")
	ErrFixtureNotFound = errors.New("fixture not found")

	// Ошибки валидации
	ErrValidationFailed    = errors.New("validation failed")
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrInvalidScore        = errors.New("scores must be non-negative integers")
	ErrInvalidStatus       = errors.New("invalid fixture status")
	ErrUnsupportedLogoType = errors.New("unsupported logo content type")

	// Нарушение правил турнира (предусловия)
	ErrGroupsLocked        = errors.New("zone assignment is locked while groups are seeded")
	ErrGroupsAlreadySeeded = errors.New("groups are already seeded")
	ErrNotEnoughZones      = errors.New("not enough complete zones to seed groups")
	ErrNoPlayoffZones      = errors.New("no zone has enough teams for a playoff bracket")
	ErrRulesFrozen         = errors.New("rules cannot be changed after groups are seeded")
	ErrSameZone            = errors.New("source and target zones are the same")
	ErrTeamNotInZone       = errors.New("team is not in the source zone")
	ErrTeamAlreadyInZone   = errors.New("team is already in the target zone")
	ErrNoTeamsToAssign     = errors.New("there are no teams to assign")
	ErrFixtureTeamsPending = errors.New("fixture teams are not determined yet")
	ErrFixtureCompleted    = errors.New("fixture is already completed")

	// Конфликты
	ErrTeamNameConflict = errors.New("team name is already in use")
	ErrStateConflict    = errors.New("tournament state changed, retry the operation")

	// Аутентификация
	ErrInvalidCredentials   = errors.New("invalid password")
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrLogoStorageDisabled = errors.New("logo storage is not configured")
)

var expectedErrors = []error{
	ErrNotFound, ErrTeamNotFound, ErrZoneNotFound, ErrFixtureNotFound,
	ErrValidationFailed, ErrTeamNameRequired, ErrInvalidScore, ErrInvalidStatus, ErrUnsupportedLogoType,
	ErrGroupsLocked, ErrGroupsAlreadySeeded, ErrNotEnoughZones, ErrNoPlayoffZones, ErrRulesFrozen,
	ErrSameZone, ErrTeamNotInZone, ErrTeamAlreadyInZone, ErrNoTeamsToAssign,
	ErrFixtureTeamsPending, ErrFixtureCompleted,
	ErrTeamNameConflict, ErrStateConflict,
	ErrInvalidCredentials, ErrAuthenticationFailed, ErrLogoStorageDisabled,
	models.ErrInvalidConfiguration,
}

// IsExpected сообщает, является ли ошибка ожидаемым отказом операции
// (валидация, предусловие, не найдено), который можно показать пользователю.
// Остальные ошибки - сбои хранилища.
func IsExpected(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range expectedErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
