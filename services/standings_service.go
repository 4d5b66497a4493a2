package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/zone-cup/brackets"
	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/repositories"
)

// ZoneStandings - таблица одной зоны.
type ZoneStandings struct {
	ZoneID    string                 `json:"zoneId"`
	ZoneName  string                 `json:"zoneName"`
	Standings []models.StandingEntry `json:"standings"`
}

type StandingsService interface {
	GetZoneStandings(ctx context.Context, zoneID string) (*ZoneStandings, error)
	GetAllStandings(ctx context.Context) ([]ZoneStandings, error)
}

type standingsService struct {
	zoneRepo     repositories.ZoneRepository
	teamRepo     repositories.TeamRepository
	fixtureRepo  repositories.FixtureRepository
	settingsRepo repositories.SettingsRepository
}

func NewStandingsService(
	zoneRepo repositories.ZoneRepository,
	teamRepo repositories.TeamRepository,
	fixtureRepo repositories.FixtureRepository,
	settingsRepo repositories.SettingsRepository,
) StandingsService {
	return &standingsService{
		zoneRepo:     zoneRepo,
		teamRepo:     teamRepo,
		fixtureRepo:  fixtureRepo,
		settingsRepo: settingsRepo,
	}
}

func (s *standingsService) GetZoneStandings(ctx context.Context, zoneID string) (*ZoneStandings, error) {
	zone, err := s.zoneRepo.GetByID(ctx, nil, zoneID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	settings, err := loadSettings(ctx, s.settingsRepo, nil)
	if err != nil {
		return nil, err
	}
	teams, err := loadTeamIndex(ctx, s.teamRepo, nil)
	if err != nil {
		return nil, err
	}
	completed := models.FixtureCompleted
	fixtures, err := s.fixtureRepo.ListGroupFixtures(ctx, nil, repositories.FixtureFilter{ZoneID: &zone.ID, Status: &completed})
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures for zone %s: %w", zone.ID, err)
	}

	standings := zoneStandings(zone, teams, fixtures, &settings.Rules)
	return &standings, nil
}

func (s *standingsService) GetAllStandings(ctx context.Context) ([]ZoneStandings, error) {
	zones, err := s.zoneRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	settings, err := loadSettings(ctx, s.settingsRepo, nil)
	if err != nil {
		return nil, err
	}
	teams, err := loadTeamIndex(ctx, s.teamRepo, nil)
	if err != nil {
		return nil, err
	}
	completed := models.FixtureCompleted
	fixtures, err := s.fixtureRepo.ListGroupFixtures(ctx, nil, repositories.FixtureFilter{Status: &completed})
	if err != nil {
		return nil, fmt.Errorf("failed to list completed fixtures: %w", err)
	}

	return allZoneStandings(zones, teams, fixtures, &settings.Rules), nil
}

func allZoneStandings(zones []*models.Zone, teams map[string]*models.Team, fixtures []*models.Fixture, rules *models.RulesConfig) []ZoneStandings {
	byZone := make(map[string][]*models.Fixture, len(zones))
	for _, f := range fixtures {
		byZone[f.ZoneID] = append(byZone[f.ZoneID], f)
	}
	result := make([]ZoneStandings, 0, len(zones))
	for _, zone := range zones {
		result = append(result, zoneStandings(zone, teams, byZone[zone.ID], rules))
	}
	return result
}

func zoneStandings(zone *models.Zone, teams map[string]*models.Team, fixtures []*models.Fixture, rules *models.RulesConfig) ZoneStandings {
	return ZoneStandings{
		ZoneID:    zone.ID,
		ZoneName:  zone.Name,
		Standings: brackets.CalculateStandings(teamRefs(zone.TeamIDs, teams), completedResults(fixtures), rules),
	}
}
