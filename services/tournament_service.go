package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/repositories"
	"github.com/Dosada05/zone-cup/storage"
)

// ZoneOverview - зона вместе с командами и таблицей.
type ZoneOverview struct {
	Zone      *models.Zone           `json:"zone"`
	Teams     []*models.Team         `json:"teams"`
	Standings []models.StandingEntry `json:"standings"`
}

type Overview struct {
	Rules           models.RulesConfig       `json:"rules"`
	State           models.SeedingState      `json:"state"`
	Zones           []ZoneOverview           `json:"zones"`
	UnassignedTeams []*models.Team           `json:"unassignedTeams"`
	Fixtures        []*models.Fixture        `json:"fixtures"`
	Playoffs        []*models.PlayoffFixture `json:"playoffs"`
}

type TournamentService interface {
	GetOverview(ctx context.Context) (*Overview, error)
}

type tournamentService struct {
	zoneRepo     repositories.ZoneRepository
	teamRepo     repositories.TeamRepository
	fixtureRepo  repositories.FixtureRepository
	settingsRepo repositories.SettingsRepository
	uploader     storage.FileUploader
	logger       *slog.Logger
}

func NewTournamentService(
	zoneRepo repositories.ZoneRepository,
	teamRepo repositories.TeamRepository,
	fixtureRepo repositories.FixtureRepository,
	settingsRepo repositories.SettingsRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		zoneRepo:     zoneRepo,
		teamRepo:     teamRepo,
		fixtureRepo:  fixtureRepo,
		settingsRepo: settingsRepo,
		uploader:     uploader,
		logger:       loggerOrDefault(logger),
	}
}

// GetOverview собирает состояние турнира; независимые чтения идут параллельно.
func (s *tournamentService) GetOverview(ctx context.Context) (*Overview, error) {
	var (
		settings *models.TournamentSettings
		zones    []*models.Zone
		teams    map[string]*models.Team
		fixtures []*models.Fixture
		playoffs []*models.PlayoffFixture
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		settings, err = loadSettings(gctx, s.settingsRepo, nil)
		return err
	})
	g.Go(func() (err error) {
		zones, err = s.zoneRepo.List(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		teams, err = loadTeamIndex(gctx, s.teamRepo, nil)
		return err
	})
	g.Go(func() (err error) {
		fixtures, err = s.fixtureRepo.ListGroupFixtures(gctx, nil, repositories.FixtureFilter{})
		return err
	})
	g.Go(func() (err error) {
		playoffs, err = s.fixtureRepo.ListPlayoffFixtures(gctx, nil, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "failed to load tournament overview", slog.Any("error", err))
		return nil, err
	}

	for _, t := range teams {
		populateTeamLogoURL(t, s.uploader)
	}
	markLocked(zones, settings)

	overview := &Overview{
		Rules:           settings.Rules,
		State:           settings.State,
		Zones:           make([]ZoneOverview, 0, len(zones)),
		UnassignedTeams: make([]*models.Team, 0),
		Fixtures:        fixtures,
		Playoffs:        playoffs,
	}

	tables := allZoneStandings(zones, teams, fixtures, &settings.Rules)
	assigned := make(map[string]bool, len(teams))
	for i, zone := range zones {
		zoneTeams := make([]*models.Team, 0, len(zone.TeamIDs))
		for _, id := range zone.TeamIDs {
			assigned[id] = true
			if t, ok := teams[id]; ok {
				zoneTeams = append(zoneTeams, t)
			}
		}
		overview.Zones = append(overview.Zones, ZoneOverview{Zone: zone, Teams: zoneTeams, Standings: tables[i].Standings})
	}
	for _, t := range teams {
		if !assigned[t.ID] {
			overview.UnassignedTeams = append(overview.UnassignedTeams, t)
		}
	}
	sortTeamsByName(overview.UnassignedTeams)
	return overview, nil
}
