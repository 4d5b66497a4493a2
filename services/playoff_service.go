package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Dosada05/zone-cup/brackets"
	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/repositories"
)

type BracketResult struct {
	Zones        []string                 `json:"zones"`
	SkippedZones []string                 `json:"skippedZones"`
	Fixtures     []*models.PlayoffFixture `json:"fixtures"`
}

type PlayoffService interface {
	GenerateBracket(ctx context.Context) (*BracketResult, error)
	ListBracket(ctx context.Context, zoneID *string) ([]*models.PlayoffFixture, error)
}

type playoffService struct {
	db           *sql.DB
	zoneRepo     repositories.ZoneRepository
	teamRepo     repositories.TeamRepository
	fixtureRepo  repositories.FixtureRepository
	settingsRepo repositories.SettingsRepository
	publisher    EventPublisher
	logger       *slog.Logger
}

func NewPlayoffService(
	db *sql.DB,
	zoneRepo repositories.ZoneRepository,
	teamRepo repositories.TeamRepository,
	fixtureRepo repositories.FixtureRepository,
	settingsRepo repositories.SettingsRepository,
	publisher EventPublisher,
	logger *slog.Logger,
) PlayoffService {
	return &playoffService{
		db:           db,
		zoneRepo:     zoneRepo,
		teamRepo:     teamRepo,
		fixtureRepo:  fixtureRepo,
		settingsRepo: settingsRepo,
		publisher:    publisher,
		logger:       loggerOrDefault(logger),
	}
}

// GenerateBracket пересоздает сетку плей-офф по текущим таблицам зон.
// Зоны, где меньше четырех команд, пропускаются. Если не подошла ни одна зона,
// старая сетка остается нетронутой.
func (s *playoffService) GenerateBracket(ctx context.Context) (*BracketResult, error) {
	result := &BracketResult{Zones: []string{}, SkippedZones: []string{}}

	err := runInTx(ctx, s.db, s.logger, "generate_bracket", func(tx *sql.Tx) error {
		settings, err := loadSettings(ctx, s.settingsRepo, tx)
		if err != nil {
			return err
		}
		zones, err := s.zoneRepo.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to list zones: %w", err)
		}
		teams, err := loadTeamIndex(ctx, s.teamRepo, tx)
		if err != nil {
			return err
		}
		completed := models.FixtureCompleted
		fixtures, err := s.fixtureRepo.ListGroupFixtures(ctx, tx, repositories.FixtureFilter{Status: &completed})
		if err != nil {
			return fmt.Errorf("failed to list completed fixtures: %w", err)
		}
		byZone := make(map[string][]*models.Fixture, len(zones))
		for _, f := range fixtures {
			byZone[f.ZoneID] = append(byZone[f.ZoneID], f)
		}

		bracket := make([]*models.PlayoffFixture, 0)
		for _, zone := range zones {
			if len(zone.TeamIDs) < brackets.PlayoffQualifiers {
				result.SkippedZones = append(result.SkippedZones, zone.ID)
				continue
			}
			table := zoneStandings(zone, teams, byZone[zone.ID], &settings.Rules)
			zoneFixtures, buildErr := brackets.BuildPlayoffFixtures(zone.ID, table.Standings, settings.Rules.RoundRobinType)
			if buildErr != nil {
				return fmt.Errorf("zone %s: %w", zone.ID, buildErr)
			}
			for i := range zoneFixtures {
				bracket = append(bracket, &zoneFixtures[i])
			}
			result.Zones = append(result.Zones, zone.ID)
		}

		if len(result.Zones) == 0 {
			return fmt.Errorf("%w: %d zones checked", ErrNoPlayoffZones, len(zones))
		}

		if _, err = s.fixtureRepo.DeletePlayoffFixtures(ctx, tx); err != nil {
			return fmt.Errorf("failed to delete previous playoff fixtures: %w", err)
		}
		if err = s.fixtureRepo.CreatePlayoffFixtures(ctx, tx, bracket); err != nil {
			return fmt.Errorf("failed to save playoff fixtures: %w", err)
		}
		result.Fixtures = bracket
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, zoneID := range result.SkippedZones {
		s.logger.WarnContext(ctx, "zone skipped during bracket generation: fewer than 4 teams", slog.String("zone_id", zoneID))
	}
	s.logger.InfoContext(ctx, "playoff bracket generated",
		slog.Int("zones", len(result.Zones)),
		slog.Int("fixtures", len(result.Fixtures)))
	publish(s.publisher, brackets.TournamentRoom, brackets.EventBracketGenerated, result)
	return result, nil
}

func (s *playoffService) ListBracket(ctx context.Context, zoneID *string) ([]*models.PlayoffFixture, error) {
	fixtures, err := s.fixtureRepo.ListPlayoffFixtures(ctx, nil, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playoff fixtures: %w", err)
	}
	return fixtures, nil
}
