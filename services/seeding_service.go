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

// DefaultMinSeededZones - сколько полных зон нужно для жеребьевки, если не задано иное.
const DefaultMinSeededZones = 2

type SeedResult struct {
	SeededZones     []string `json:"seededZones"`
	SkippedZones    []string `json:"skippedZones"`
	FixturesCreated int      `json:"fixturesCreated"`
}

type SeedingService interface {
	SeedGroups(ctx context.Context) (*SeedResult, error)
}

type seedingService struct {
	db             *sql.DB
	zoneRepo       repositories.ZoneRepository
	fixtureRepo    repositories.FixtureRepository
	settingsRepo   repositories.SettingsRepository
	minSeededZones int
	publisher      EventPublisher
	logger         *slog.Logger
}

func NewSeedingService(
	db *sql.DB,
	zoneRepo repositories.ZoneRepository,
	fixtureRepo repositories.FixtureRepository,
	settingsRepo repositories.SettingsRepository,
	minSeededZones int,
	publisher EventPublisher,
	logger *slog.Logger,
) SeedingService {
	if minSeededZones < 1 {
		minSeededZones = DefaultMinSeededZones
	}
	return &seedingService{
		db:             db,
		zoneRepo:       zoneRepo,
		fixtureRepo:    fixtureRepo,
		settingsRepo:   settingsRepo,
		minSeededZones: minSeededZones,
		publisher:      publisher,
		logger:         loggerOrDefault(logger),
	}
}

// SeedGroups генерирует круговые матчи для каждой полной зоны и фиксирует жеребьевку.
// Матчи и смена состояния записываются одной транзакцией; при нехватке зон ничего не пишется.
func (s *seedingService) SeedGroups(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{SeededZones: []string{}, SkippedZones: []string{}}

	err := runInTx(ctx, s.db, s.logger, "seed_groups", func(tx *sql.Tx) error {
		settings, err := loadSettings(ctx, s.settingsRepo, tx)
		if err != nil {
			return err
		}
		if !settings.State.CanTransitionTo(models.SeedingSeeded) {
			return ErrGroupsAlreadySeeded
		}

		zones, err := s.zoneRepo.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to list zones: %w", err)
		}

		fixtures := make([]*models.Fixture, 0)
		for _, zone := range zones {
			if !zone.IsComplete() {
				result.SkippedZones = append(result.SkippedZones, zone.ID)
				continue
			}
			pairings, genErr := brackets.GenerateRoundRobin(zone.TeamIDs, settings.Rules.RoundRobinType)
			if genErr != nil {
				return fmt.Errorf("zone %s: %w", zone.ID, genErr)
			}
			fixtures = append(fixtures, zoneFixtures(zone.ID, pairings)...)
			result.SeededZones = append(result.SeededZones, zone.ID)
		}

		if len(result.SeededZones) < s.minSeededZones {
			return fmt.Errorf("%w: %d complete zones, %d required", ErrNotEnoughZones, len(result.SeededZones), s.minSeededZones)
		}

		if _, err = s.fixtureRepo.DeleteGroupFixtures(ctx, tx); err != nil {
			return fmt.Errorf("failed to delete previous group fixtures: %w", err)
		}
		if err = s.fixtureRepo.CreateGroupFixtures(ctx, tx, fixtures); err != nil {
			return fmt.Errorf("failed to save group fixtures: %w", err)
		}
		if err = s.settingsRepo.TransitionState(ctx, tx, settings.State, models.SeedingSeeded); err != nil {
			return handleRepositoryError(err)
		}
		result.FixturesCreated = len(fixtures)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, zoneID := range result.SkippedZones {
		s.logger.WarnContext(ctx, "zone skipped during seeding: zone is not complete", slog.String("zone_id", zoneID))
	}
	s.logger.InfoContext(ctx, "groups seeded",
		slog.Int("zones", len(result.SeededZones)),
		slog.Int("fixtures", result.FixturesCreated))
	publish(s.publisher, brackets.TournamentRoom, brackets.EventGroupsSeeded, result)
	return result, nil
}

// zoneFixtures превращает пары в матчи зоны со статусом pending_date.
func zoneFixtures(zoneID string, pairings []brackets.Pairing) []*models.Fixture {
	fixtures := make([]*models.Fixture, 0, len(pairings))
	orderInDay := make(map[int]int)
	for _, p := range pairings {
		fixtures = append(fixtures, &models.Fixture{
			ZoneID:       zoneID,
			Team1ID:      p.Team1ID,
			Team2ID:      p.Team2ID,
			Matchday:     p.Matchday,
			Status:       models.FixturePendingDate,
			OrderInRound: orderInDay[p.Matchday],
		})
		orderInDay[p.Matchday]++
	}
	return fixtures
}
