package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/zone-cup/brackets"
	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/repositories"
)

// ErrMatchesListFailed - общая ошибка для листинга матчей
var ErrMatchesListFailed = errors.New("failed to list matches")

// FixtureUpdate - результат изменения матча. Заполнено ровно одно из Fixture/PlayoffFixture.
type FixtureUpdate struct {
	Fixture        *models.Fixture          `json:"fixture,omitempty"`
	PlayoffFixture *models.PlayoffFixture   `json:"playoffFixture,omitempty"`
	ResolvedFinals []*models.PlayoffFixture `json:"resolvedFinals,omitempty"`
}

func (u *FixtureUpdate) zoneID() string {
	if u.Fixture != nil {
		return u.Fixture.ZoneID
	}
	return u.PlayoffFixture.ZoneID
}

type MatchService interface {
	ListFixtures(ctx context.Context, zoneID *string) ([]*models.Fixture, error)
	RecordResult(ctx context.Context, fixtureID string, score1, score2 int) (*FixtureUpdate, error)
	UpdateStatus(ctx context.Context, fixtureID string, status models.FixtureStatus) (*FixtureUpdate, error)
}

type matchService struct {
	db          *sql.DB
	fixtureRepo repositories.FixtureRepository
	publisher   EventPublisher
	logger      *slog.Logger
}

func NewMatchService(db *sql.DB, fixtureRepo repositories.FixtureRepository, publisher EventPublisher, logger *slog.Logger) MatchService {
	return &matchService{
		db:          db,
		fixtureRepo: fixtureRepo,
		publisher:   publisher,
		logger:      loggerOrDefault(logger),
	}
}

func (s *matchService) ListFixtures(ctx context.Context, zoneID *string) ([]*models.Fixture, error) {
	fixtures, err := s.fixtureRepo.ListGroupFixtures(ctx, nil, repositories.FixtureFilter{ZoneID: zoneID})
	if err != nil {
		return nil, fmt.Errorf("%w: group fixtures: %w", ErrMatchesListFailed, err)
	}
	return fixtures, nil
}

// RecordResult сохраняет счет и завершает матч. Для плей-офф после полуфиналов
// в финал подставляются победители пар.
func (s *matchService) RecordResult(ctx context.Context, fixtureID string, score1, score2 int) (*FixtureUpdate, error) {
	if score1 < 0 || score2 < 0 {
		return nil, ErrInvalidScore
	}

	update := &FixtureUpdate{}
	err := runInTx(ctx, s.db, s.logger, "record_result", func(tx *sql.Tx) error {
		isPlayoff, err := s.fixtureRepo.IsPlayoff(ctx, tx, fixtureID)
		if err != nil {
			return handleRepositoryError(err)
		}

		if !isPlayoff {
			if err = s.fixtureRepo.UpdateResult(ctx, tx, fixtureID, score1, score2); err != nil {
				return handleRepositoryError(err)
			}
			update.Fixture, err = s.fixtureRepo.GetGroupFixture(ctx, tx, fixtureID)
			return handleRepositoryError(err)
		}

		fixture, err := s.fixtureRepo.GetPlayoffFixture(ctx, tx, fixtureID)
		if err != nil {
			return handleRepositoryError(err)
		}
		if err = s.checkPlayoffEditable(ctx, tx, fixture); err != nil {
			return err
		}
		if err = s.fixtureRepo.UpdateResult(ctx, tx, fixtureID, score1, score2); err != nil {
			return handleRepositoryError(err)
		}
		if update.PlayoffFixture, err = s.fixtureRepo.GetPlayoffFixture(ctx, tx, fixtureID); err != nil {
			return handleRepositoryError(err)
		}
		update.ResolvedFinals, err = s.resolveFinal(ctx, tx, fixture.ZoneID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "fixture result recorded",
		slog.String("fixture_id", fixtureID),
		slog.Int("score1", score1),
		slog.Int("score2", score2))
	s.publishUpdate(update)
	return update, nil
}

// UpdateStatus переводит матч в pending_date, upcoming или live; счет при этом сбрасывается.
func (s *matchService) UpdateStatus(ctx context.Context, fixtureID string, status models.FixtureStatus) (*FixtureUpdate, error) {
	switch status {
	case models.FixturePendingDate, models.FixtureUpcoming, models.FixtureLive:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	update := &FixtureUpdate{}
	err := runInTx(ctx, s.db, s.logger, "update_fixture_status", func(tx *sql.Tx) error {
		isPlayoff, err := s.fixtureRepo.IsPlayoff(ctx, tx, fixtureID)
		if err != nil {
			return handleRepositoryError(err)
		}

		if !isPlayoff {
			if err = s.fixtureRepo.UpdateStatus(ctx, tx, fixtureID, status); err != nil {
				return handleRepositoryError(err)
			}
			update.Fixture, err = s.fixtureRepo.GetGroupFixture(ctx, tx, fixtureID)
			return handleRepositoryError(err)
		}

		fixture, err := s.fixtureRepo.GetPlayoffFixture(ctx, tx, fixtureID)
		if err != nil {
			return handleRepositoryError(err)
		}
		if err = s.checkPlayoffEditable(ctx, tx, fixture); err != nil {
			return err
		}
		if err = s.fixtureRepo.UpdateStatus(ctx, tx, fixtureID, status); err != nil {
			return handleRepositoryError(err)
		}
		update.PlayoffFixture, err = s.fixtureRepo.GetPlayoffFixture(ctx, tx, fixtureID)
		return handleRepositoryError(err)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "fixture status updated", slog.String("fixture_id", fixtureID), slog.String("status", string(status)))
	s.publishUpdate(update)
	return update, nil
}

// checkPlayoffEditable запрещает правку матча без команд и правку завершенного
// полуфинала, если финал зоны уже получил команды.
func (s *matchService) checkPlayoffEditable(ctx context.Context, tx *sql.Tx, fixture *models.PlayoffFixture) error {
	if fixture.Team1ID == nil || fixture.Team2ID == nil {
		return ErrFixtureTeamsPending
	}
	if fixture.Status != models.FixtureCompleted || brackets.BaseRound(fixture.Round) == models.RoundFinal {
		return nil
	}
	zoneFixtures, err := s.fixtureRepo.ListPlayoffFixtures(ctx, tx, &fixture.ZoneID)
	if err != nil {
		return fmt.Errorf("failed to list playoff fixtures: %w", err)
	}
	for _, f := range zoneFixtures {
		if brackets.BaseRound(f.Round) == models.RoundFinal && f.Status != models.FixturePendingTeams {
			return fmt.Errorf("%w: the zone final is already determined", ErrFixtureCompleted)
		}
	}
	return nil
}

func (s *matchService) resolveFinal(ctx context.Context, tx *sql.Tx, zoneID string) ([]*models.PlayoffFixture, error) {
	zoneFixtures, err := s.fixtureRepo.ListPlayoffFixtures(ctx, tx, &zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playoff fixtures: %w", err)
	}
	fixtures := make([]models.PlayoffFixture, len(zoneFixtures))
	for i, f := range zoneFixtures {
		fixtures[i] = *f
	}

	finals := brackets.ResolveFinal(fixtures)
	resolved := make([]*models.PlayoffFixture, 0, len(finals))
	for i := range finals {
		final := &finals[i]
		if err = s.fixtureRepo.UpdatePlayoffTeams(ctx, tx, final.ID, final.Team1ID, final.Team2ID, final.Status); err != nil {
			return nil, handleRepositoryError(err)
		}
		resolved = append(resolved, final)
	}
	if len(resolved) > 0 {
		s.logger.InfoContext(ctx, "zone final determined", slog.String("zone_id", zoneID), slog.Int("fixtures", len(resolved)))
	}
	return resolved, nil
}

func (s *matchService) publishUpdate(update *FixtureUpdate) {
	zoneID := update.zoneID()
	publish(s.publisher, brackets.ZoneRoom(zoneID), brackets.EventFixtureUpdated, update)
	publish(s.publisher, brackets.TournamentRoom, brackets.EventFixtureUpdated, update)
	if update.Fixture != nil {
		publish(s.publisher, brackets.ZoneRoom(zoneID), brackets.EventStandingsUpdated, map[string]string{"zoneId": zoneID})
	}
}
