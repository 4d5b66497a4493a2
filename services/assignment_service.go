package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/zone-cup/brackets"
	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/repositories"
)

// MaxZones - зоны именуются буквами латинского алфавита.
const MaxZones = 26

// MoveTeamInput описывает ручной перенос команды между зонами.
// Пустой FromZoneID означает команду без зоны, SwapTeamID - желаемого партнера по обмену.
type MoveTeamInput struct {
	TeamID     string  `json:"teamId"`
	FromZoneID string  `json:"fromZoneId"`
	ToZoneID   string  `json:"toZoneId"`
	SwapTeamID *string `json:"swapTeamId,omitempty"`
}

type MoveTeamResult struct {
	Zones       []*models.Zone `json:"zones"`
	SwappedWith *string        `json:"swappedWith,omitempty"`
}

type AutoAssignResult struct {
	Zones      []*models.Zone `json:"zones"`
	Unassigned []string       `json:"unassigned"`
}

type AssignmentService interface {
	EnsureZones(ctx context.Context, count int) error
	ListZones(ctx context.Context) ([]*models.Zone, error)
	AutoAssign(ctx context.Context) (*AutoAssignResult, error)
	MoveTeam(ctx context.Context, input MoveTeamInput) (*MoveTeamResult, error)
	Reset(ctx context.Context) error
}

type assignmentService struct {
	db           *sql.DB
	zoneRepo     repositories.ZoneRepository
	teamRepo     repositories.TeamRepository
	fixtureRepo  repositories.FixtureRepository
	settingsRepo repositories.SettingsRepository
	publisher    EventPublisher
	logger       *slog.Logger

	rngMu sync.Mutex
	rng   brackets.Shuffler
}

func NewAssignmentService(
	db *sql.DB,
	zoneRepo repositories.ZoneRepository,
	teamRepo repositories.TeamRepository,
	fixtureRepo repositories.FixtureRepository,
	settingsRepo repositories.SettingsRepository,
	rng brackets.Shuffler,
	publisher EventPublisher,
	logger *slog.Logger,
) AssignmentService {
	return &assignmentService{
		db:           db,
		zoneRepo:     zoneRepo,
		teamRepo:     teamRepo,
		fixtureRepo:  fixtureRepo,
		settingsRepo: settingsRepo,
		rng:          rng,
		publisher:    publisher,
		logger:       loggerOrDefault(logger),
	}
}

// ZoneID и ZoneName строят идентификатор и название зоны по номеру (0 -> "zone-a", "Zona A").
func ZoneID(index int) string {
	return fmt.Sprintf("zone-%c", 'a'+index)
}

func ZoneName(index int) string {
	return fmt.Sprintf("Zona %c", 'A'+index)
}

func (s *assignmentService) EnsureZones(ctx context.Context, count int) error {
	if count < 1 || count > MaxZones {
		return fmt.Errorf("%w: zone count must be between 1 and %d, got %d", ErrValidationFailed, MaxZones, count)
	}
	zones := make([]models.Zone, count)
	for i := range zones {
		zones[i] = models.Zone{ID: ZoneID(i), Name: ZoneName(i), DisplayOrder: i + 1}
	}
	if err := s.zoneRepo.EnsureZones(ctx, nil, zones); err != nil {
		return fmt.Errorf("failed to ensure zones: %w", err)
	}
	if err := s.settingsRepo.EnsureDefaults(ctx, nil, *models.DefaultRules()); err != nil {
		return fmt.Errorf("failed to ensure tournament settings: %w", err)
	}
	return nil
}

func (s *assignmentService) ListZones(ctx context.Context) ([]*models.Zone, error) {
	settings, err := loadSettings(ctx, s.settingsRepo, nil)
	if err != nil {
		return nil, err
	}
	zones, err := s.zoneRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	markLocked(zones, settings)
	return zones, nil
}

// AutoAssign перемешивает все команды и раскладывает их по зонам заново.
func (s *assignmentService) AutoAssign(ctx context.Context) (*AutoAssignResult, error) {
	result := &AutoAssignResult{}

	err := runInTx(ctx, s.db, s.logger, "auto_assign", func(tx *sql.Tx) error {
		if err := s.ensureUnlocked(ctx, tx); err != nil {
			return err
		}
		teams, err := s.teamRepo.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}
		if len(teams) == 0 {
			return ErrNoTeamsToAssign
		}
		zones, err := s.zoneRepo.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to list zones: %w", err)
		}

		teamIDs := make([]string, len(teams))
		for i, t := range teams {
			teamIDs[i] = t.ID
		}
		zoneIDs := make([]string, len(zones))
		for i, z := range zones {
			zoneIDs[i] = z.ID
		}

		assignment, leftover := brackets.DistributeTeams(s.shuffle(teamIDs), zoneIDs)

		if err = s.zoneRepo.ClearAssignments(ctx, tx); err != nil {
			return fmt.Errorf("failed to clear zone assignments: %w", err)
		}
		for _, z := range zones {
			z.TeamIDs = assignment[z.ID]
			for pos, teamID := range z.TeamIDs {
				if err = s.zoneRepo.AssignTeam(ctx, tx, z.ID, teamID, pos); err != nil {
					return handleRepositoryError(err)
				}
			}
		}
		result.Zones = zones
		result.Unassigned = leftover
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Unassigned) > 0 {
		s.logger.WarnContext(ctx, "teams left without a zone", slog.Int("count", len(result.Unassigned)))
	}
	s.logger.InfoContext(ctx, "teams auto-assigned", slog.Int("zones", len(result.Zones)))
	publish(s.publisher, brackets.TournamentRoom, brackets.EventZonesUpdated, result.Zones)
	return result, nil
}

func (s *assignmentService) shuffle(teamIDs []string) []string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return brackets.ShuffleTeams(teamIDs, s.rng)
}

// MoveTeam переносит команду. В заполненной целевой зоне команда меняется местами
// с запрошенной командой или с первой командой состава. Обе зоны меняются в одной транзакции.
func (s *assignmentService) MoveTeam(ctx context.Context, input MoveTeamInput) (*MoveTeamResult, error) {
	if input.TeamID == "" || input.ToZoneID == "" {
		return nil, fmt.Errorf("%w: teamId and toZoneId are required", ErrValidationFailed)
	}
	if input.FromZoneID == input.ToZoneID {
		return nil, ErrSameZone
	}

	result := &MoveTeamResult{}
	err := runInTx(ctx, s.db, s.logger, "move_team", func(tx *sql.Tx) error {
		if err := s.ensureUnlocked(ctx, tx); err != nil {
			return err
		}
		if _, err := s.teamRepo.GetByID(ctx, tx, input.TeamID); err != nil {
			return handleRepositoryError(err)
		}

		zones, err := s.zoneRepo.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to list zones: %w", err)
		}
		byID := make(map[string]*models.Zone, len(zones))
		var current *models.Zone
		for _, z := range zones {
			byID[z.ID] = z
			if z.Contains(input.TeamID) {
				current = z
			}
		}

		target, ok := byID[input.ToZoneID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrZoneNotFound, input.ToZoneID)
		}
		var source *models.Zone
		if input.FromZoneID != "" {
			if source, ok = byID[input.FromZoneID]; !ok {
				return fmt.Errorf("%w: %s", ErrZoneNotFound, input.FromZoneID)
			}
		}
		if target.Contains(input.TeamID) {
			return ErrTeamAlreadyInZone
		}
		if current != source {
			return ErrTeamNotInZone
		}
		// позиции совпадают с индексами в TeamIDs только в плотном составе
		if err = s.zoneRepo.RenumberZone(ctx, tx, target.ID); err != nil {
			return fmt.Errorf("failed to renumber zone %s: %w", target.ID, err)
		}
		if source != nil {
			if err = s.zoneRepo.RenumberZone(ctx, tx, source.ID); err != nil {
				return fmt.Errorf("failed to renumber zone %s: %w", source.ID, err)
			}
		}

		if !target.IsFull() {
			if err = s.placeTeam(ctx, tx, input.TeamID, source, target, len(target.TeamIDs)); err != nil {
				return err
			}
		} else {
			swapID := target.TeamIDs[0]
			if input.SwapTeamID != nil && target.Contains(*input.SwapTeamID) {
				swapID = *input.SwapTeamID
			}
			if err = s.swapTeams(ctx, tx, input.TeamID, swapID, source, target); err != nil {
				return err
			}
			result.SwappedWith = &swapID
		}

		if result.Zones, err = s.zoneRepo.List(ctx, tx); err != nil {
			return fmt.Errorf("failed to list zones: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	attrs := []any{slog.String("team_id", input.TeamID), slog.String("to_zone_id", input.ToZoneID)}
	if result.SwappedWith != nil {
		attrs = append(attrs, slog.String("swapped_with", *result.SwappedWith))
	}
	s.logger.InfoContext(ctx, "team moved", attrs...)
	publish(s.publisher, brackets.TournamentRoom, brackets.EventZonesUpdated, result.Zones)
	return result, nil
}

func (s *assignmentService) placeTeam(ctx context.Context, tx *sql.Tx, teamID string, source, target *models.Zone, position int) error {
	if source == nil {
		return handleRepositoryError(s.zoneRepo.AssignTeam(ctx, tx, target.ID, teamID, position))
	}
	if err := s.zoneRepo.MoveTeam(ctx, tx, teamID, target.ID, position); err != nil {
		return handleRepositoryError(err)
	}
	if err := s.zoneRepo.RenumberZone(ctx, tx, source.ID); err != nil {
		return fmt.Errorf("failed to renumber zone %s: %w", source.ID, err)
	}
	return nil
}

func (s *assignmentService) swapTeams(ctx context.Context, tx *sql.Tx, teamID, swapID string, source, target *models.Zone) error {
	targetPos := indexOf(target.TeamIDs, swapID)
	if source == nil {
		if err := s.zoneRepo.UnassignTeam(ctx, tx, swapID); err != nil {
			return handleRepositoryError(err)
		}
		return handleRepositoryError(s.zoneRepo.AssignTeam(ctx, tx, target.ID, teamID, targetPos))
	}
	sourcePos := indexOf(source.TeamIDs, teamID)
	if err := s.zoneRepo.MoveTeam(ctx, tx, swapID, source.ID, sourcePos); err != nil {
		return handleRepositoryError(err)
	}
	return handleRepositoryError(s.zoneRepo.MoveTeam(ctx, tx, teamID, target.ID, targetPos))
}

// Reset очищает все зоны и групповые матчи и снимает флаг жеребьевки.
// Разрешен и после жеребьевки.
func (s *assignmentService) Reset(ctx context.Context) error {
	var deleted int64
	err := runInTx(ctx, s.db, s.logger, "reset_groups", func(tx *sql.Tx) error {
		settings, err := loadSettings(ctx, s.settingsRepo, tx)
		if err != nil {
			return err
		}
		if err = s.zoneRepo.ClearAssignments(ctx, tx); err != nil {
			return fmt.Errorf("failed to clear zone assignments: %w", err)
		}
		if deleted, err = s.fixtureRepo.DeleteGroupFixtures(ctx, tx); err != nil {
			return fmt.Errorf("failed to delete group fixtures: %w", err)
		}
		if settings.IsSeeded() {
			if err = s.settingsRepo.TransitionState(ctx, tx, models.SeedingSeeded, models.SeedingUnseeded); err != nil {
				return handleRepositoryError(err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "groups reset", slog.Int64("deleted_fixtures", deleted))
	publish(s.publisher, brackets.TournamentRoom, brackets.EventGroupsReset, nil)
	return nil
}

func (s *assignmentService) ensureUnlocked(ctx context.Context, exec repositories.SQLExecutor) error {
	settings, err := loadSettings(ctx, s.settingsRepo, exec)
	if err != nil {
		return err
	}
	if settings.IsSeeded() {
		return ErrGroupsLocked
	}
	return nil
}

func markLocked(zones []*models.Zone, settings *models.TournamentSettings) {
	for _, z := range zones {
		z.Locked = settings.IsSeeded()
	}
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
