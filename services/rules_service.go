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

type RulesService interface {
	GetRules(ctx context.Context) (*models.RulesConfig, error)
	UpdateRules(ctx context.Context, rules models.RulesConfig) (*models.RulesConfig, error)
}

type rulesService struct {
	db           *sql.DB
	settingsRepo repositories.SettingsRepository
	publisher    EventPublisher
	logger       *slog.Logger
}

func NewRulesService(db *sql.DB, settingsRepo repositories.SettingsRepository, publisher EventPublisher, logger *slog.Logger) RulesService {
	return &rulesService{
		db:           db,
		settingsRepo: settingsRepo,
		publisher:    publisher,
		logger:       loggerOrDefault(logger),
	}
}

func (s *rulesService) GetRules(ctx context.Context) (*models.RulesConfig, error) {
	settings, err := loadSettings(ctx, s.settingsRepo, nil)
	if err != nil {
		return nil, err
	}
	return &settings.Rules, nil
}

// UpdateRules заменяет правила целиком. После жеребьевки правила заморожены.
func (s *rulesService) UpdateRules(ctx context.Context, rules models.RulesConfig) (*models.RulesConfig, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	err := runInTx(ctx, s.db, s.logger, "update_rules", func(tx *sql.Tx) error {
		settings, err := loadSettings(ctx, s.settingsRepo, tx)
		if err != nil {
			return err
		}
		if settings.IsSeeded() {
			return ErrRulesFrozen
		}
		if err = s.settingsRepo.EnsureDefaults(ctx, tx, *models.DefaultRules()); err != nil {
			return fmt.Errorf("failed to initialize settings: %w", err)
		}
		if err = s.settingsRepo.UpdateRules(ctx, tx, rules); err != nil {
			return fmt.Errorf("failed to save rules: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rules.GroupsSeeded = false
	s.logger.InfoContext(ctx, "rules updated",
		slog.Int("points_for_win", rules.PointsForWin),
		slog.String("round_robin_type", string(rules.RoundRobinType)))
	publish(s.publisher, brackets.TournamentRoom, brackets.EventRulesUpdated, rules)
	return &rules, nil
}
