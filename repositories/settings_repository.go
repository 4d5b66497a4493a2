package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/zone-cup/models"
)

var (
	ErrSettingsNotFound     = errors.New("tournament settings not found")
	ErrSeedingStateConflict = errors.New("seeding state changed concurrently")
)

// settingsRowID - настройки турнира хранятся одной строкой.
const settingsRowID = 1

type SettingsRepository interface {
	EnsureDefaults(ctx context.Context, exec SQLExecutor, rules models.RulesConfig) error
	Get(ctx context.Context, exec SQLExecutor) (*models.TournamentSettings, error)
	UpdateRules(ctx context.Context, exec SQLExecutor, rules models.RulesConfig) error
	// TransitionState меняет состояние только если текущее равно from.
	TransitionState(ctx context.Context, exec SQLExecutor, from, to models.SeedingState) error
}

type sqlSettingsRepository struct {
	sqlRepository
}

func NewSQLSettingsRepository(db *sql.DB, driver string) SettingsRepository {
	return &sqlSettingsRepository{sqlRepository{db: db, driver: driver}}
}

func (r *sqlSettingsRepository) EnsureDefaults(ctx context.Context, exec SQLExecutor, rules models.RulesConfig) error {
	rulesJSON, err := marshalRules(rules)
	if err != nil {
		return err
	}
	query := `INSERT INTO tournament_settings (id, rules_json, seeding_state) VALUES (?, ?, ?) ON CONFLICT (id) DO NOTHING`
	_, err = r.getExecutor(exec).ExecContext(ctx, r.rebind(query), settingsRowID, rulesJSON, string(models.SeedingUnseeded))
	return err
}

func (r *sqlSettingsRepository) Get(ctx context.Context, exec SQLExecutor) (*models.TournamentSettings, error) {
	var rulesJSON, state string
	query := `SELECT rules_json, seeding_state FROM tournament_settings WHERE id = ?`
	err := r.getExecutor(exec).QueryRowContext(ctx, r.rebind(query), settingsRowID).Scan(&rulesJSON, &state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	settings := &models.TournamentSettings{State: models.SeedingState(state)}
	if err = json.Unmarshal([]byte(rulesJSON), &settings.Rules); err != nil {
		return nil, fmt.Errorf("failed to decode stored rules: %w", err)
	}
	settings.Rules.GroupsSeeded = settings.IsSeeded()
	return settings, nil
}

func (r *sqlSettingsRepository) UpdateRules(ctx context.Context, exec SQLExecutor, rules models.RulesConfig) error {
	rulesJSON, err := marshalRules(rules)
	if err != nil {
		return err
	}
	query := `UPDATE tournament_settings SET rules_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	result, err := r.getExecutor(exec).ExecContext(ctx, r.rebind(query), rulesJSON, settingsRowID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSettingsNotFound)
}

func (r *sqlSettingsRepository) TransitionState(ctx context.Context, exec SQLExecutor, from, to models.SeedingState) error {
	query := `UPDATE tournament_settings SET seeding_state = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND seeding_state = ?`
	result, err := r.getExecutor(exec).ExecContext(ctx, r.rebind(query), string(to), settingsRowID, string(from))
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeedingStateConflict)
}

// marshalRules не сохраняет флаг посева: он выводится из seeding_state.
func marshalRules(rules models.RulesConfig) (string, error) {
	rules.GroupsSeeded = false
	data, err := json.Marshal(rules)
	if err != nil {
		return "", fmt.Errorf("failed to encode rules: %w", err)
	}
	return string(data), nil
}
