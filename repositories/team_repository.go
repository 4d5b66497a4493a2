package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Dosada05/zone-cup/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Team, error)
	UpdateLogoKey(ctx context.Context, exec SQLExecutor, id string, logoKey *string) error
}

type sqlTeamRepository struct {
	sqlRepository
}

func NewSQLTeamRepository(db *sql.DB, driver string) TeamRepository {
	return &sqlTeamRepository{sqlRepository{db: db, driver: driver}}
}

func (r *sqlTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	query := `INSERT INTO teams (id, name, logo_key) VALUES (?, ?, ?)`
	_, err := r.getExecutor(exec).ExecContext(ctx, r.rebind(query), team.ID, team.Name, nullString(team.LogoKey))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTeamNameConflict
		}
		return err
	}
	return nil
}

func (r *sqlTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error) {
	query := `SELECT id, name, logo_key FROM teams WHERE id = ?`
	var (
		team    models.Team
		logoKey sql.NullString
	)
	err := r.getExecutor(exec).QueryRowContext(ctx, r.rebind(query), id).Scan(&team.ID, &team.Name, &logoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	team.LogoKey = stringPtr(logoKey)
	return &team, nil
}

func (r *sqlTeamRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Team, error) {
	query := `SELECT id, name, logo_key FROM teams ORDER BY name ASC, id ASC`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var (
			team    models.Team
			logoKey sql.NullString
		)
		if scanErr := rows.Scan(&team.ID, &team.Name, &logoKey); scanErr != nil {
			return nil, scanErr
		}
		team.LogoKey = stringPtr(logoKey)
		teams = append(teams, &team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *sqlTeamRepository) UpdateLogoKey(ctx context.Context, exec SQLExecutor, id string, logoKey *string) error {
	query := `UPDATE teams SET logo_key = ? WHERE id = ?`
	result, err := r.getExecutor(exec).ExecContext(ctx, r.rebind(query), nullString(logoKey), id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
