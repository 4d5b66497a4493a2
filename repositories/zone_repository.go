package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/zone-cup/models"
)

var (
	ErrZoneNotFound         = errors.New("zone not found")
	ErrTeamAlreadyAssigned  = errors.New("team is already assigned to a zone")
	ErrTeamAssignmentAbsent = errors.New("team is not assigned to a zone")
)

type ZoneRepository interface {
	// EnsureZones создает недостающие зоны, существующие не трогает.
	EnsureZones(ctx context.Context, exec SQLExecutor, zones []models.Zone) error
	List(ctx context.Context, exec SQLExecutor) ([]*models.Zone, error)
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Zone, error)
	AssignTeam(ctx context.Context, exec SQLExecutor, zoneID, teamID string, position int) error
	MoveTeam(ctx context.Context, exec SQLExecutor, teamID, zoneID string, position int) error
	UnassignTeam(ctx context.Context, exec SQLExecutor, teamID string) error
	// RenumberZone переписывает позиции состава подряд с 0, сохраняя текущий порядок.
	RenumberZone(ctx context.Context, exec SQLExecutor, zoneID string) error
	ClearAssignments(ctx context.Context, exec SQLExecutor) error
}

type sqlZoneRepository struct {
	sqlRepository
}

func NewSQLZoneRepository(db *sql.DB, driver string) ZoneRepository {
	return &sqlZoneRepository{sqlRepository{db: db, driver: driver}}
}

func (r *sqlZoneRepository) EnsureZones(ctx context.Context, exec SQLExecutor, zones []models.Zone) error {
	executor := r.getExecutor(exec)
	query := r.rebind(`INSERT INTO zones (id, name, display_order) VALUES (?, ?, ?) ON CONFLICT (id) DO NOTHING`)
	for _, z := range zones {
		if _, err := executor.ExecContext(ctx, query, z.ID, z.Name, z.DisplayOrder); err != nil {
			return err
		}
	}
	return nil
}

// List возвращает зоны по порядку отображения, команды внутри зоны - по позиции.
func (r *sqlZoneRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Zone, error) {
	executor := r.getExecutor(exec)

	rows, err := executor.QueryContext(ctx, `SELECT id, name, display_order FROM zones ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	zones := make([]*models.Zone, 0)
	byID := make(map[string]*models.Zone)
	for rows.Next() {
		z := &models.Zone{TeamIDs: []string{}}
		if scanErr := rows.Scan(&z.ID, &z.Name, &z.DisplayOrder); scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		zones = append(zones, z)
		byID[z.ID] = z
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	assignments, err := executor.QueryContext(ctx, `SELECT zone_id, team_id FROM zone_teams ORDER BY zone_id ASC, position ASC, team_id ASC`)
	if err != nil {
		return nil, err
	}
	defer assignments.Close()
	for assignments.Next() {
		var zoneID, teamID string
		if scanErr := assignments.Scan(&zoneID, &teamID); scanErr != nil {
			return nil, scanErr
		}
		if z, ok := byID[zoneID]; ok {
			z.TeamIDs = append(z.TeamIDs, teamID)
		}
	}
	if err = assignments.Err(); err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *sqlZoneRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Zone, error) {
	executor := r.getExecutor(exec)

	z := &models.Zone{TeamIDs: []string{}}
	err := executor.QueryRowContext(ctx, r.rebind(`SELECT id, name, display_order FROM zones WHERE id = ?`), id).
		Scan(&z.ID, &z.Name, &z.DisplayOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}

	rows, err := executor.QueryContext(ctx, r.rebind(`SELECT team_id FROM zone_teams WHERE zone_id = ? ORDER BY position ASC, team_id ASC`), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var teamID string
		if scanErr := rows.Scan(&teamID); scanErr != nil {
			return nil, scanErr
		}
		z.TeamIDs = append(z.TeamIDs, teamID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return z, nil
}

func (r *sqlZoneRepository) AssignTeam(ctx context.Context, exec SQLExecutor, zoneID, teamID string, position int) error {
	query := `INSERT INTO zone_teams (team_id, zone_id, position) VALUES (?, ?, ?)`
	_, err := r.getExecutor(exec).ExecContext(ctx, r.rebind(query), teamID, zoneID, position)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTeamAlreadyAssigned
		}
		return err
	}
	return nil
}

func (r *sqlZoneRepository) MoveTeam(ctx context.Context, exec SQLExecutor, teamID, zoneID string, position int) error {
	query := `UPDATE zone_teams SET zone_id = ?, position = ? WHERE team_id = ?`
	result, err := r.getExecutor(exec).ExecContext(ctx, r.rebind(query), zoneID, position, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamAssignmentAbsent)
}

func (r *sqlZoneRepository) UnassignTeam(ctx context.Context, exec SQLExecutor, teamID string) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, r.rebind(`DELETE FROM zone_teams WHERE team_id = ?`), teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamAssignmentAbsent)
}

func (r *sqlZoneRepository) RenumberZone(ctx context.Context, exec SQLExecutor, zoneID string) error {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, r.rebind(`SELECT team_id FROM zone_teams WHERE zone_id = ? ORDER BY position, team_id`), zoneID)
	if err != nil {
		return err
	}
	var teamIDs []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		teamIDs = append(teamIDs, id)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return err
	}
	// курсор закрываем до UPDATE: у SQLite одно соединение
	if err = rows.Close(); err != nil {
		return err
	}

	query := r.rebind(`UPDATE zone_teams SET position = ? WHERE team_id = ? AND zone_id = ?`)
	for i, id := range teamIDs {
		if _, err = executor.ExecContext(ctx, query, i, id, zoneID); err != nil {
			return err
		}
	}
	return nil
}

func (r *sqlZoneRepository) ClearAssignments(ctx context.Context, exec SQLExecutor) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM zone_teams`)
	return err
}
