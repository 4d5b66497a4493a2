package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Dosada05/zone-cup/models"
)

var ErrFixtureNotFound = errors.New("fixture not found")

// FixtureFilter ограничивает выборку групповых матчей. Пустые поля не фильтруют.
type FixtureFilter struct {
	ZoneID *string
	Status *models.FixtureStatus
}

type FixtureRepository interface {
	CreateGroupFixtures(ctx context.Context, exec SQLExecutor, fixtures []*models.Fixture) error
	ListGroupFixtures(ctx context.Context, exec SQLExecutor, filter FixtureFilter) ([]*models.Fixture, error)
	GetGroupFixture(ctx context.Context, exec SQLExecutor, id string) (*models.Fixture, error)
	// DeleteGroupFixtures удаляет только групповые матчи (zone_id задан, round_label пустой).
	DeleteGroupFixtures(ctx context.Context, exec SQLExecutor) (int64, error)
	CountGroupFixtures(ctx context.Context, exec SQLExecutor) (int, error)

	CreatePlayoffFixtures(ctx context.Context, exec SQLExecutor, fixtures []*models.PlayoffFixture) error
	ListPlayoffFixtures(ctx context.Context, exec SQLExecutor, zoneID *string) ([]*models.PlayoffFixture, error)
	GetPlayoffFixture(ctx context.Context, exec SQLExecutor, id string) (*models.PlayoffFixture, error)
	DeletePlayoffFixtures(ctx context.Context, exec SQLExecutor) (int64, error)
	UpdatePlayoffTeams(ctx context.Context, exec SQLExecutor, id string, team1ID, team2ID *string, status models.FixtureStatus) error

	// UpdateResult и UpdateStatus работают для обоих видов матчей.
	UpdateResult(ctx context.Context, exec SQLExecutor, id string, score1, score2 int) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.FixtureStatus) error
	// IsPlayoff сообщает, относится ли матч к плей-офф.
	IsPlayoff(ctx context.Context, exec SQLExecutor, id string) (bool, error)
}

type sqlFixtureRepository struct {
	sqlRepository
}

func NewSQLFixtureRepository(db *sql.DB, driver string) FixtureRepository {
	return &sqlFixtureRepository{sqlRepository{db: db, driver: driver}}
}

const groupFixtureColumns = `id, zone_id, team1_id, team2_id, matchday, order_in_round, status, score1, score2`

const playoffFixtureColumns = `id, zone_id, round_label, match_label, team1_id, team2_id, order_in_round, status, is_second_leg, score1, score2`

func (r *sqlFixtureRepository) CreateGroupFixtures(ctx context.Context, exec SQLExecutor, fixtures []*models.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}
	query := `INSERT INTO fixtures (id, zone_id, team1_id, team2_id, matchday, order_in_round, status) VALUES (?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.getExecutor(exec).PrepareContext(ctx, r.rebind(query))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range fixtures {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if _, err = stmt.ExecContext(ctx, f.ID, f.ZoneID, f.Team1ID, f.Team2ID, f.Matchday, f.OrderInRound, string(f.Status)); err != nil {
			return err
		}
	}
	return nil
}

func (r *sqlFixtureRepository) ListGroupFixtures(ctx context.Context, exec SQLExecutor, filter FixtureFilter) ([]*models.Fixture, error) {
	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString(`SELECT ` + groupFixtureColumns + ` FROM fixtures WHERE zone_id IS NOT NULL AND round_label IS NULL`)
	if filter.ZoneID != nil {
		sb.WriteString(` AND zone_id = ?`)
		args = append(args, *filter.ZoneID)
	}
	if filter.Status != nil {
		sb.WriteString(` AND status = ?`)
		args = append(args, string(*filter.Status))
	}
	sb.WriteString(` ORDER BY zone_id ASC, matchday ASC, order_in_round ASC`)

	rows, err := r.getExecutor(exec).QueryContext(ctx, r.rebind(sb.String()), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fixtures := make([]*models.Fixture, 0)
	for rows.Next() {
		f, scanErr := scanGroupFixture(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		fixtures = append(fixtures, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (r *sqlFixtureRepository) GetGroupFixture(ctx context.Context, exec SQLExecutor, id string) (*models.Fixture, error) {
	query := `SELECT ` + groupFixtureColumns + ` FROM fixtures WHERE id = ? AND round_label IS NULL`
	f, err := scanGroupFixture(r.getExecutor(exec).QueryRowContext(ctx, r.rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFixtureNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *sqlFixtureRepository) DeleteGroupFixtures(ctx context.Context, exec SQLExecutor) (int64, error) {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM fixtures WHERE zone_id IS NOT NULL AND round_label IS NULL`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *sqlFixtureRepository) CountGroupFixtures(ctx context.Context, exec SQLExecutor) (int, error) {
	var count int
	err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT COUNT(*) FROM fixtures WHERE zone_id IS NOT NULL AND round_label IS NULL`).Scan(&count)
	return count, err
}

func (r *sqlFixtureRepository) CreatePlayoffFixtures(ctx context.Context, exec SQLExecutor, fixtures []*models.PlayoffFixture) error {
	if len(fixtures) == 0 {
		return nil
	}
	query := `INSERT INTO fixtures (id, zone_id, round_label, match_label, team1_id, team2_id, order_in_round, status, is_second_leg)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.getExecutor(exec).PrepareContext(ctx, r.rebind(query))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range fixtures {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		_, err = stmt.ExecContext(ctx, f.ID, f.ZoneID, f.Round, f.MatchLabel,
			nullString(f.Team1ID), nullString(f.Team2ID), f.OrderInRound, string(f.Status), f.IsSecondLeg)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *sqlFixtureRepository) ListPlayoffFixtures(ctx context.Context, exec SQLExecutor, zoneID *string) ([]*models.PlayoffFixture, error) {
	query := `SELECT ` + playoffFixtureColumns + ` FROM fixtures WHERE round_label IS NOT NULL`
	var args []interface{}
	if zoneID != nil {
		query += ` AND zone_id = ?`
		args = append(args, *zoneID)
	}
	query += ` ORDER BY zone_id ASC, order_in_round ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fixtures := make([]*models.PlayoffFixture, 0)
	for rows.Next() {
		f, scanErr := scanPlayoffFixture(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		fixtures = append(fixtures, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (r *sqlFixtureRepository) GetPlayoffFixture(ctx context.Context, exec SQLExecutor, id string) (*models.PlayoffFixture, error) {
	query := `SELECT ` + playoffFixtureColumns + ` FROM fixtures WHERE id = ? AND round_label IS NOT NULL`
	f, err := scanPlayoffFixture(r.getExecutor(exec).QueryRowContext(ctx, r.rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFixtureNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *sqlFixtureRepository) DeletePlayoffFixtures(ctx context.Context, exec SQLExecutor) (int64, error) {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM fixtures WHERE round_label IS NOT NULL`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *sqlFixtureRepository) UpdatePlayoffTeams(ctx context.Context, exec SQLExecutor, id string, team1ID, team2ID *string, status models.FixtureStatus) error {
	query := `UPDATE fixtures SET team1_id = ?, team2_id = ?, status = ? WHERE id = ? AND round_label IS NOT NULL`
	result, err := r.getExecutor(exec).ExecContext(ctx, r.rebind(query), nullString(team1ID), nullString(team2ID), string(status), id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFixtureNotFound)
}

func (r *sqlFixtureRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id string, score1, score2 int) error {
	query := `UPDATE fixtures SET score1 = ?, score2 = ?, status = ? WHERE id = ?`
	result, err := r.getExecutor(exec).ExecContext(ctx, r.rebind(query), score1, score2, string(models.FixtureCompleted), id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFixtureNotFound)
}

func (r *sqlFixtureRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.FixtureStatus) error {
	query := `UPDATE fixtures SET status = ?, score1 = NULL, score2 = NULL WHERE id = ?`
	result, err := r.getExecutor(exec).ExecContext(ctx, r.rebind(query), string(status), id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFixtureNotFound)
}

func (r *sqlFixtureRepository) IsPlayoff(ctx context.Context, exec SQLExecutor, id string) (bool, error) {
	var roundLabel sql.NullString
	err := r.getExecutor(exec).QueryRowContext(ctx, r.rebind(`SELECT round_label FROM fixtures WHERE id = ?`), id).Scan(&roundLabel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrFixtureNotFound
		}
		return false, err
	}
	return roundLabel.Valid, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGroupFixture(row rowScanner) (*models.Fixture, error) {
	var (
		f              models.Fixture
		status         string
		score1, score2 sql.NullInt64
	)
	if err := row.Scan(&f.ID, &f.ZoneID, &f.Team1ID, &f.Team2ID, &f.Matchday, &f.OrderInRound, &status, &score1, &score2); err != nil {
		return nil, err
	}
	f.Status = models.FixtureStatus(status)
	f.Score1 = intPtr(score1)
	f.Score2 = intPtr(score2)
	return &f, nil
}

func scanPlayoffFixture(row rowScanner) (*models.PlayoffFixture, error) {
	var (
		f                models.PlayoffFixture
		matchLabel       sql.NullString
		team1ID, team2ID sql.NullString
		status           string
		score1, score2   sql.NullInt64
	)
	err := row.Scan(&f.ID, &f.ZoneID, &f.Round, &matchLabel, &team1ID, &team2ID, &f.OrderInRound, &status, &f.IsSecondLeg, &score1, &score2)
	if err != nil {
		return nil, err
	}
	f.MatchLabel = matchLabel.String
	f.Team1ID = stringPtr(team1ID)
	f.Team2ID = stringPtr(team2ID)
	f.Status = models.FixtureStatus(status)
	f.Score1 = intPtr(score1)
	f.Score2 = intPtr(score2)
	return &f, nil
}
