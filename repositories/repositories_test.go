package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/zone-cup/db"
	"github.com/Dosada05/zone-cup/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Connect(db.DriverSQLite, ":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn))
	return conn
}

func createTeams(t *testing.T, repo TeamRepository, names ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(names))
	for _, name := range names {
		team := &models.Team{Name: name}
		require.NoError(t, repo.Create(context.Background(), nil, team))
		ids = append(ids, team.ID)
	}
	return ids
}

func TestTeamRepository(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSQLTeamRepository(conn, db.DriverSQLite)
	ctx := context.Background()

	ids := createTeams(t, repo, "Tigres", "Aguilas")

	err := repo.Create(ctx, nil, &models.Team{Name: "Tigres"})
	assert.ErrorIs(t, err, ErrTeamNameConflict)

	teams, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Aguilas", teams[0].Name)

	key := "teams/" + ids[0] + "/logo.png"
	require.NoError(t, repo.UpdateLogoKey(ctx, nil, ids[0], &key))
	team, err := repo.GetByID(ctx, nil, ids[0])
	require.NoError(t, err)
	require.NotNil(t, team.LogoKey)
	assert.Equal(t, key, *team.LogoKey)

	_, err = repo.GetByID(ctx, nil, "missing")
	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.ErrorIs(t, repo.UpdateLogoKey(ctx, nil, "missing", nil), ErrTeamNotFound)
}

func TestZoneRepository(t *testing.T) {
	conn := newTestDB(t)
	teams := NewSQLTeamRepository(conn, db.DriverSQLite)
	repo := NewSQLZoneRepository(conn, db.DriverSQLite)
	ctx := context.Background()

	zones := []models.Zone{
		{ID: "zone-b", Name: "Zona B", DisplayOrder: 2},
		{ID: "zone-a", Name: "Zona A", DisplayOrder: 1},
	}
	require.NoError(t, repo.EnsureZones(ctx, nil, zones))
	require.NoError(t, repo.EnsureZones(ctx, nil, zones))

	ids := createTeams(t, teams, "A", "B", "C")
	require.NoError(t, repo.AssignTeam(ctx, nil, "zone-a", ids[1], 1))
	require.NoError(t, repo.AssignTeam(ctx, nil, "zone-a", ids[0], 0))
	assert.ErrorIs(t, repo.AssignTeam(ctx, nil, "zone-b", ids[0], 0), ErrTeamAlreadyAssigned)

	list, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "zone-a", list[0].ID)
	assert.Equal(t, []string{ids[0], ids[1]}, list[0].TeamIDs)
	assert.Empty(t, list[1].TeamIDs)

	require.NoError(t, repo.MoveTeam(ctx, nil, ids[1], "zone-b", 0))
	zone, err := repo.GetByID(ctx, nil, "zone-b")
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1]}, zone.TeamIDs)

	assert.ErrorIs(t, repo.MoveTeam(ctx, nil, ids[2], "zone-b", 1), ErrTeamAssignmentAbsent)
	require.NoError(t, repo.UnassignTeam(ctx, nil, ids[1]))
	assert.ErrorIs(t, repo.UnassignTeam(ctx, nil, ids[1]), ErrTeamAssignmentAbsent)

	require.NoError(t, repo.ClearAssignments(ctx, nil))
	zone, err = repo.GetByID(ctx, nil, "zone-a")
	require.NoError(t, err)
	assert.Empty(t, zone.TeamIDs)

	_, err = repo.GetByID(ctx, nil, "zone-z")
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestZoneRepositoryRenumberZone(t *testing.T) {
	conn := newTestDB(t)
	teams := NewSQLTeamRepository(conn, db.DriverSQLite)
	repo := NewSQLZoneRepository(conn, db.DriverSQLite)
	ctx := context.Background()
	require.NoError(t, repo.EnsureZones(ctx, nil, []models.Zone{{ID: "zone-a", Name: "Zona A", DisplayOrder: 1}}))

	ids := createTeams(t, teams, "A", "B", "C")
	require.NoError(t, repo.AssignTeam(ctx, nil, "zone-a", ids[2], 7))
	require.NoError(t, repo.AssignTeam(ctx, nil, "zone-a", ids[0], 2))
	require.NoError(t, repo.AssignTeam(ctx, nil, "zone-a", ids[1], 5))

	require.NoError(t, repo.RenumberZone(ctx, nil, "zone-a"))

	rows, err := conn.QueryContext(ctx, `SELECT team_id, position FROM zone_teams WHERE zone_id = 'zone-a' ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()
	got := map[string]int{}
	for rows.Next() {
		var id string
		var pos int
		require.NoError(t, rows.Scan(&id, &pos))
		got[id] = pos
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]int{ids[0]: 0, ids[1]: 1, ids[2]: 2}, got)

	require.NoError(t, repo.RenumberZone(ctx, nil, "zone-empty"))
}

func TestFixtureRepositoryKeepsGroupAndPlayoffApart(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSQLFixtureRepository(conn, db.DriverSQLite)
	zones := NewSQLZoneRepository(conn, db.DriverSQLite)
	ctx := context.Background()
	require.NoError(t, zones.EnsureZones(ctx, nil, []models.Zone{{ID: "zone-a", Name: "Zona A", DisplayOrder: 1}}))

	group := []*models.Fixture{
		{ZoneID: "zone-a", Team1ID: "t1", Team2ID: "t4", Matchday: 1, OrderInRound: 0, Status: models.FixturePendingDate},
		{ZoneID: "zone-a", Team1ID: "t2", Team2ID: "t3", Matchday: 1, OrderInRound: 1, Status: models.FixturePendingDate},
	}
	require.NoError(t, repo.CreateGroupFixtures(ctx, nil, group))
	assert.NotEmpty(t, group[0].ID)

	team1 := "t1"
	playoff := []*models.PlayoffFixture{
		{ZoneID: "zone-a", Round: models.RoundSemifinal1, MatchLabel: "1st vs 4th", Team1ID: &team1, Team2ID: &team1, Status: models.FixturePendingDate, OrderInRound: 1},
		{ZoneID: "zone-a", Round: models.RoundFinal, MatchLabel: "Winner SF1 vs Winner SF2", Status: models.FixturePendingTeams, OrderInRound: 3},
	}
	require.NoError(t, repo.CreatePlayoffFixtures(ctx, nil, playoff))

	require.NoError(t, repo.UpdateResult(ctx, nil, group[0].ID, 2, 1))
	completed := models.FixtureCompleted
	done, err := repo.ListGroupFixtures(ctx, nil, FixtureFilter{Status: &completed})
	require.NoError(t, err)
	require.Len(t, done, 1)
	require.NotNil(t, done[0].Score1)
	assert.Equal(t, 2, *done[0].Score1)

	isPlayoff, err := repo.IsPlayoff(ctx, nil, playoff[1].ID)
	require.NoError(t, err)
	assert.True(t, isPlayoff)

	_, err = repo.GetGroupFixture(ctx, nil, playoff[0].ID)
	assert.ErrorIs(t, err, ErrFixtureNotFound)

	final, err := repo.GetPlayoffFixture(ctx, nil, playoff[1].ID)
	require.NoError(t, err)
	assert.Nil(t, final.Team1ID)
	assert.Equal(t, models.FixturePendingTeams, final.Status)

	deleted, err := repo.DeleteGroupFixtures(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	remaining, err := repo.ListPlayoffFixtures(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, models.RoundSemifinal1, remaining[0].Round)

	deleted, err = repo.DeletePlayoffFixtures(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
}

func TestSettingsRepositoryStateTransition(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSQLSettingsRepository(conn, db.DriverSQLite)
	ctx := context.Background()

	_, err := repo.Get(ctx, nil)
	assert.ErrorIs(t, err, ErrSettingsNotFound)

	require.NoError(t, repo.EnsureDefaults(ctx, nil, *models.DefaultRules()))
	rules := *models.DefaultRules()
	rules.PointsForWin = 2
	require.NoError(t, repo.UpdateRules(ctx, nil, rules))
	require.NoError(t, repo.EnsureDefaults(ctx, nil, *models.DefaultRules()))

	settings, err := repo.Get(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, settings.Rules.PointsForWin)
	assert.False(t, settings.Rules.GroupsSeeded)

	require.NoError(t, repo.TransitionState(ctx, nil, models.SeedingUnseeded, models.SeedingSeeded))
	assert.ErrorIs(t, repo.TransitionState(ctx, nil, models.SeedingUnseeded, models.SeedingSeeded), ErrSeedingStateConflict)

	settings, err = repo.Get(ctx, nil)
	require.NoError(t, err)
	assert.True(t, settings.IsSeeded())
	assert.True(t, settings.Rules.GroupsSeeded)
}
