package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/zone-cup/brackets"
	"github.com/Dosada05/zone-cup/models"
)

func seededPair(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t, 2)
	env.addTeams(t, "T", 8)
	_, err := env.assignment.AutoAssign(context.Background())
	require.NoError(t, err)
	_, err = env.seeding.SeedGroups(context.Background())
	require.NoError(t, err)
	return env
}

func TestRecordGroupResult(t *testing.T) {
	env := seededPair(t)
	ctx := context.Background()

	zoneID := "zone-b"
	fixtures, err := env.matches.ListFixtures(ctx, &zoneID)
	require.NoError(t, err)
	require.Len(t, fixtures, 6)

	update, err := env.matches.RecordResult(ctx, fixtures[0].ID, 3, 2)
	require.NoError(t, err)
	require.NotNil(t, update.Fixture)
	assert.Nil(t, update.PlayoffFixture)
	assert.Equal(t, models.FixtureCompleted, update.Fixture.Status)
	assert.Equal(t, 3, *update.Fixture.Score1)
	assert.Equal(t, 2, *update.Fixture.Score2)

	events := env.publisher.types()
	assert.Contains(t, events, brackets.EventFixtureUpdated)
	assert.Contains(t, events, brackets.EventStandingsUpdated)

	// Исправление результата разрешено.
	update, err = env.matches.RecordResult(ctx, fixtures[0].ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, *update.Fixture.Score1)
}

func TestRecordResultRejections(t *testing.T) {
	env := seededPair(t)
	ctx := context.Background()
	all, err := env.matches.ListFixtures(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 12)

	_, err = env.matches.RecordResult(ctx, all[0].ID, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidScore)
	_, err = env.matches.RecordResult(ctx, "missing", 1, 0)
	assert.ErrorIs(t, err, ErrFixtureNotFound)
}

func TestUpdateFixtureStatus(t *testing.T) {
	env := seededPair(t)
	ctx := context.Background()
	all, err := env.matches.ListFixtures(ctx, nil)
	require.NoError(t, err)
	id := all[0].ID

	_, err = env.matches.RecordResult(ctx, id, 1, 0)
	require.NoError(t, err)

	update, err := env.matches.UpdateStatus(ctx, id, models.FixtureLive)
	require.NoError(t, err)
	assert.Equal(t, models.FixtureLive, update.Fixture.Status)
	assert.Nil(t, update.Fixture.Score1)

	_, err = env.matches.UpdateStatus(ctx, id, models.FixtureCompleted)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = env.matches.UpdateStatus(ctx, id, "postponed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = env.matches.UpdateStatus(ctx, "missing", models.FixtureUpcoming)
	assert.ErrorIs(t, err, ErrFixtureNotFound)
}

func TestUpdateStatusOfPendingFinal(t *testing.T) {
	env := seededPair(t)
	ctx := context.Background()
	_, err := env.playoffs.GenerateBracket(ctx)
	require.NoError(t, err)

	zoneID := "zone-a"
	stored, err := env.playoffs.ListBracket(ctx, &zoneID)
	require.NoError(t, err)
	byRound := playoffByRound(stored, zoneID)

	_, err = env.matches.UpdateStatus(ctx, byRound[models.RoundFinal].ID, models.FixtureUpcoming)
	assert.ErrorIs(t, err, ErrFixtureTeamsPending)

	update, err := env.matches.UpdateStatus(ctx, byRound[models.RoundSemifinal2].ID, models.FixtureUpcoming)
	require.NoError(t, err)
	require.NotNil(t, update.PlayoffFixture)
	assert.Equal(t, models.FixtureUpcoming, update.PlayoffFixture.Status)
}
