package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/zone-cup/brackets"
	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/repositories"
)

func TestSeedGroupsSeedsCompleteZonesOnly(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()
	ids := env.addTeams(t, "T", 11)
	env.fillZone(t, "zone-a", ids[0:4])
	env.fillZone(t, "zone-b", ids[4:8])
	env.fillZone(t, "zone-c", ids[8:11])

	result, err := env.seeding.SeedGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"zone-a", "zone-b"}, result.SeededZones)
	assert.Equal(t, []string{"zone-c"}, result.SkippedZones)
	assert.Equal(t, 12, result.FixturesCreated)
	assert.Equal(t, 12, env.groupFixtureCount(t))
	assert.Equal(t, models.SeedingSeeded, env.state(t))

	zoneID := "zone-a"
	fixtures, err := env.fixtures.ListGroupFixtures(ctx, nil, repositories.FixtureFilter{ZoneID: &zoneID})
	require.NoError(t, err)
	require.Len(t, fixtures, 6)
	assert.Equal(t, ids[0], fixtures[0].Team1ID)
	assert.Equal(t, ids[3], fixtures[0].Team2ID)
	assert.Equal(t, 1, fixtures[0].Matchday)
	for _, f := range fixtures {
		assert.Equal(t, models.FixturePendingDate, f.Status)
		assert.Nil(t, f.Score1)
	}
	assert.Contains(t, env.publisher.types(), brackets.EventGroupsSeeded)
}

func TestSeedGroupsTwiceFails(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()
	env.addTeams(t, "T", 8)
	_, err := env.assignment.AutoAssign(ctx)
	require.NoError(t, err)

	_, err = env.seeding.SeedGroups(ctx)
	require.NoError(t, err)
	count := env.groupFixtureCount(t)

	_, err = env.seeding.SeedGroups(ctx)
	assert.ErrorIs(t, err, ErrGroupsAlreadySeeded)
	assert.True(t, IsExpected(err))
	assert.Equal(t, count, env.groupFixtureCount(t))
}

func TestSeedGroupsNeedsMinimumZones(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()
	ids := env.addTeams(t, "T", 6)
	env.fillZone(t, "zone-a", ids[0:4])
	env.fillZone(t, "zone-b", ids[4:6])

	_, err := env.seeding.SeedGroups(ctx)
	assert.ErrorIs(t, err, ErrNotEnoughZones)
	assert.Contains(t, err.Error(), "1 complete zones, 2 required")
	assert.Zero(t, env.groupFixtureCount(t))
	assert.Equal(t, models.SeedingUnseeded, env.state(t))

	empty := newTestEnv(t, 2)
	_, err = empty.seeding.SeedGroups(ctx)
	assert.ErrorIs(t, err, ErrNotEnoughZones)
}

func TestSeedGroupsTwoWay(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()
	env.addTeams(t, "T", 8)
	_, err := env.assignment.AutoAssign(ctx)
	require.NoError(t, err)

	rules := *models.DefaultRules()
	rules.RoundRobinType = models.RoundRobinTwoWay
	_, err = env.rules.UpdateRules(ctx, rules)
	require.NoError(t, err)

	result, err := env.seeding.SeedGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, 24, result.FixturesCreated)
}

func TestSeedGroupsRespectsConfiguredMinimum(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()
	ids := env.addTeams(t, "T", 4)
	env.fillZone(t, "zone-a", ids)

	single := NewSeedingService(env.db, env.zoneRepo, env.fixtures, env.settings, 1, nil, nil)
	result, err := single.SeedGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"zone-a"}, result.SeededZones)
	assert.Equal(t, 6, result.FixturesCreated)
}
