package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/zone-cup/models"
	"github.com/Dosada05/zone-cup/repositories"
)

func TestZoneStandingsFromCompletedFixtures(t *testing.T) {
	env := seededPair(t)
	ctx := context.Background()
	zone := env.zone(t, "zone-a")

	zoneID := zone.ID
	fixtures, err := env.fixtures.ListGroupFixtures(ctx, nil, repositories.FixtureFilter{ZoneID: &zoneID})
	require.NoError(t, err)

	// Первый матч 1-го тура: первая команда зоны против четвертой.
	first := fixtures[0]
	require.Equal(t, zone.TeamIDs[0], first.Team1ID)
	require.Equal(t, zone.TeamIDs[3], first.Team2ID)
	_, err = env.matches.RecordResult(ctx, first.ID, 0, 2)
	require.NoError(t, err)
	// Незавершенный матч в таблицу не попадает.
	_, err = env.matches.UpdateStatus(ctx, fixtures[1].ID, models.FixtureLive)
	require.NoError(t, err)

	table, err := env.standings.GetZoneStandings(ctx, zone.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zona A", table.ZoneName)
	require.Len(t, table.Standings, 4)

	leader := table.Standings[0]
	assert.Equal(t, zone.TeamIDs[3], leader.TeamID)
	assert.Equal(t, 3, leader.Points)
	assert.Equal(t, 1, leader.Played)
	assert.Equal(t, 2, leader.GoalDifference)

	last := table.Standings[3]
	assert.Equal(t, zone.TeamIDs[0], last.TeamID)
	assert.Equal(t, 4, last.Position)
	assert.Equal(t, 1, last.Lost)

	for _, entry := range table.Standings[1:3] {
		assert.Zero(t, entry.Played)
	}

	_, err = env.standings.GetZoneStandings(ctx, "zone-z")
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestAllStandings(t *testing.T) {
	env := seededPair(t)
	tables, err := env.standings.GetAllStandings(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "zone-a", tables[0].ZoneID)
	for _, table := range tables {
		require.Len(t, table.Standings, 4)
		for i, entry := range table.Standings {
			assert.Equal(t, i+1, entry.Position)
			assert.Zero(t, entry.Points)
		}
	}
}
