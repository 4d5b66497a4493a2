package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/zone-cup/brackets"
	"github.com/Dosada05/zone-cup/models"
)

func TestRulesDefaultsAndUpdate(t *testing.T) {
	env := newTestEnv(t, 2)
	ctx := context.Background()

	rules, err := env.rules.GetRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, *models.DefaultRules(), *rules)

	changed := *models.DefaultRules()
	changed.PointsForWin = 2
	changed.Tiebreakers = []models.TiebreakerRule{
		{ID: models.TiebreakerDirectResult, Priority: 1, Enabled: true},
		{ID: models.TiebreakerGoalDifference, Priority: 2, Enabled: true},
	}
	_, err = env.rules.UpdateRules(ctx, changed)
	require.NoError(t, err)

	rules, err = env.rules.GetRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rules.PointsForWin)
	assert.Equal(t, []models.TiebreakerCriterion{models.TiebreakerDirectResult, models.TiebreakerGoalDifference}, rules.EnabledTiebreakers())
	assert.Contains(t, env.publisher.types(), brackets.EventRulesUpdated)
}

func TestRulesValidationFailure(t *testing.T) {
	env := newTestEnv(t, 2)
	invalid := *models.DefaultRules()
	invalid.PointsForDraw = -1
	invalid.RoundRobinType = "three-way"

	_, err := env.rules.UpdateRules(context.Background(), invalid)
	var validationErr *models.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "pointsForDraw")
	assert.Contains(t, validationErr.Fields, "roundRobinType")
	assert.True(t, IsExpected(err))
}

func TestRulesFrozenAfterSeeding(t *testing.T) {
	env := seededPair(t)
	ctx := context.Background()

	rules, err := env.rules.GetRules(ctx)
	require.NoError(t, err)
	assert.True(t, rules.GroupsSeeded)

	_, err = env.rules.UpdateRules(ctx, *models.DefaultRules())
	assert.ErrorIs(t, err, ErrRulesFrozen)

	require.NoError(t, env.assignment.Reset(ctx))
	_, err = env.rules.UpdateRules(ctx, *models.DefaultRules())
	assert.NoError(t, err)
}
