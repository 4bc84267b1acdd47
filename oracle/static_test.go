package oracle

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Braden-Griebel/fastsl/model"
)

func TestStaticOracle_Evaluate(t *testing.T) {
	ctx := context.Background()

	orc := NewStatic(10.0, []model.Item{"gA", "gB", "gC"},
		WithObjective([]model.Item{"gA"}, 0.05),
		WithInfeasible("gB"),
	)

	t.Run("BaselineFromEmptyCombination", func(t *testing.T) {
		ev, err := orc.Evaluate(ctx, nil, math.Inf(-1))
		require.NoError(t, err)
		assert.Equal(t, 10.0, ev.Objective)
		assert.False(t, ev.Lethal)
		assert.False(t, ev.Infeasible())
	})

	t.Run("ObjectiveBelowCutoffIsLethal", func(t *testing.T) {
		ev, err := orc.Evaluate(ctx, []model.Item{"gA"}, 0.1)
		require.NoError(t, err)
		assert.Equal(t, 0.05, ev.Objective)
		assert.True(t, ev.Lethal)
	})

	t.Run("ObjectiveAboveCutoffIsNotLethal", func(t *testing.T) {
		ev, err := orc.Evaluate(ctx, []model.Item{"gA"}, 0.01)
		require.NoError(t, err)
		assert.False(t, ev.Lethal)
	})

	t.Run("InfeasibleIsLethal", func(t *testing.T) {
		ev, err := orc.Evaluate(ctx, []model.Item{"gB"}, 0.1)
		require.NoError(t, err)
		assert.True(t, ev.Infeasible())
		assert.True(t, ev.Lethal)
	})

	t.Run("UnconfiguredCombinationKeepsBaseline", func(t *testing.T) {
		ev, err := orc.Evaluate(ctx, []model.Item{"gC"}, 0.1)
		require.NoError(t, err)
		assert.Equal(t, 10.0, ev.Objective)
		assert.False(t, ev.Lethal)
	})

	t.Run("CombinationOrderIrrelevant", func(t *testing.T) {
		orc := NewStatic(10.0, []model.Item{"x", "y"},
			WithObjective([]model.Item{"x", "y"}, 0),
		)
		ev, err := orc.Evaluate(ctx, []model.Item{"y", "x", "y"}, 0.1)
		require.NoError(t, err)
		assert.True(t, ev.Lethal)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := orc.Evaluate(canceled, nil, 0.1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStaticOracle_CandidateExpansions(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultExcludesRemovedItems", func(t *testing.T) {
		orc := NewStatic(10.0, []model.Item{"gA", "gB", "gC"})

		got, err := orc.CandidateExpansions(ctx, []model.Item{"gB"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []model.Item{"gA", "gC"}, got)
	})

	t.Run("SeedingIsIdempotent", func(t *testing.T) {
		orc := NewStatic(10.0, []model.Item{"gA", "gB"})

		first, err := orc.CandidateExpansions(ctx, nil)
		require.NoError(t, err)
		second, err := orc.CandidateExpansions(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("ActiveItemsOverride", func(t *testing.T) {
		orc := NewStatic(10.0, []model.Item{"gA", "gB", "gC"},
			WithActiveItems(func(combination []model.Item) []model.Item {
				if len(combination) == 0 {
					return []model.Item{"gA"}
				}
				return nil
			}),
		)

		seeds, err := orc.CandidateExpansions(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, []model.Item{"gA"}, seeds)

		next, err := orc.CandidateExpansions(ctx, []model.Item{"gA"})
		require.NoError(t, err)
		assert.Empty(t, next)
	})
}

func TestStaticOracle_IsSingleItemEssential(t *testing.T) {
	ctx := context.Background()

	orc := NewStatic(10.0, []model.Item{"gA", "gB", "gC"},
		WithObjective([]model.Item{"gB", "gC"}, 0),
	)

	essential, err := orc.IsSingleItemEssential(ctx, []model.Item{"gB"}, "gC", 0.1)
	require.NoError(t, err)
	assert.True(t, essential)

	essential, err = orc.IsSingleItemEssential(ctx, []model.Item{"gA"}, "gC", 0.1)
	require.NoError(t, err)
	assert.False(t, essential)
}
