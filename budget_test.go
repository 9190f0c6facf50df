package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendBudget(t *testing.T) {
	t.Run("Testcase #1: wedding split", func(t *testing.T) {
		rec, err := RecommendBudget("wedding", 200, 100000)
		require.NoError(t, err)
		require.Len(t, rec.Recommendations, 7)

		first := rec.Recommendations[0]
		assert.Equal(t, "VENUE", first.Category)
		assert.Equal(t, 30.0, first.Percentage)
		assert.Equal(t, 30000.0, first.Amount)
		assert.NotEmpty(t, first.Description)

		total := 0.0
		for _, l := range rec.Recommendations {
			total += l.Percentage
		}
		assert.Equal(t, 100.0, total)
		assert.Equal(t, "AED", rec.Currency)
		assert.Equal(t, 100000.0, rec.TotalBudget)
	})

	t.Run("Testcase #2: labels replace the first underscore", func(t *testing.T) {
		rec, err := RecommendBudget("corporate", 50, 20000)
		require.NoError(t, err)
		assert.Equal(t, "AUDIO VISUAL", rec.Recommendations[2].Category)
	})

	t.Run("Testcase #3: unknown type falls back to default split", func(t *testing.T) {
		rec, err := RecommendBudget("seminar", 10, 10000)
		require.NoError(t, err)
		assert.Len(t, rec.Recommendations, len(defaultBudgetSplit))
	})

	t.Run("Testcase #4: tight budget tips come first and are capped", func(t *testing.T) {
		rec, err := RecommendBudget("wedding", 100, 5000)
		require.NoError(t, err)
		require.Len(t, rec.CostSavingTips, maxTips)
		assert.Equal(t, "Consider home venues or community halls for significant savings", rec.CostSavingTips[0])
		assert.Equal(t, "Consider weekday weddings for 20-30% venue discounts", rec.CostSavingTips[3])
	})

	t.Run("Testcase #5: generous budget without context gets general tips", func(t *testing.T) {
		rec, err := RecommendBudget("birthday", 10, 50000)
		require.NoError(t, err)
		assert.Equal(t, generalTips, rec.CostSavingTips)
	})

	t.Run("Testcase #6: invalid budget", func(t *testing.T) {
		_, err := RecommendBudget("wedding", 10, -1)
		assert.Equal(t, KindValidation, KindOf(err))
		_, err = RecommendBudget("wedding", 10, math.NaN())
		assert.Equal(t, KindValidation, KindOf(err))
	})
}
