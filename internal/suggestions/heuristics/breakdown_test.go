package heuristics_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/heuristics"
)

func seededEngine(seed int64) *heuristics.Engine {
	return heuristics.NewEngine(
		heuristics.DefaultRules(),
		heuristics.WithRand(rand.New(rand.NewSource(seed))),
	)
}

func TestBreakDown(t *testing.T) {
	t.Run("low complexity with no keywords draws three generic subtasks", func(t *testing.T) {
		res := seededEngine(1).BreakDown(domain.BreakdownInput{
			Title:      "Organize team offsite",
			Complexity: domain.ComplexityLow,
		})

		require.Len(t, res.Subtasks, 3)
		for _, st := range res.Subtasks {
			assert.GreaterOrEqual(t, st.EstimatedHours, 1)
			assert.LessOrEqual(t, st.EstimatedHours, 4)
			assert.Contains(t, []domain.Priority{
				domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh,
			}, st.Priority)
		}
		assert.Equal(t, domain.ComplexityLow, res.Complexity)
		assert.Equal(t, 0.7, res.Confidence)
		assert.Len(t, res.Recommendations, 4)
	})

	t.Run("generic titles are never repeated", func(t *testing.T) {
		res := seededEngine(7).BreakDown(domain.BreakdownInput{
			Title:      "Organize team offsite",
			Complexity: domain.ComplexityHigh,
		})

		seen := map[string]bool{}
		for _, st := range res.Subtasks {
			assert.False(t, seen[st.Title], "duplicate subtask %q", st.Title)
			seen[st.Title] = true
		}
	})

	t.Run("api keyword injects the backend pack", func(t *testing.T) {
		res := seededEngine(2).BreakDown(domain.BreakdownInput{
			Title:      "Build export API",
			Complexity: domain.ComplexityLow,
		})

		require.Len(t, res.Subtasks, 3)
		assert.Equal(t, "Design API endpoints", res.Subtasks[0].Title)
		assert.Equal(t, "Implement backend logic", res.Subtasks[1].Title)
		assert.Equal(t, "Add error handling", res.Subtasks[2].Title)
		assert.Equal(t, 8, res.TotalEstimatedHours)
	})

	t.Run("all packs fire independently and truncate to target", func(t *testing.T) {
		res := seededEngine(3).BreakDown(domain.BreakdownInput{
			Title:       "Full stack feature",
			Description: "new API backend, UI frontend and database changes",
			Complexity:  domain.ComplexityMedium,
		})

		// Nine injected subtasks truncate down to the medium target.
		require.Len(t, res.Subtasks, 5)
		assert.Equal(t, "Design API endpoints", res.Subtasks[0].Title)
		assert.Equal(t, "Create UI mockups", res.Subtasks[3].Title)
	})

	t.Run("pool exhaustion stops early", func(t *testing.T) {
		res := seededEngine(4).BreakDown(domain.BreakdownInput{
			Title:      "Organize team offsite",
			Complexity: domain.ComplexityVeryHigh,
		})

		// Seven generic items cannot fill a target of nine.
		assert.Len(t, res.Subtasks, 7)
	})

	t.Run("unknown complexity defaults to five", func(t *testing.T) {
		res := seededEngine(5).BreakDown(domain.BreakdownInput{
			Title:      "Organize team offsite",
			Complexity: domain.Complexity("colossal"),
		})

		assert.Len(t, res.Subtasks, 5)
		assert.Equal(t, domain.Complexity("colossal"), res.Complexity)
	})

	t.Run("total hours is the sum of subtask estimates", func(t *testing.T) {
		res := seededEngine(6).BreakDown(domain.BreakdownInput{
			Title:      "Organize team offsite",
			Complexity: domain.ComplexityMedium,
		})

		sum := 0
		for _, st := range res.Subtasks {
			sum += st.EstimatedHours
		}
		assert.Equal(t, sum, res.TotalEstimatedHours)
	})

	t.Run("pinned seed reproduces the same breakdown", func(t *testing.T) {
		a := seededEngine(42).BreakDown(domain.BreakdownInput{Title: "Organize team offsite"})
		b := seededEngine(42).BreakDown(domain.BreakdownInput{Title: "Organize team offsite"})

		assert.Equal(t, a, b)
	})
}
