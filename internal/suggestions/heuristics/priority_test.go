package heuristics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/heuristics"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestScorePriority(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	engine := heuristics.NewEngine(heuristics.DefaultRules(), heuristics.WithClock(fixedClock(now)))

	t.Run("urgent keyword alone scores 80", func(t *testing.T) {
		res := engine.ScorePriority(domain.PriorityInput{
			Title: "Fix broken login",
		})

		assert.Equal(t, 80, res.Score)
		assert.Equal(t, domain.PriorityUrgent, res.Priority)
		assert.Equal(t, 0.7, res.Confidence)
		require.NotEmpty(t, res.Reasons)
	})

	t.Run("due within a day alone scores 80", func(t *testing.T) {
		due := now.Add(12 * time.Hour)
		res := engine.ScorePriority(domain.PriorityInput{
			Title:   "Prepare quarterly report",
			DueDate: &due,
		})

		assert.Equal(t, 80, res.Score)
		assert.Equal(t, domain.PriorityUrgent, res.Priority)
	})

	t.Run("urgent keyword plus near due date stacks to 110", func(t *testing.T) {
		due := now.Add(12 * time.Hour)
		res := engine.ScorePriority(domain.PriorityInput{
			Title:       "Critical production issue",
			Description: "Server is down",
			DueDate:     &due,
		})

		// The score is intentionally unclamped.
		assert.Equal(t, 110, res.Score)
		assert.Equal(t, domain.PriorityUrgent, res.Priority)
	})

	t.Run("only the first keyword tier applies", func(t *testing.T) {
		// "urgent" and "client" both appear; only the urgent tier fires.
		res := engine.ScorePriority(domain.PriorityInput{
			Title: "Urgent fix for client demo",
		})

		assert.Equal(t, 80, res.Score)
	})

	t.Run("low priority keywords drop the score", func(t *testing.T) {
		res := engine.ScorePriority(domain.PriorityInput{
			Title: "Cosmetic cleanup of settings page",
		})

		assert.Equal(t, 30, res.Score)
		assert.Equal(t, domain.PriorityLow, res.Priority)
	})

	t.Run("no signals stays medium", func(t *testing.T) {
		res := engine.ScorePriority(domain.PriorityInput{
			Title: "Refine onboarding copy",
		})

		assert.Equal(t, 50, res.Score)
		assert.Equal(t, domain.PriorityMedium, res.Priority)
	})

	t.Run("due date bands", func(t *testing.T) {
		cases := []struct {
			name  string
			due   time.Duration
			score int
		}{
			{"overdue", -48 * time.Hour, 80},
			{"under a day", 12 * time.Hour, 80},
			{"under three days", 2 * 24 * time.Hour, 70},
			{"under a week", 5 * 24 * time.Hour, 60},
			{"two weeks out", 14 * 24 * time.Hour, 50},
			{"beyond a month", 45 * 24 * time.Hour, 40},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				due := now.Add(tc.due)
				res := engine.ScorePriority(domain.PriorityInput{
					Title:   "Plan milestone",
					DueDate: &due,
				})
				assert.Equal(t, tc.score, res.Score)
			})
		}
	})

	t.Run("urgency flag adds 15", func(t *testing.T) {
		base := engine.ScorePriority(domain.PriorityInput{Title: "Plan milestone"})
		flagged := engine.ScorePriority(domain.PriorityInput{Title: "Plan milestone", ProjectUrgent: true})

		assert.Equal(t, base.Score+15, flagged.Score)
	})

	t.Run("positive contributions never decrease the score", func(t *testing.T) {
		due := now.Add(12 * time.Hour)

		plain := engine.ScorePriority(domain.PriorityInput{Title: "Plan milestone"})
		withKeyword := engine.ScorePriority(domain.PriorityInput{Title: "Urgent plan milestone"})
		withDue := engine.ScorePriority(domain.PriorityInput{Title: "Plan milestone", DueDate: &due})
		withFlag := engine.ScorePriority(domain.PriorityInput{Title: "Plan milestone", ProjectUrgent: true})

		assert.GreaterOrEqual(t, withKeyword.Score, plain.Score)
		assert.GreaterOrEqual(t, withDue.Score, plain.Score)
		assert.GreaterOrEqual(t, withFlag.Score, plain.Score)
	})
}
