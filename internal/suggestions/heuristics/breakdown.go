package heuristics

import (
	"strings"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
)

// BreakDown decomposes a task into subtasks. Contextual packs fire on
// keyword matches; the generic pool backfills up to the target count with
// randomized hour and priority estimates.
func (e *Engine) BreakDown(in domain.BreakdownInput) domain.BreakdownResult {
	r := e.rules.Breakdown
	rng := e.rng()

	complexity := in.Complexity
	if complexity == "" {
		complexity = domain.ComplexityMedium
	}

	target, ok := r.CountByComplexity[complexity]
	if !ok {
		target = r.DefaultCount
	}

	text := combinedText(in.Title, in.Description)

	subtasks := make([]domain.Subtask, 0, target)
	for _, pack := range r.ContextPacks {
		if containsAny(text, pack.Keywords) {
			subtasks = append(subtasks, pack.Subtasks...)
		}
	}

	// Backfill from the generic pool, skipping anything already covered.
	// Draw order, hours and priority are randomized.
	for len(subtasks) < target {
		eligible := make([]string, 0, len(r.GenericPool))
		for _, name := range r.GenericPool {
			if !titleAlreadyPresent(subtasks, name) {
				eligible = append(eligible, name)
			}
		}
		if len(eligible) == 0 {
			break
		}

		name := eligible[rng.Intn(len(eligible))]
		subtasks = append(subtasks, domain.Subtask{
			Title:          name,
			EstimatedHours: rng.Intn(r.MaxGenericHours) + 1,
			Priority:       r.GenericPriority[rng.Intn(len(r.GenericPriority))],
		})
	}

	if len(subtasks) > target {
		subtasks = subtasks[:target]
	}

	total := 0
	for _, st := range subtasks {
		total += st.EstimatedHours
	}

	return domain.BreakdownResult{
		Subtasks:            subtasks,
		TotalEstimatedHours: total,
		Complexity:          complexity,
		Confidence:          r.Confidence,
		Recommendations:     r.Recommendations,
	}
}

func titleAlreadyPresent(subtasks []domain.Subtask, name string) bool {
	needle := strings.ToLower(name)
	for _, st := range subtasks {
		if strings.Contains(strings.ToLower(st.Title), needle) {
			return true
		}
	}
	return false
}
