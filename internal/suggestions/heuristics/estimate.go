package heuristics

import (
	"math"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
)

// EstimateTime maps task text, priority, task type and the caller's
// completed-task history to an hours/minutes estimate with a confidence.
func (e *Engine) EstimateTime(in domain.EstimateInput) domain.TimeEstimateResult {
	r := e.rules.Estimate

	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	taskType := in.TaskType
	if taskType == "" {
		taskType = "general"
	}

	base := r.BaseHours

	// Longer descriptions usually mean more work. Both thresholds are
	// checked independently, so very long text adds the bonus twice.
	words := wordCount(in.Title + " " + in.Description)
	if words > r.LongTextWords {
		base += r.LongTextBonus
	}
	if words > r.VeryLongTextWords {
		base += r.LongTextBonus
	}

	if f, ok := r.PriorityFactors[priority]; ok {
		base *= f
	}
	if f, ok := r.TypeFactors[taskType]; ok {
		base *= f
	}

	// Blend with the user's historical completion times when available.
	if len(in.History) > 0 {
		var totalHours float64
		for _, t := range in.History {
			totalHours += t.CompletedAt.Sub(t.CreatedAt).Hours()
		}
		historicalMean := totalHours / float64(len(in.History))
		base = (base + historicalMean) / 2
	}

	hours := int(math.Floor(base))
	minutes := int(math.Round((base - float64(hours)) * 60))

	confidence := r.LowConfidence
	if len(in.History) > r.ConfidentSampleSize {
		confidence = r.HighConfidence
	}

	complexity := "medium"
	if words > r.LongTextWords {
		complexity = "high"
	}

	return domain.TimeEstimateResult{
		TotalHours: base,
		Hours:      hours,
		Minutes:    minutes,
		Confidence: confidence,
		Factors: domain.EstimateFactors{
			Complexity: complexity,
			Priority:   priority,
			TaskType:   taskType,
			SampleSize: len(in.History),
		},
	}
}
