package heuristics

import (
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
)

// ScorePriority maps task text, an optional due date and the project
// urgency flag to a priority category with an unclamped numeric score.
func (e *Engine) ScorePriority(in domain.PriorityInput) domain.PriorityResult {
	r := e.rules.Priority

	score := r.BaseScore
	reasons := make([]string, 0, 3)

	text := combinedText(in.Title, in.Description)

	// Keyword tiers are disjoint: only the first matching tier applies.
	switch {
	case containsAny(text, r.UrgentKeywords):
		score += r.UrgentKeywordBoost
		reasons = append(reasons, "High urgency indicators detected")
	case containsAny(text, r.HighKeywords):
		score += r.HighKeywordBoost
		reasons = append(reasons, "Important keywords found")
	case containsAny(text, r.LowKeywords):
		score += r.LowKeywordDrop
		reasons = append(reasons, "Low priority indicators detected")
	}

	if in.DueDate != nil {
		days := daysUntil(*in.DueDate, e.now())
		switch {
		case days < 1:
			score += r.DueWithinDayBoost
			reasons = append(reasons, "Due date approaching")
		case days < 3:
			score += r.DueWithinThreeBoost
			reasons = append(reasons, "Due within 3 days")
		case days < 7:
			score += r.DueWithinWeekBoost
			reasons = append(reasons, "Due within a week")
		case days > 30:
			score += r.DueBeyondMonthDrop
			reasons = append(reasons, "Due date is far away")
		}
	}

	if in.ProjectUrgent {
		score += r.UrgencyFlagBoost
		reasons = append(reasons, "Project flagged as urgent")
	}

	// The score is deliberately left unclamped; it is a relative signal.
	var category domain.Priority
	switch {
	case score >= r.UrgentAt:
		category = domain.PriorityUrgent
	case score >= r.HighAt:
		category = domain.PriorityHigh
	case score <= r.LowAt:
		category = domain.PriorityLow
	default:
		category = domain.PriorityMedium
	}

	return domain.PriorityResult{
		Priority:   category,
		Score:      score,
		Confidence: r.Confidence,
		Reasons:    reasons,
	}
}
