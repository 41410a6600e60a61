// Package heuristics implements the task intelligence engine: rule-table
// driven scoring and generation over task text and contextual signals.
package heuristics

import "github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"

// Rules bundles every tunable table the engine consults. All values have
// working defaults from DefaultRules; callers override individual tables
// when experimenting with weights.
type Rules struct {
	Priority  PriorityRules
	Estimate  EstimateRules
	Assignee  AssigneeRules
	Breakdown BreakdownRules
}

// PriorityRules drives the priority scorer.
type PriorityRules struct {
	BaseScore int

	UrgentKeywords []string
	HighKeywords   []string
	LowKeywords    []string

	UrgentKeywordBoost int
	HighKeywordBoost   int
	LowKeywordDrop     int

	// Due-date bands, evaluated in order, first match wins.
	DueWithinDayBoost   int // due < 1 day away (or overdue)
	DueWithinThreeBoost int // due < 3 days
	DueWithinWeekBoost  int // due < 7 days
	DueBeyondMonthDrop  int // due > 30 days

	UrgencyFlagBoost int

	// Category thresholds over the summed (unclamped) score.
	UrgentAt int
	HighAt   int
	LowAt    int

	Confidence float64
}

// EstimateRules drives the time estimator.
type EstimateRules struct {
	BaseHours float64

	LongTextWords     int
	VeryLongTextWords int
	LongTextBonus     float64

	PriorityFactors map[domain.Priority]float64
	TypeFactors     map[string]float64

	// Sample sizes above this threshold earn the higher confidence.
	ConfidentSampleSize int
	HighConfidence      float64
	LowConfidence       float64
}

// AssigneeRules drives the assignee ranker.
type AssigneeRules struct {
	BaseScore          int
	WorkloadPenalty    int // per active task
	ExperiencePerTask  int
	ExperienceCap      int
	OwnerBonus         int
	AdminBonus         int
	SkillMatchBonus    int
	TopN               int
	LightWorkloadBelow int
	ModerateBelow      int
	Confidence         float64
}

// BreakdownRules drives the task decomposer.
type BreakdownRules struct {
	CountByComplexity map[domain.Complexity]int
	DefaultCount      int

	// Contextual packs fire independently when any of their keywords
	// appears in the combined text; each appends its full subtask list.
	ContextPacks []ContextPack

	// GenericPool backfills up to the target count. Drawn items get a
	// random 1..MaxGenericHours estimate and a random priority.
	GenericPool      []string
	MaxGenericHours  int
	GenericPriority  []domain.Priority
	Confidence       float64
	Recommendations  []string
}

// ContextPack is a keyword-triggered set of fixed subtasks.
type ContextPack struct {
	Keywords []string
	Subtasks []domain.Subtask
}

// DefaultRules returns the production rule tables.
func DefaultRules() Rules {
	return Rules{
		Priority: PriorityRules{
			BaseScore: 50,
			UrgentKeywords: []string{
				"urgent", "critical", "emergency", "asap", "immediately",
				"bug", "error", "broken",
			},
			HighKeywords: []string{
				"important", "major", "significant", "deadline", "client",
				"production",
			},
			LowKeywords: []string{
				"nice to have", "enhancement", "minor", "cosmetic", "cleanup",
			},
			UrgentKeywordBoost:  30,
			HighKeywordBoost:    20,
			LowKeywordDrop:      -20,
			DueWithinDayBoost:   30,
			DueWithinThreeBoost: 20,
			DueWithinWeekBoost:  10,
			DueBeyondMonthDrop:  -10,
			UrgencyFlagBoost:    15,
			UrgentAt:            80,
			HighAt:              65,
			LowAt:               30,
			Confidence:          0.7,
		},
		Estimate: EstimateRules{
			BaseHours:         4.0,
			LongTextWords:     50,
			VeryLongTextWords: 100,
			LongTextBonus:     2.0,
			PriorityFactors: map[domain.Priority]float64{
				domain.PriorityLow:    0.8,
				domain.PriorityMedium: 1.0,
				domain.PriorityHigh:   1.3,
				domain.PriorityUrgent: 1.5,
			},
			TypeFactors: map[string]float64{
				"bug":           0.7,
				"feature":       1.2,
				"research":      1.5,
				"documentation": 0.8,
				"testing":       0.9,
				"general":       1.0,
			},
			ConfidentSampleSize: 10,
			HighConfidence:      0.8,
			LowConfidence:       0.6,
		},
		Assignee: AssigneeRules{
			BaseScore:          50,
			WorkloadPenalty:    5,
			ExperiencePerTask:  2,
			ExperienceCap:      20,
			OwnerBonus:         10,
			AdminBonus:         5,
			SkillMatchBonus:    10,
			TopN:               5,
			LightWorkloadBelow: 3,
			ModerateBelow:      6,
			Confidence:         0.6,
		},
		Breakdown: BreakdownRules{
			CountByComplexity: map[domain.Complexity]int{
				domain.ComplexityLow:      3,
				domain.ComplexityMedium:   5,
				domain.ComplexityHigh:     7,
				domain.ComplexityVeryHigh: 9,
			},
			DefaultCount: 5,
			ContextPacks: []ContextPack{
				{
					Keywords: []string{"api", "backend"},
					Subtasks: []domain.Subtask{
						{Title: "Design API endpoints", EstimatedHours: 2, Priority: domain.PriorityHigh},
						{Title: "Implement backend logic", EstimatedHours: 4, Priority: domain.PriorityHigh},
						{Title: "Add error handling", EstimatedHours: 2, Priority: domain.PriorityMedium},
					},
				},
				{
					Keywords: []string{"ui", "frontend"},
					Subtasks: []domain.Subtask{
						{Title: "Create UI mockups", EstimatedHours: 2, Priority: domain.PriorityHigh},
						{Title: "Implement frontend components", EstimatedHours: 4, Priority: domain.PriorityHigh},
						{Title: "Add responsive styling", EstimatedHours: 2, Priority: domain.PriorityMedium},
					},
				},
				{
					Keywords: []string{"database", "data"},
					Subtasks: []domain.Subtask{
						{Title: "Design data schema", EstimatedHours: 2, Priority: domain.PriorityHigh},
						{Title: "Set up database migrations", EstimatedHours: 2, Priority: domain.PriorityHigh},
						{Title: "Write data access layer", EstimatedHours: 3, Priority: domain.PriorityMedium},
					},
				},
			},
			GenericPool: []string{
				"Research and gather requirements",
				"Design solution approach",
				"Implement core functionality",
				"Write tests",
				"Update documentation",
				"Code review and refinement",
				"Prepare for deployment",
			},
			MaxGenericHours: 4,
			GenericPriority: []domain.Priority{
				domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh,
			},
			Confidence: 0.7,
			Recommendations: []string{
				"Start with research and design before implementation",
				"Review subtask estimates with the team before committing",
				"Keep subtasks small enough to finish within a day",
				"Re-run the breakdown if scope changes significantly",
			},
		},
	}
}
