package domain

import (
	"encoding/json"
	"time"
)

// SuggestionType tags a persisted suggestion record with the generator
// that produced it.
type SuggestionType string

const (
	SuggestionPriority  SuggestionType = "priority"
	SuggestionEstimate  SuggestionType = "time_estimate"
	SuggestionAssignee  SuggestionType = "assignee"
	SuggestionBreakdown SuggestionType = "breakdown"
)

// Priority is the coarse task priority used across scoring and estimation.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Complexity is the caller-supplied size category driving decomposition.
type Complexity string

const (
	ComplexityLow      Complexity = "low"
	ComplexityMedium   Complexity = "medium"
	ComplexityHigh     Complexity = "high"
	ComplexityVeryHigh Complexity = "very_high"
)

// ProjectRole mirrors the membership store's role column.
type ProjectRole string

const (
	RoleOwner  ProjectRole = "owner"
	RoleAdmin  ProjectRole = "admin"
	RoleMember ProjectRole = "member"
	RoleViewer ProjectRole = "viewer"
)

// CompletedTask is a read-only projection of a previously completed task,
// supplied by the task store and used only as an input signal.
type CompletedTask struct {
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at"`
	Priority    Priority  `json:"priority"`
}

// CandidateProfile describes one project member considered for assignment.
// ActiveTasks counts tasks not yet done or cancelled; TotalTasks counts
// everything ever assigned to the member.
type CandidateProfile struct {
	UserID      string      `json:"user_id"`
	DisplayName string      `json:"display_name"`
	Role        ProjectRole `json:"role"`
	ActiveTasks int         `json:"active_tasks"`
	TotalTasks  int         `json:"total_tasks"`
}

// PriorityInput is the input bundle for the priority scorer.
type PriorityInput struct {
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	ProjectUrgent bool       `json:"project_urgent,omitempty"`
}

// EstimateInput is the input bundle for the time estimator. History holds
// up to 100 of the caller's most recently completed tasks.
type EstimateInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    Priority        `json:"priority,omitempty"`
	TaskType    string          `json:"task_type,omitempty"`
	History     []CompletedTask `json:"history,omitempty"`
}

// AssigneeInput is the input bundle for the assignee ranker.
// WorkloadPreference is recorded but not currently weighted.
type AssigneeInput struct {
	Title              string             `json:"title"`
	Description        string             `json:"description,omitempty"`
	RequiredSkills     []string           `json:"required_skills,omitempty"`
	WorkloadPreference string             `json:"workload_preference,omitempty"`
	Roster             []CandidateProfile `json:"roster,omitempty"`
}

// BreakdownInput is the input bundle for the task decomposer.
type BreakdownInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Complexity  Complexity `json:"complexity,omitempty"`
}

// PriorityResult is the priority scorer's output. Score is intentionally
// not clamped; it is a relative signal, not a displayed percentage.
type PriorityResult struct {
	Priority   Priority `json:"priority"`
	Score      int      `json:"score"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// EstimateFactors records the signals that shaped a time estimate.
type EstimateFactors struct {
	Complexity string   `json:"complexity"`
	Priority   Priority `json:"priority"`
	TaskType   string   `json:"task_type"`
	SampleSize int      `json:"sample_size"`
}

// TimeEstimateResult is the time estimator's output. TotalHours is the raw
// blended value; Hours/Minutes is its split presentation.
type TimeEstimateResult struct {
	TotalHours float64         `json:"total_hours"`
	Hours      int             `json:"hours"`
	Minutes    int             `json:"minutes"`
	Confidence float64         `json:"confidence"`
	Factors    EstimateFactors `json:"factors"`
}

// RankedCandidate is one scored entry in an assignee ranking.
type RankedCandidate struct {
	UserID         string   `json:"user_id"`
	DisplayName    string   `json:"display_name"`
	Score          int      `json:"score"`
	Confidence     float64  `json:"confidence"`
	WorkloadStatus string   `json:"workload_status"`
	Reasons        []string `json:"reasons"`
}

// AssigneeRankingResult holds the top candidates, best first.
type AssigneeRankingResult struct {
	Candidates []RankedCandidate `json:"candidates"`
	Confidence float64           `json:"confidence"`
}

// Subtask is a single decomposition step.
type Subtask struct {
	Title          string   `json:"title"`
	EstimatedHours int      `json:"estimated_hours"`
	Priority       Priority `json:"priority"`
}

// BreakdownResult is the task decomposer's output.
type BreakdownResult struct {
	Subtasks            []Subtask  `json:"subtasks"`
	TotalEstimatedHours int        `json:"total_estimated_hours"`
	Complexity          Complexity `json:"complexity"`
	Confidence          float64    `json:"confidence"`
	Recommendations     []string   `json:"recommendations"`
}

// SuggestionRecord is the immutable audit entry persisted for every
// generated suggestion. The engine only ever inserts these; IsApplied and
// Feedback are mutated by a separate workflow.
type SuggestionRecord struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	ProjectID *string         `json:"project_id,omitempty"`
	TaskID    *string         `json:"task_id,omitempty"`
	Type      SuggestionType  `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Context   json.RawMessage `json:"context"`
	IsApplied bool            `json:"is_applied"`
	Feedback  *string         `json:"feedback,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// History caps: the task store supplies at most this many completed tasks
// per query.
const (
	MaxHistoryForEstimate = 100
	MaxHistoryDefault     = 50
)
