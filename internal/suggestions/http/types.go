package http

import (
	"time"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
)

type refFields struct {
	ProjectID *string `json:"project_id"`
	TaskID    *string `json:"task_id"`
}

type priorityReq struct {
	refFields
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DueDate       *time.Time `json:"due_date"`
	ProjectUrgent bool       `json:"project_urgent"`
}

type estimateReq struct {
	refFields
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Priority    domain.Priority        `json:"priority"`
	TaskType    string                 `json:"task_type"`
	History     []domain.CompletedTask `json:"history"`
}

type assigneeReq struct {
	refFields
	Title              string                    `json:"title"`
	Description        string                    `json:"description"`
	RequiredSkills     []string                  `json:"required_skills"`
	WorkloadPreference string                    `json:"workload_preference"`
	Roster             []domain.CandidateProfile `json:"roster"`
}

type breakdownReq struct {
	refFields
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Complexity  domain.Complexity `json:"complexity"`
}
