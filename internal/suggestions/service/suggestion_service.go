package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/heuristics"
	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/repository"
)

// HistoryProvider supplies a user's most recently completed tasks. The
// task store implements this; the engine only reads the projection.
type HistoryProvider interface {
	RecentCompleted(ctx context.Context, userID string, limit int) ([]domain.CompletedTask, error)
}

// RosterProvider supplies the member roster for a project, with role and
// task counts. The membership store implements this.
type RosterProvider interface {
	ProjectRoster(ctx context.Context, projectID string) ([]domain.CandidateProfile, error)
}

// EventPublisher broadcasts suggestion-created events. Publishing is
// best-effort and never fails a request.
type EventPublisher interface {
	SuggestionCreated(ctx context.Context, rec *domain.SuggestionRecord) error
}

// Ref optionally ties a suggestion to a project and/or task.
type Ref struct {
	ProjectID *string
	TaskID    *string
}

// SuggestionService runs the heuristics engine and enforces the audit
// contract: every returned result has a committed record. If the insert
// fails, no result is returned.
type SuggestionService struct {
	engine  *heuristics.Engine
	repo    *repository.SuggestionRepository
	history HistoryProvider
	roster  RosterProvider
	events  EventPublisher
}

// NewSuggestionService creates a new SuggestionService. history, roster
// and events may be nil; the corresponding enrichment is skipped.
func NewSuggestionService(
	engine *heuristics.Engine,
	repo *repository.SuggestionRepository,
	history HistoryProvider,
	roster RosterProvider,
	events EventPublisher,
) *SuggestionService {
	return &SuggestionService{
		engine:  engine,
		repo:    repo,
		history: history,
		roster:  roster,
		events:  events,
	}
}

// SuggestPriority scores a task's priority and records the result.
func (s *SuggestionService) SuggestPriority(ctx context.Context, userID string, in domain.PriorityInput, ref Ref) (*domain.PriorityResult, *domain.SuggestionRecord, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	result := s.engine.ScorePriority(in)

	rec, err := s.record(ctx, userID, domain.SuggestionPriority, ref, result, in)
	if err != nil {
		return nil, nil, err
	}
	return &result, rec, nil
}

// SuggestEstimate estimates a task's duration and records the result.
// When the caller supplies no history, the task store's recent completed
// tasks for the user are used instead.
func (s *SuggestionService) SuggestEstimate(ctx context.Context, userID string, in domain.EstimateInput, ref Ref) (*domain.TimeEstimateResult, *domain.SuggestionRecord, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	if len(in.History) == 0 && s.history != nil {
		sample, err := s.history.RecentCompleted(ctx, userID, domain.MaxHistoryForEstimate)
		if err != nil {
			// Missing history degrades the estimate, it does not fail it.
			log.Printf("[suggestions] history lookup failed for user=%s: %v", userID, err)
		} else {
			in.History = sample
		}
	}
	if len(in.History) > domain.MaxHistoryForEstimate {
		in.History = in.History[:domain.MaxHistoryForEstimate]
	}

	result := s.engine.EstimateTime(in)

	rec, err := s.record(ctx, userID, domain.SuggestionEstimate, ref, result, in)
	if err != nil {
		return nil, nil, err
	}
	return &result, rec, nil
}

// SuggestAssignee ranks candidate assignees and records the result. When
// the caller supplies no roster and a project ref is present, the
// membership store's roster is used instead.
func (s *SuggestionService) SuggestAssignee(ctx context.Context, userID string, in domain.AssigneeInput, ref Ref) (*domain.AssigneeRankingResult, *domain.SuggestionRecord, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	if len(in.Roster) == 0 && s.roster != nil && ref.ProjectID != nil {
		roster, err := s.roster.ProjectRoster(ctx, *ref.ProjectID)
		if err != nil {
			log.Printf("[suggestions] roster lookup failed for project=%s: %v", *ref.ProjectID, err)
		} else {
			in.Roster = roster
		}
	}

	result := s.engine.RankAssignees(in)

	rec, err := s.record(ctx, userID, domain.SuggestionAssignee, ref, result, in)
	if err != nil {
		return nil, nil, err
	}
	return &result, rec, nil
}

// SuggestBreakdown decomposes a task into subtasks and records the result.
func (s *SuggestionService) SuggestBreakdown(ctx context.Context, userID string, in domain.BreakdownInput, ref Ref) (*domain.BreakdownResult, *domain.SuggestionRecord, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	result := s.engine.BreakDown(in)

	rec, err := s.record(ctx, userID, domain.SuggestionBreakdown, ref, result, in)
	if err != nil {
		return nil, nil, err
	}
	return &result, rec, nil
}

// List returns the user's suggestion history, newest first.
func (s *SuggestionService) List(ctx context.Context, userID string, suggestionType domain.SuggestionType, limit int) ([]domain.SuggestionRecord, error) {
	return s.repo.ListByUser(ctx, userID, suggestionType, limit)
}

// Get returns a single record owned by the user.
func (s *SuggestionService) Get(ctx context.Context, userID, id string) (*domain.SuggestionRecord, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// record persists the audit entry. The insert must succeed before any
// result leaves the service; event broadcast afterwards is best-effort.
func (s *SuggestionService) record(ctx context.Context, userID string, typ domain.SuggestionType, ref Ref, result, input any) (*domain.SuggestionRecord, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal suggestion payload: %w", err)
	}
	contextJSON, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal suggestion context: %w", err)
	}

	rec := &domain.SuggestionRecord{
		UserID:    userID,
		ProjectID: ref.ProjectID,
		TaskID:    ref.TaskID,
		Type:      typ,
		Payload:   payload,
		Context:   contextJSON,
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.SuggestionCreated(ctx, rec); err != nil {
			log.Printf("[suggestions] event publish failed for suggestion=%s: %v", rec.ID, err)
		}
	}

	return rec, nil
}
