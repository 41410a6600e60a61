package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
)

const (
	projectChannelPrefix = "suggest:events:"    // Pub/Sub channel per project room: suggest:events:{project_id}
	userFeedPrefix       = "suggest:recent:"    // Recent-suggestion feed per user: suggest:recent:{user_id}
	feedTTL              = 24 * time.Hour       // TTL for the recent feed
	feedMaxLen           = 50                   // Entries kept per user feed
)

// SuggestionEvent is the payload broadcast to project rooms when a new
// suggestion record is created.
type SuggestionEvent struct {
	Event        string                `json:"event"`
	SuggestionID string                `json:"suggestion_id"`
	UserID       string                `json:"user_id"`
	ProjectID    string                `json:"project_id,omitempty"`
	Type         domain.SuggestionType `json:"type"`
	CreatedAt    time.Time             `json:"created_at"`
}

// Publisher broadcasts suggestion events over Redis. Broadcasting is
// best-effort: the audit record is the contract, not the event.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a new Publisher.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// SuggestionCreated publishes the event to the project room channel and
// appends it to the owner's recent feed.
func (p *Publisher) SuggestionCreated(ctx context.Context, rec *domain.SuggestionRecord) error {
	ev := SuggestionEvent{
		Event:        "suggestion.created",
		SuggestionID: rec.ID,
		UserID:       rec.UserID,
		Type:         rec.Type,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.ProjectID != nil {
		ev.ProjectID = *rec.ProjectID
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal suggestion event: %w", err)
	}

	feedKey := userFeedPrefix + rec.UserID

	pipe := p.client.Pipeline()
	if ev.ProjectID != "" {
		pipe.Publish(ctx, projectChannelPrefix+ev.ProjectID, data)
	}
	pipe.LPush(ctx, feedKey, data)
	pipe.LTrim(ctx, feedKey, 0, feedMaxLen-1)
	pipe.Expire(ctx, feedKey, feedTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish suggestion event: %w", err)
	}
	return nil
}

// RecentFeed returns the owner's most recent events, newest first.
func (p *Publisher) RecentFeed(ctx context.Context, userID string, limit int) ([]SuggestionEvent, error) {
	if limit <= 0 || limit > feedMaxLen {
		limit = feedMaxLen
	}

	raw, err := p.client.LRange(ctx, userFeedPrefix+userID, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read suggestion feed: %w", err)
	}

	out := make([]SuggestionEvent, 0, len(raw))
	for _, item := range raw {
		var ev SuggestionEvent
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
