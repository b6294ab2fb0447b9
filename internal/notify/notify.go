// Package notify publishes job lifecycle events to an optional Redis channel
// so external dashboards can follow processing without polling the bot.
package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Event is one job lifecycle stage.
type Event string

const (
	EventQueued      Event = "queued"
	EventDownloading Event = "downloading"
	EventTranscoding Event = "transcoding"
	EventUploading   Event = "uploading"
	EventFinished    Event = "finished"
	EventFailed      Event = "failed"
)

type notification struct {
	JobID  string `json:"job_id"`
	UserID int64  `json:"user_id"`
	Status Event  `json:"status"`
}

// Publisher sends job status notifications. A nil Publisher is a no-op, so
// callers never have to check whether notifications are configured.
type Publisher struct {
	client  *redis.Client
	channel string
}

// New creates a Publisher, or nil when dsn is empty.
func New(dsn, channel string) *Publisher {
	if dsn == "" {
		return nil
	}
	return &Publisher{
		client:  redis.NewClient(&redis.Options{Addr: dsn}),
		channel: channel,
	}
}

// Publish sends one lifecycle event. Nil-safe.
func (p *Publisher) Publish(ctx context.Context, jobID string, userID int64, status Event) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(notification{JobID: jobID, UserID: userID, Status: status})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}

// Close releases the underlying connection. Nil-safe.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.client.Close()
}
