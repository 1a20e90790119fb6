package notifier

import (
	"context"
	"encoding/json"
	"time"

	"sjsage522/wishlistwatcher/logger"
	"sjsage522/wishlistwatcher/pkg/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisStreamName = "redis-stream"

// StreamMessage is the JSON envelope written to the event stream
type StreamMessage struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Key        string    `json:"key"`
	Source     string    `json:"source"`
	Title      string    `json:"title"`
	Price      string    `json:"price"`
	Link       string    `json:"link,omitempty"`
	OldTitle   string    `json:"old_title,omitempty"`
	OldPrice   string    `json:"old_price,omitempty"`
	Message    string    `json:"message"`
	DetectedAt time.Time `json:"detected_at"`
}

// NewStreamMessage builds the stream envelope of a notification
func NewStreamMessage(n Notification) StreamMessage {
	msg := StreamMessage{
		ID:         uuid.NewString(),
		Kind:       n.Event.Kind.String(),
		Key:        n.Event.Key,
		Source:     n.Source,
		Title:      n.Event.Listing.Title,
		Price:      n.Event.Listing.PriceRaw,
		Link:       n.Event.Listing.Link,
		Message:    n.Text,
		DetectedAt: n.DetectedAt,
	}
	if prev := n.Event.Previous; prev != nil {
		msg.OldTitle = prev.Title
		msg.OldPrice = prev.PriceRaw
	}
	return msg
}

// RedisStreamNotifier appends notifications to a Redis stream for downstream consumers
type RedisStreamNotifier struct {
	client    *redis.Client
	stream    string
	maxLength int64
}

// NewRedisStreamNotifier creates a new Redis stream notifier
func NewRedisStreamNotifier(addr string, db int, stream string, maxLength int) *RedisStreamNotifier {
	return &RedisStreamNotifier{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
		stream:    stream,
		maxLength: int64(maxLength),
	}
}

// Name returns "redis-stream"
func (p *RedisStreamNotifier) Name() string {
	return redisStreamName
}

// Notify appends the notification to the stream, trimming it approximately to maxLength
func (p *RedisStreamNotifier) Notify(ctx context.Context, n Notification) error {
	msg := NewStreamMessage(n)
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.NewNotification(redisStreamName, "failed to encode event", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"kind":  msg.Kind,
			"event": string(data),
		},
	}
	if p.maxLength > 0 {
		args.MaxLen = p.maxLength
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return errors.NewNotification(redisStreamName, "failed to append to "+p.stream, err)
	}

	logger.ForNotifier(redisStreamName).Debug().Str("id", msg.ID).Str("kind", msg.Kind).Msg("Event published")
	return nil
}

// Close closes the Redis connection
func (p *RedisStreamNotifier) Close() error {
	return p.client.Close()
}
