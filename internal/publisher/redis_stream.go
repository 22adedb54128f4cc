// Package publisher pushes live game updates onto Redis streams for
// downstream consumers.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream names, one per league.
const (
	streamMens   = "fieldhouse.live.mens"
	streamWomens = "fieldhouse.live.womens"
)

// StreamPublisher publishes game updates to Redis streams.
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a publisher over an existing Redis client.
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client}
}

// Connect creates a publisher with its own Redis connection.
func Connect(redisURL string) (*StreamPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &StreamPublisher{client: client}, nil
}

// Close closes the Redis connection.
func (p *StreamPublisher) Close() error {
	return p.client.Close()
}

// PublishGameUpdate publishes one game's score or status change to the
// league's live stream.
func (p *StreamPublisher) PublishGameUpdate(ctx context.Context, league string, update interface{}) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName(league),
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

func streamName(league string) string {
	if league == "womens" {
		return streamWomens
	}
	return streamMens
}
