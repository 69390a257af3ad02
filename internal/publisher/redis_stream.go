package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const seasonProcessedStream = "seasons.processed.basketball"

// SeasonProcessedEvent is the payload published after a season
// processing run completes.
type SeasonProcessedEvent struct {
	RunID              string `json:"run_id"`
	SeasonID           string `json:"season_id"`
	SubjectTeam        string `json:"subject_team"`
	GamesProcessed     int    `json:"games_processed"`
	PlayersAggregated  int    `json:"players_aggregated"`
	TeamsAggregated    int    `json:"teams_aggregated"`
	SubstitutionEvents int    `json:"substitution_events"`
	AssistEdges        int    `json:"assist_edges"`
}

// RedisPublisher publishes processing events to Redis streams
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher from an existing client
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client: client,
	}
}

// PublishSeasonProcessed publishes a completed processing run to the stream
func (rp *RedisPublisher) PublishSeasonProcessed(ctx context.Context, event SeasonProcessedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: seasonProcessedStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
