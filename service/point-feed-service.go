package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gatherpass/config"

	"github.com/segmentio/kafka-go"
)

type PointEventType string

const (
	PointEventSubmissionCreated PointEventType = "SUBMISSION_CREATED"
	PointEventSubmissionUpdated PointEventType = "SUBMISSION_UPDATED"
	PointEventSubmissionDeleted PointEventType = "SUBMISSION_DELETED"
	PointEventPromotion         PointEventType = "PROMOTION"
)

// PointEvent is one entry of the ledger activity feed. Points carries the
// delta applied to the participant total (negative for deletions).
type PointEvent struct {
	Type         PointEventType `json:"type"`
	SeasonId     int            `json:"season_id"`
	UserId       int            `json:"user_id"`
	Points       int            `json:"points"`
	SubmissionId int            `json:"submission_id,omitempty"`
	RankNames    []string       `json:"rank_names,omitempty"`
	Actor        string         `json:"actor"`
	Timestamp    time.Time      `json:"timestamp"`
}

// PointFeedService mirrors ledger activity onto a kafka topic for external
// consumers (the discord bot's admin channel feed among them). Without a
// configured broker every publish is a no-op.
type PointFeedService struct {
	writer *kafka.Writer
}

func NewPointFeedService() *PointFeedService {
	writer, err := config.GetPointEventWriter()
	if err != nil {
		return &PointFeedService{}
	}
	return &PointFeedService{writer: writer}
}

// Publish is fire-and-forget: the feed is notification plumbing, not part of
// ledger atomicity, so a broker failure only logs.
func (s *PointFeedService) Publish(event *PointEvent) {
	if s.writer == nil {
		return
	}
	event.Timestamp = time.Now()
	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to serialize point event: %v", err)
		return
	}
	err = s.writer.WriteMessages(context.Background(), kafka.Message{Value: value})
	if err != nil {
		log.Printf("failed to publish point event: %v", err)
	}
}

// StreamPointEvents blocks reading the feed until ctx is cancelled, invoking
// handler for every decoded event.
func StreamPointEvents(ctx context.Context, consumerId string, handler func(*PointEvent)) error {
	reader, err := config.GetPointEventReader(consumerId)
	if err != nil {
		return err
	}
	defer reader.Close()
	for {
		message, err := reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		event := &PointEvent{}
		if err := json.Unmarshal(message.Value, event); err != nil {
			log.Printf("failed to decode point event: %v", err)
			continue
		}
		handler(event)
	}
}
