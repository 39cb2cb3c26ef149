// Package stream moderates comments read from Kafka and publishes verdicts.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"antiswear/pkg/censor"
	"antiswear/pkg/models"
	"antiswear/pkg/moderation"
)

const commitTimeout = 10 * time.Second

// Reader is satisfied by *kafka.Reader configured with a group id.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Writer is satisfied by *kafka.Writer.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Moderator struct {
	Censor  *censor.Censor
	Reader  Reader
	Writer  Writer
	Policy  moderation.Policy
	Workers int
}

// Run consumes comments until ctx is cancelled. A message is committed once
// its verdict is written, or right away when it cannot be decoded.
func (m *Moderator) Run(ctx context.Context) error {
	workers := m.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan kafka.Message, workers*5)
	var wg sync.WaitGroup
	wg.Add(workers)
	for workerID := 0; workerID < workers; workerID++ {
		go func(id int) {
			defer wg.Done()
			m.worker(ctx, jobs, id)
		}(workerID)
	}

	log.Info("[moderator] accepting comments...")
	var err error
	for {
		var msg kafka.Message
		msg, err = m.Reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				err = nil
				break
			}
			log.Errorf("[moderator] failed to fetch message from Kafka: %v", err)
			break
		}
		log.Debugf("[moderator] received message at offset %d", msg.Offset)

		select {
		case jobs <- msg:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}

	close(jobs)
	wg.Wait()

	return err
}

func (m *Moderator) worker(ctx context.Context, jobs <-chan kafka.Message, workerID int) {
	for {
		select {
		case <-ctx.Done():
			log.Infof("[moderator][workerID:%d] context cancelled, exiting worker", workerID)
			return

		case msg, ok := <-jobs:
			if !ok {
				log.Infof("[moderator][workerID:%d] jobs channel closed, exiting worker", workerID)
				return
			}

			if err := m.handle(ctx, msg); err != nil {
				log.Errorf("[moderator][workerID:%d] %v", workerID, err)
				continue
			}
			// The verdict is already out; commit even when ctx is cancelled.
			commitCtx, cancel := context.WithTimeout(context.Background(), commitTimeout)
			err := m.Reader.CommitMessages(commitCtx, msg)
			cancel()
			if err != nil {
				log.Errorf("[moderator][workerID:%d] failed to commit offset %d: %v", workerID, msg.Offset, err)
			}
		}
	}
}

// handle judges one message. Undecodable messages are skipped without error
// so they get committed and never block the partition.
func (m *Moderator) handle(ctx context.Context, msg kafka.Message) error {
	var comment models.Comment
	if err := json.Unmarshal(msg.Value, &comment); err != nil {
		log.Warnf("[moderator] skipping malformed comment at offset %d: %v", msg.Offset, err)
		return nil
	}

	verdict := m.Policy.Judge(m.Censor, comment)
	value, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	err = m.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(comment.ID.String()), Value: value})
	if err != nil {
		return fmt.Errorf("failed to write verdict for comment %s: %w", comment.ID, err)
	}
	log.Debugf("[moderator] verdict for comment %s written, censored: %v", comment.ID, verdict.Censored)

	return nil
}
