// Package events publishes settlement records to Kafka for downstream
// analytics. Publishing is best effort: a failed publish never affects a
// completed settlement.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const producerWorkers = 4

// SettlementEvent mirrors the result of one settled action.
type SettlementEvent struct {
	SettlementID string    `json:"settlement_id"`
	UserID       string    `json:"user_id"`
	Game         string    `json:"game"`
	Wager        int64     `json:"wager"`
	Win          bool      `json:"win"`
	Multiplier   string    `json:"multiplier"`
	Payout       int64     `json:"payout"`
	JackpotCut   int64     `json:"jackpot_cut"`
	NewBalance   int64     `json:"new_balance"`
	SettledAt    time.Time `json:"settled_at"`
}

// Producer writes settlement events through a small worker pool so a slow
// broker never blocks the settlement path. A nil Producer is valid and
// drops everything.
type Producer struct {
	writer *kafka.Writer
	topic  string
	jobs   chan kafka.Message
	logger zerolog.Logger
	wg     sync.WaitGroup
}

// NewProducer returns nil when no brokers are configured.
func NewProducer(brokers []string, topic string, logger zerolog.Logger) *Producer {
	if len(brokers) == 0 {
		return nil
	}

	p := &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
			WriteTimeout: 10 * time.Second,
		},
		topic:  topic,
		jobs:   make(chan kafka.Message, 100),
		logger: logger.With().Str("component", "kafka-producer").Logger(),
	}

	for i := 0; i < producerWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Producer) worker() {
	defer p.wg.Done()
	for msg := range p.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Error().
				Err(err).
				Str("key", string(msg.Key)).
				Msg("failed to publish settlement event")
		}
		cancel()
	}
}

// PublishSettlement enqueues the event keyed by user id. Safe on a nil
// receiver.
func (p *Producer) PublishSettlement(event *SettlementEvent) {
	if p == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to marshal settlement event")
		return
	}

	select {
	case p.jobs <- kafka.Message{Key: []byte(event.UserID), Value: data, Time: time.Now()}:
	default:
		p.logger.Warn().Str("settlement_id", event.SettlementID).Msg("event queue full, dropping")
	}
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	close(p.jobs)
	p.wg.Wait()
	return p.writer.Close()
}
