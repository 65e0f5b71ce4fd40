package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/well-data-service/internal/config"
	"github.com/couchcryptid/well-data-service/internal/domain"
)

// Message headers set on every published record.
const (
	HeaderSource     = "source"
	HeaderIngestedAt = "ingested_at"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes stored well records to a Kafka topic, keyed by well name.
// It implements pipeline.Publisher.
type Writer struct {
	writer messageWriter
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaSinkTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		// Records are large; one batch per upload is the natural unit.
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Writer{writer: w, clock: clockwork.NewRealClock(), logger: logger}
}

// Publish serializes wells and writes them in a single WriteMessages call.
func (w *Writer) Publish(ctx context.Context, source string, wells []domain.WellRecord) error {
	if len(wells) == 0 {
		return nil
	}
	now := w.clock.Now().UTC()
	msgs := make([]kafkago.Message, len(wells))
	for i := range wells {
		msg, err := serializeToMessage(wells[i], source, now)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d well records: %w", len(msgs), err)
	}
	w.logger.Debug("published wells", "count", len(msgs), "source", source)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a WellRecord into a Kafka message.
func serializeToMessage(well domain.WellRecord, source string, ingestedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(well)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize well record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(well.Name),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderSource, Value: []byte(source)},
			{Key: HeaderIngestedAt, Value: []byte(ingestedAt.Format(time.RFC3339))},
		},
	}, nil
}
