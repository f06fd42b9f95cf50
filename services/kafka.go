package services

import (
	"context"
	"encoding/json"
	"time"

	"cityflow/datagen/config"
	"cityflow/datagen/pipeline"
	"cityflow/datagen/writer"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaExporter streams every row of every dataset as a JSON object to the
// topic <prefix>.<dataset>, keyed by the row's entity id.
type KafkaExporter struct {
	w         *kafka.Writer
	prefix    string
	batchSize int
	log       *zap.Logger
}

func NewKafkaExporter(ctx context.Context, cfg config.KafkaConfig, log *zap.Logger) (*KafkaExporter, error) {
	if len(cfg.Brokers) == 0 {
		return nil, pipeline.Missing("kafka", "set KAFKA_BROKERS or [kafka] brokers", nil)
	}

	var conn *kafka.Conn
	var err error
	for _, b := range cfg.Brokers {
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		conn, err = kafka.DialContext(dialCtx, "tcp", b)
		cancel()
		if err == nil {
			break
		}
		log.Warn("broker dial failed", zap.String("broker", b), zap.Error(err))
	}
	if conn == nil {
		return nil, pipeline.Missing("kafka", "no broker reachable, start Kafka or fix KAFKA_BROKERS", err)
	}
	_ = conn.Close()

	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 1000
	}
	return &KafkaExporter{
		w:         newKafkaWriter(cfg.Brokers, batch),
		prefix:    cfg.TopicPrefix,
		batchSize: batch,
		log:       log,
	}, nil
}

// newKafkaWriter flushes a partial batch after 10ms instead of the
// library default of one second.
func newKafkaWriter(brokers []string, batch int) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchSize:              batch,
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func (k *KafkaExporter) Name() string { return "kafka" }

func (k *KafkaExporter) Export(ctx context.Context, t pipeline.Table) error {
	msgs, err := Messages(t, Topic(k.prefix, t.Name))
	if err != nil {
		return err
	}
	for start := 0; start < len(msgs); start += k.batchSize {
		end := min(start+k.batchSize, len(msgs))
		if err := k.w.WriteMessages(ctx, msgs[start:end]...); err != nil {
			return errors.Wrapf(err, "write %s messages", t.Name)
		}
	}
	k.log.Info("published dataset to kafka", zap.String("topic", Topic(k.prefix, t.Name)), zap.Int("messages", len(msgs)))
	return nil
}

func (k *KafkaExporter) Close() error {
	return k.w.Close()
}

func Topic(prefix, dataset string) string {
	if prefix == "" {
		return dataset
	}
	return prefix + "." + dataset
}

// Messages encodes every row of t. The key is the first column and the
// message time is the row timestamp when the table has one.
func Messages(t pipeline.Table, topic string) ([]kafka.Message, error) {
	tc := t.TimeColumn()
	msgs := make([]kafka.Message, 0, len(t.Rows))
	for _, row := range t.Rows {
		values := row.Values()
		value, err := json.Marshal(t.Object(row))
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s row", t.Name)
		}
		msg := kafka.Message{
			Topic: topic,
			Key:   []byte(writer.FormatValue(values[0])),
			Value: value,
		}
		if tc >= 0 {
			msg.Time, _ = values[tc].(time.Time)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
