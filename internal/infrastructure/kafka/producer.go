package kafka

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Producer публикует события заказов в Kafka. Payload готовится при записи
// в outbox и отправляется как есть; ключ — идентификатор заказа, чтобы все
// события одного заказа попадали в одну партицию.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, kafkaCfg *cfg.KafkaCfg) (*Producer, error) {
	p := &Producer{logger: logger, cfg: kafkaCfg}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(kafkaCfg.Brokers...),
		Topic:        kafkaCfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    outboxBatchSize,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion:   p.onCompletion,
	}

	return p, nil
}

func (p *Producer) onCompletion(messages []kafka.Message, err error) {
	if err != nil {
		p.logger.Warnf("kafka: delivery of %d message(s) failed: %v", len(messages), err)
	}
}

func (p *Producer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(req.OrderID, 10)),
		Value: req.Payload,
	})
}

// EnsureTopic создаёт топик событий, если его ещё нет.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	if partitions, err := conn.ReadPartitions(p.cfg.Topic); err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("create topic %s: timed out after %v", p.cfg.Topic, timeout))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
