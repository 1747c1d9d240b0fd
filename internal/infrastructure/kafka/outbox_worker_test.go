package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeOutboxQueue имитирует контракт репозитория outbox: выборка забирает
// ожидающие события, а при requeueStale — и зависшие в processing, как
// делает репозиторий по истечении таймаута.
type fakeOutboxQueue struct {
	events       []*usecase.OutboxEvent
	requeueStale bool
}

func (q *fakeOutboxQueue) Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	cp := *event
	cp.ID = int64(len(q.events) + 1)
	q.events = append(q.events, &cp)
	return &cp, nil
}

func (q *fakeOutboxQueue) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	var batch []*usecase.OutboxEvent
	for _, ev := range q.events {
		if len(batch) == limit {
			break
		}
		if ev.Status == usecase.Pending || (q.requeueStale && ev.Status == usecase.Processing) {
			ev.Status = usecase.Processing
			batch = append(batch, ev)
		}
	}
	return batch, nil
}

func (q *fakeOutboxQueue) MarkAsProcessed(ctx context.Context, id int64) error {
	for _, ev := range q.events {
		if ev.ID == id {
			ev.Status = usecase.Processed
		}
	}
	return nil
}

// flakyProducer отказывает первым failures вызовам, затем принимает всё.
type flakyProducer struct {
	failures int
	calls    int
}

func (p *flakyProducer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("dial tcp: connection refused")
	}
	return nil
}

func pendingEvent(id int64) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:      id,
		OrderID: id,
		Payload: []byte(`{"event_type":"order.created"}`),
		Status:  usecase.Pending,
	}
}

func TestOutboxWorker_DrainPublishesBatch(t *testing.T) {
	queue := &fakeOutboxQueue{events: []*usecase.OutboxEvent{pendingEvent(1), pendingEvent(2)}}
	producer := &flakyProducer{}
	w := NewOutboxWorker(queue, nopLogger{}, producer, "")

	w.drain(context.Background())

	assert.Equal(t, 2, producer.calls)
	for _, ev := range queue.events {
		assert.Equal(t, usecase.Processed, ev.Status)
	}
}

// Событие, чья публикация сорвалась, остаётся в processing и доставляется
// повторно, когда выборка вернёт его как зависшее.
func TestOutboxWorker_RedeliversStalledEvent(t *testing.T) {
	queue := &fakeOutboxQueue{events: []*usecase.OutboxEvent{pendingEvent(1)}}
	producer := &flakyProducer{failures: 1}
	w := NewOutboxWorker(queue, nopLogger{}, producer, "")

	w.drain(context.Background())
	require.Equal(t, usecase.Processing, queue.events[0].Status)

	queue.requeueStale = true
	w.drain(context.Background())

	assert.Equal(t, usecase.Processed, queue.events[0].Status)
	assert.Equal(t, 2, producer.calls, "доставка не реже одного раза: после сбоя событие уходит повторно")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(errors.New("dial tcp 10.0.0.5:9092: connection refused")))
	assert.True(t, isRetryable(errors.New("write: broken pipe")))
	assert.True(t, isRetryable(errors.New("read tcp: i/o timeout")))
	assert.False(t, isRetryable(errors.New("invalid message format")))
	assert.False(t, isRetryable(nil))
}
