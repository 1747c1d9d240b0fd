package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/jitter"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

const (
	outboxChannel    = "outbox_pending"
	outboxBatchSize  = 10
	notifyPollPeriod = 30 * time.Second
)

// OutboxWorker выгружает события заказов из транзакционного outbox в Kafka.
// Будит его NOTIFY, который чекаут шлёт в канал outbox_pending той же
// транзакцией, что и запись события; накопившийся хвост дочитывается на старте
// и по таймауту ожидания.
type OutboxWorker struct {
	repo     usecase.OutboxRepository
	producer usecase.MessageProducer
	logger   logger.Logger
	connStr  string
	stop     chan struct{}
	wg       sync.WaitGroup
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	connStr string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:     repo,
		producer: producer,
		logger:   logger,
		connStr:  connStr,
		stop:     make(chan struct{}),
	}
}

// Start запускает выгрузку: разовый прогон по хвосту и LISTEN-цикл.
func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.logger.Infof("outbox: draining pending events on startup")
		w.drain(ctx)
		w.listen(ctx)
	}()
}

// Stop останавливает воркер и дожидается завершения цикла.
func (w *OutboxWorker) Stop() {
	close(w.stop)
	w.wg.Wait()
}

// drain вычитывает outbox пачками, пока очередь не опустеет.
func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		events, err := w.repo.GetAndMarkAsProcessing(ctx, outboxBatchSize)
		if err != nil {
			w.logger.Warnf("outbox: batch fetch failed: %v", err)
			return
		}
		if len(events) == 0 {
			return
		}

		for _, event := range events {
			if err := w.publish(ctx, event); err != nil {
				w.logger.Warnf("outbox: publish event %d failed: %v", event.ID, err)
				continue
			}
			if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
				w.logger.Warnf("outbox: mark processed %d failed: %v", event.ID, err)
			}
		}
	}
}

// listen держит выделенное соединение с LISTEN и будит drain на каждое
// уведомление. При потере соединения переподключается с нарастающей паузой.
func (w *OutboxWorker) listen(ctx context.Context) {
	var attempt int

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("outbox: worker stopped")
			return
		case <-w.stop:
			return
		default:
		}

		conn, err := w.subscribe(ctx)
		if err != nil {
			w.logger.Warnf("outbox: subscribe failed: %v", err)

			pause := jitter.ExponentialBackoff(time.Second, 30*time.Second, attempt, jitter.DefaultJitter)
			attempt++
			select {
			case <-time.After(pause):
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			}
			continue
		}
		attempt = 0

		w.waitLoop(ctx, conn)
		conn.Close(ctx)
	}
}

func (w *OutboxWorker) subscribe(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, w.connStr)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
		conn.Close(ctx)
		return nil, err
	}

	w.logger.Infof("outbox: subscribed to %q", outboxChannel)
	return conn, nil
}

// waitLoop блокируется на уведомлениях до сбоя соединения или остановки.
// Таймаут ожидания заодно служит страховкой от пропущенных NOTIFY.
func (w *OutboxWorker) waitLoop(ctx context.Context, conn *pgx.Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		waitCtx, cancel := context.WithTimeout(ctx, notifyPollPeriod)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		switch {
		case err == nil:
			if notif.Channel == outboxChannel {
				w.drain(ctx)
			}
		case errors.Is(err, context.DeadlineExceeded):
			w.drain(ctx)
		case errors.Is(err, context.Canceled):
			return
		default:
			w.logger.Warnf("outbox: listen connection lost: %v", err)
			return
		}
	}
}

// publish отправляет событие в брокер. Статус события при ошибке не трогаем:
// репозиторий вернёт зависшие в processing записи в выборку по таймауту,
// так что временный сбой брокера означает лишь отложенную доставку.
func (w *OutboxWorker) publish(ctx context.Context, event *usecase.OutboxEvent) error {
	err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.OrderID, event.Payload))
	if err != nil && isRetryable(err) {
		w.logger.Debugf("outbox: transient broker failure for event %d, will retry after requeue", event.ID)
	}

	return err
}

var transientPhrases = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"i/o timeout",
	"network is unreachable",
	"broker not available",
	"no such host",
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range transientPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}

	return false
}
