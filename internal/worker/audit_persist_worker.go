package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"gigboard/internal/model"
	"gigboard/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// AuditPersistWorker drains the audit queue and writes rows through the
// repository, keeping audit writes off the request path.
type AuditPersistWorker struct {
	conn      *amqp.Connection
	repo      *repository.AuditLogRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewAuditPersistWorker(conn *amqp.Connection, repo *repository.AuditLogRepository, queueName string) *AuditPersistWorker {
	return &AuditPersistWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *AuditPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare audit queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume audit queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()
		w.consume(workerCtx, deliveries)
	}()

	return nil
}

// consume drains deliveries until the channel closes or ctx is canceled.
// It is separated from Start so the decode and persist path can run against
// a hand-fed channel without a broker.
func (w *AuditPersistWorker) consume(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}

			var entry model.AuditLog
			if err := json.Unmarshal(d.Body, &entry); err != nil {
				logger.Error().Err(err).Msg("decode audit entry failed")
				_ = d.Nack(false, false)
				continue
			}

			if err := w.repo.Create(&entry); err != nil {
				logger.Error().Err(err).Msg("persist audit entry failed")
				_ = d.Nack(false, false)
				continue
			}

			_ = d.Ack(false)
		}
	}
}

func (w *AuditPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
