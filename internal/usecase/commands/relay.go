package commands

import (
	"context"
	"log/slog"
	"time"

	"resource-hub/internal/pkg/clock"
	"resource-hub/internal/usecase/shared"
)

// EventPublisher delivers one outbox payload to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}

// RelayResult counts one pass. Unmarked jobs could not be reported back and
// stay claimed until the lease runs out, so they may be published twice.
type RelayResult struct {
	Sent     int
	Failed   int
	Unmarked int
}

// maxBackoff caps the retry delay however many attempts are configured.
const maxBackoff = time.Hour

// OutboxRelay drains queued notification jobs to the broker. Claiming and
// reporting run in separate transactions so no row lock is held while the
// broker is slow.
type OutboxRelay interface {
	Relay(ctx context.Context, limit int) (RelayResult, error)
}

type outboxRelayImpl struct {
	uow         shared.UnitOfWork
	publisher   EventPublisher
	clock       clock.Clock
	maxAttempts int
	baseBackoff time.Duration
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher EventPublisher, clk clock.Clock, maxAttempts int) OutboxRelay {
	return &outboxRelayImpl{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		maxAttempts: maxAttempts,
		baseBackoff: 30 * time.Second,
	}
}

func (uc *outboxRelayImpl) Relay(ctx context.Context, limit int) (RelayResult, error) {
	var jobs []shared.NotificationJob
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		jobs, err = tx.Notifications().ClaimDue(ctx, uc.clock.Now(), limit)
		return err
	})
	if err != nil {
		return RelayResult{}, shared.Classify(err)
	}

	var result RelayResult
	for _, job := range jobs {
		pubErr := uc.publisher.Publish(ctx, job.Topic, job.ID.String(), job.Payload)

		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if pubErr == nil {
				return tx.Notifications().MarkSent(ctx, job.ID)
			}
			return tx.Notifications().MarkFailed(ctx, job.ID, pubErr.Error(), uc.retryAt(job.Attempts))
		})
		if err != nil {
			result.Unmarked++
			slog.ErrorContext(ctx, "failed to record notification job outcome",
				"job_id", job.ID,
				"published", pubErr == nil,
				"error", err.Error())
			continue
		}

		if pubErr != nil {
			result.Failed++
			slog.WarnContext(ctx, "failed to publish notification job",
				"job_id", job.ID,
				"topic", job.Topic,
				"attempts", job.Attempts,
				"error", pubErr.Error())
			continue
		}
		result.Sent++
	}
	return result, nil
}

// retryAt backs off exponentially up to maxBackoff; nil gives the job up.
func (uc *outboxRelayImpl) retryAt(attempts int) *time.Time {
	if attempts >= uc.maxAttempts {
		return nil
	}
	delay := uc.baseBackoff
	for range attempts - 1 {
		if delay >= maxBackoff {
			break
		}
		delay *= 2
	}
	at := uc.clock.Now().Add(min(delay, maxBackoff))
	return &at
}
