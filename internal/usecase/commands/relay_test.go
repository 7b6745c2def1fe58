//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resource-hub/internal/pkg/errs"
	"resource-hub/internal/usecase/commands"
	"resource-hub/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic   string
	key     string
	payload []byte
}

type fakePublisher struct {
	err  error
	sent []published
}

func (p *fakePublisher) Publish(_ context.Context, topic, key string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{topic: topic, key: key, payload: payload})
	return nil
}

type relayFixture struct {
	*fixture
	publisher *fakePublisher
	relay     commands.OutboxRelay
}

func newRelayFixture(t *testing.T, maxAttempts int) *relayFixture {
	f := newFixture(t)
	pub := &fakePublisher{}
	return &relayFixture{
		fixture:   f,
		publisher: pub,
		relay:     commands.NewOutboxRelay(f.store, pub, f.clock, maxAttempts),
	}
}

func TestOutboxRelay(t *testing.T) {
	ctx := context.Background()

	t.Run("success: due jobs are published and marked sent", func(t *testing.T) {
		f := newRelayFixture(t, 3)
		r := f.create(t, f.students[0], 2*time.Hour, 4*time.Hour)

		result, err := f.relay.Relay(ctx, 10)
		require.NoError(t, err)

		assert.Equal(t, commands.RelayResult{Sent: 1}, result)
		require.Len(t, f.publisher.sent, 1)
		assert.Equal(t, commands.EventCreated, f.publisher.sent[0].topic)
		assert.Contains(t, string(f.publisher.sent[0].payload), r.ID().String())

		jobs := f.store.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, "sent", jobs[0].Status)
		assert.Equal(t, 1, jobs[0].Attempts)
		assert.Equal(t, jobs[0].ID.String(), f.publisher.sent[0].key)

		result, err = f.relay.Relay(ctx, 10)
		require.NoError(t, err)
		assert.Zero(t, result.Sent, "sent jobs are not relayed again")
	})

	t.Run("success: limit bounds one pass", func(t *testing.T) {
		f := newRelayFixture(t, 3)
		f.create(t, f.students[0], 2*time.Hour, 3*time.Hour)
		f.create(t, f.students[0], 3*time.Hour, 4*time.Hour)

		result, err := f.relay.Relay(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Sent)

		result, err = f.relay.Relay(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Sent)
	})

	t.Run("failure: job is requeued with backoff", func(t *testing.T) {
		f := newRelayFixture(t, 3)
		f.create(t, f.students[0], 2*time.Hour, 4*time.Hour)
		f.publisher.err = errors.New("broker down")

		result, err := f.relay.Relay(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Failed: 1}, result)

		job := f.store.Jobs()[0]
		assert.Equal(t, "queued", job.Status)
		assert.Equal(t, t0.Add(30*time.Second), job.RunAt)
		require.NotNil(t, job.LastError)
		assert.Equal(t, "broker down", *job.LastError)

		result, err = f.relay.Relay(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{}, result, "not due before the backoff elapses")

		f.clock.Add(30 * time.Second)
		_, err = f.relay.Relay(ctx, 10)
		require.NoError(t, err)
		job = f.store.Jobs()[0]
		assert.Equal(t, 2, job.Attempts)
		assert.Equal(t, t0.Add(90*time.Second), job.RunAt, "second retry waits twice as long")
	})

	t.Run("failure: job is given up after max attempts", func(t *testing.T) {
		f := newRelayFixture(t, 2)
		f.create(t, f.students[0], 2*time.Hour, 4*time.Hour)
		f.publisher.err = errors.New("broker down")

		_, err := f.relay.Relay(ctx, 10)
		require.NoError(t, err)
		f.clock.Add(time.Minute)
		_, err = f.relay.Relay(ctx, 10)
		require.NoError(t, err)

		job := f.store.Jobs()[0]
		assert.Equal(t, "failed", job.Status)
		assert.Equal(t, 2, job.Attempts)

		f.publisher.err = nil
		f.clock.Add(time.Hour)
		result, err := f.relay.Relay(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{}, result)
	})

	t.Run("failure: retry delay is capped for long retry budgets", func(t *testing.T) {
		f := newRelayFixture(t, 100)
		f.create(t, f.students[0], 2*time.Hour, 4*time.Hour)
		f.publisher.err = errors.New("broker down")

		var delay time.Duration
		for range 40 {
			_, err := f.relay.Relay(ctx, 10)
			require.NoError(t, err)

			job := f.store.Jobs()[0]
			require.Equal(t, "queued", job.Status)
			delay = job.RunAt.Sub(f.clock.Now())
			require.True(t, delay > 0 && delay <= time.Hour, "attempt %d waits %s", job.Attempts, delay)
			f.clock.Add(delay)
		}

		assert.Equal(t, 40, f.store.Jobs()[0].Attempts)
		assert.Equal(t, time.Hour, delay)
	})

	t.Run("failure: an unrecorded outcome does not strand the rest of the batch", func(t *testing.T) {
		f := newRelayFixture(t, 3)
		f.create(t, f.students[0], 2*time.Hour, 3*time.Hour)
		f.create(t, f.students[0], 3*time.Hour, 4*time.Hour)
		// The claim commits; reporting the first job fails.
		f.store.FailTxAfter(1, errs.Mark(errs.New("connection reset"), errs.ErrTransient))

		result, err := f.relay.Relay(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Sent: 1, Unmarked: 1}, result)
		assert.Len(t, f.publisher.sent, 2)

		jobs := f.store.Jobs()
		assert.Equal(t, "running", jobs[0].Status)
		assert.Equal(t, "sent", jobs[1].Status)

		result, err = f.relay.Relay(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{}, result, "claim is held until the lease runs out")

		f.clock.Add(shared.ClaimLease + time.Second)
		result, err = f.relay.Relay(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Sent: 1}, result)

		jobs = f.store.Jobs()
		assert.Equal(t, "sent", jobs[0].Status)
		assert.Equal(t, 2, jobs[0].Attempts)
	})

	t.Run("error: claim failure is returned classified", func(t *testing.T) {
		f := newRelayFixture(t, 3)
		f.store.FailNextTx(errs.Mark(errs.New("connection reset"), errs.ErrTransient))

		_, err := f.relay.Relay(ctx, 10)
		assert.Equal(t, errs.KindTransient, errs.KindOf(err))
	})
}
