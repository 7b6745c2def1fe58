//go:build unit

package broker

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	err    error
	msgs   []kafka.Message
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("success: topic is prefixed and keyed by reservation", func(t *testing.T) {
		w := &recordingWriter{}
		p := newKafkaPublisher(w, "hub.")

		err := p.Publish(ctx, "reservation.approved", "r-1", []byte(`{"id":"r-1"}`))

		require.NoError(t, err)
		require.Len(t, w.msgs, 1)
		assert.Equal(t, "hub.reservation.approved", w.msgs[0].Topic)
		assert.Equal(t, []byte("r-1"), w.msgs[0].Key)
		assert.JSONEq(t, `{"id":"r-1"}`, string(w.msgs[0].Value))
		assert.False(t, w.msgs[0].Time.IsZero())
	})

	t.Run("error: writer failure is returned", func(t *testing.T) {
		w := &recordingWriter{err: errors.New("leader not available")}
		p := newKafkaPublisher(w, "")

		err := p.Publish(ctx, "reservation.created", "r-2", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "leader not available")
	})

	t.Run("close reaches the writer", func(t *testing.T) {
		w := &recordingWriter{}
		require.NoError(t, newKafkaPublisher(w, "").Close())
		assert.True(t, w.closed)
	})
}

func TestLogPublisher(t *testing.T) {
	var p LogPublisher
	assert.NoError(t, p.Publish(context.Background(), "reservation.created", "r-1", []byte("{}")))
	assert.NoError(t, p.Close())
}
