package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionForwardsValues(t *testing.T) {
	ctx := context.Background()
	channel := make(chan int, 1)
	sub := NewSubscription(channel)
	defer sub.Unsubscribe()

	require.NoError(t, sub.Send(ctx, 42))

	select {
	case value := <-channel:
		assert.Equal(t, 42, value)
	case <-time.After(5 * time.Second):
		t.Fatal("expected forwarded value")
	}
}

func TestSubscriptionSendAfterUnsubscribe(t *testing.T) {
	ctx := context.Background()
	channel := make(chan int)
	sub := NewSubscription(channel)
	sub.Unsubscribe()

	require.True(t, sub.IsClosed())

	// The in channel is buffered, so the first sends may still be accepted;
	// once the buffer is full a closed subscription must report the error.
	var err error
	for i := 0; i <= SubscriptionBufferSize; i++ {
		if err = sub.Send(ctx, i); err != nil {
			break
		}
	}
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.InternalError))
}
