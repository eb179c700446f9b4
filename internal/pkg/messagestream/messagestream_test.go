package messagestream_test

import (
	"context"
	stderrors "errors"
	"hotel-booking-service/config"
	"hotel-booking-service/internal/pkg/messagestream"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouterWithRetries(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poisoned, err := pubSub.Subscribe(ctx, messagestream.TopicBookingConfirmedPoisoned)
	require.NoError(t, err)

	var attempts atomic.Int32
	amqp := messagestream.NewAmpq(&config.MessageStreamConfig{MaxRetries: 1})
	router, err := amqp.NewRouterWithRetries(pubSub, messagestream.TopicBookingConfirmedPoisoned, "booking_confirmed_handler", messagestream.TopicBookingConfirmed, pubSub, func(msg *message.Message) error {
		attempts.Add(1)
		return stderrors.New("mail transport down")
	})
	require.NoError(t, err)

	go func() {
		_ = router.Run(ctx)
	}()
	defer router.Close()
	<-router.Running()

	require.NoError(t, pubSub.Publish(messagestream.TopicBookingConfirmed, message.NewMessage(watermill.NewUUID(), []byte(`{"booking_id":"b-1"}`))))

	select {
	case msg := <-poisoned:
		msg.Ack()
		assert.Equal(t, `{"booking_id":"b-1"}`, string(msg.Payload))
		assert.Equal(t, messagestream.TopicBookingConfirmed, msg.Metadata.Get(middleware.PoisonedTopicKey))
		assert.Equal(t, int32(2), attempts.Load())
	case <-ctx.Done():
		t.Fatal("message never reached the poison queue")
	}
}
