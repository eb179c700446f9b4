package messagestream

import (
	"fmt"
	"hotel-booking-service/config"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

const (
	TopicBookingConfirmed         = "booking_confirmed"
	TopicBookingConfirmedPoisoned = "booking_confirmed_poisoned"
	TopicPaymentAlert             = "payment_alert"
)

type Amqp struct {
	cfg    *config.MessageStreamConfig
	amqp   amqp.Config
	logger watermill.LoggerAdapter
}

func NewAmpq(cfg *config.MessageStreamConfig) *Amqp {
	uri := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.Username, cfg.Password, cfg.Host, cfg.Port)
	return &Amqp{
		cfg:    cfg,
		amqp:   amqp.NewDurableQueueConfig(uri),
		logger: watermill.NewStdLogger(false, false),
	}
}

func (a *Amqp) NewSubscriber() (message.Subscriber, error) {
	return amqp.NewSubscriber(a.amqp, a.logger)
}

func (a *Amqp) NewPublisher() (message.Publisher, error) {
	return amqp.NewPublisher(a.amqp, a.logger)
}

// NewRouterWithRetries wires one consumer with retry and a poison queue. A message that still
// fails after cfg.MaxRetries lands on poisonedTopic instead of blocking the queue.
func (a *Amqp) NewRouterWithRetries(pub message.Publisher, poisonedTopic string, handlerName string, subscribeTopic string, subs message.Subscriber, handlerFunc message.NoPublishHandlerFunc) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, a.logger)
	if err != nil {
		return nil, err
	}

	poisonQueue, err := middleware.PoisonQueue(pub, poisonedTopic)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		middleware.Recoverer,
		poisonQueue,
		middleware.Retry{
			MaxRetries:      a.cfg.MaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
			Multiplier:      2,
			Logger:          a.logger,
		}.Middleware,
	)

	router.AddNoPublisherHandler(handlerName, subscribeTopic, subs, handlerFunc)

	return router, nil
}
