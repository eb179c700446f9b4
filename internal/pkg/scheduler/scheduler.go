package scheduler

import (
	"context"
	"fmt"
	"hotel-booking-service/config"
	"hotel-booking-service/internal/pkg/log"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
)

const (
	TypeExpirePendingBooking = "booking:expire_pending"
	TypeSendBookingReceipt   = "booking:send_receipt"

	QueueDefault = "default"
)

type Scheduler struct {
	Log log.Logger
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func (s *Scheduler) StartMonitoring(cfg *config.RedisConfig, port string) {
	ctx := context.Background()
	h := asynqmon.New(asynqmon.Options{
		RootPath:     "/monitoring",
		RedisConnOpt: redisOpt(cfg),
	})

	mux := http.NewServeMux()
	mux.Handle(h.RootPath()+"/", h)

	err := http.ListenAndServe(fmt.Sprintf(":%s", port), mux)
	s.Log.Error(ctx, "error start monitoring scheduler", err)
}

func (s *Scheduler) InitClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

func (s *Scheduler) InitInspector(cfg *config.RedisConfig) *asynq.Inspector {
	return asynq.NewInspector(redisOpt(cfg))
}

func (s *Scheduler) StartHandler(cfg *config.RedisConfig, concurrency int, taskTypes []string, handlerFunc []func(ctx context.Context, t *asynq.Task) error) {
	ctx := context.Background()
	srv := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				QueueDefault: 10,
			},
		},
	)
	mux := asynq.NewServeMux()

	for i, taskType := range taskTypes {
		mux = s.registerHandlers(mux, taskType, handlerFunc[i])
	}

	if err := srv.Run(mux); err != nil {
		s.Log.Error(ctx, "error start handler scheduler", err)
	}
}

func (s *Scheduler) registerHandlers(mux *asynq.ServeMux, typeTask string, handlerFunc func(ctx context.Context, t *asynq.Task) error) *asynq.ServeMux {
	mux.HandleFunc(typeTask, handlerFunc)
	return mux
}
