package main

import (
	"context"
	"hotel-booking-service/config"
	"hotel-booking-service/internal/module/booking/handler"
	"hotel-booking-service/internal/module/booking/notification"
	"hotel-booking-service/internal/module/booking/receipt"
	"hotel-booking-service/internal/module/booking/repositories"
	"hotel-booking-service/internal/module/booking/usecases"
	"hotel-booking-service/internal/pkg/database"
	"hotel-booking-service/internal/pkg/gateway"
	"hotel-booking-service/internal/pkg/http"
	"hotel-booking-service/internal/pkg/httpclient"
	log_internal "hotel-booking-service/internal/pkg/log"
	"hotel-booking-service/internal/pkg/messagestream"
	"hotel-booking-service/internal/pkg/middleware"
	"hotel-booking-service/internal/pkg/redis"
	"hotel-booking-service/internal/pkg/scheduler"
	router "hotel-booking-service/internal/route"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters, startScheduler := initService(cfg)

	for _, router := range messageRouters {
		ctx := context.Background()
		go func(router *message.Router) {
			err := router.Run(ctx)
			if err != nil {
				log.Fatal(err)
			}
		}(router)
	}

	// start task handlers
	go startScheduler()

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router, func()) {

	// init database
	db := database.GetConnection(&cfg.Database)
	// init redis
	redisClient := redis.SetupClient(&cfg.Redis)
	rs := redis.SetupRedsync(redisClient)
	// init logger
	logZap := log_internal.SetupLogger()
	log_internal.Init(logZap)
	logger := log_internal.GetLogger()
	logHandler := log_internal.Setup()
	// init http clients, one breaker per downstream service
	userClient := httpclient.New(&cfg.HttpClient)
	hotelClient := httpclient.New(&cfg.HttpClient)
	gatewayClient := httpclient.New(&cfg.HttpClient)

	ctx := context.Background()
	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream)

	// Init Subscriber
	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Error(ctx, "Failed to create subscriber", err)
	}

	// Init Publisher
	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Error(ctx, "Failed to create publisher", err)
	}

	// init scheduler
	sch := scheduler.Scheduler{Log: logger}
	taskClient := sch.InitClient(&cfg.Redis)
	taskInspector := sch.InitInspector(&cfg.Redis)

	// init mail
	notifier, err := notification.New(ctx, &cfg.Mail)
	if err != nil {
		log.Fatalf("error init mail transport: %v", err)
	}

	bookingRepo := repositories.New(db, logger, userClient, hotelClient, redisClient, rs, &cfg.UserService, &cfg.HotelService, taskClient, taskInspector)
	paymentGateway := gateway.New(&cfg.Gateway, gatewayClient)
	renderer := receipt.New(cfg.Mail.FromName)
	bookingUsecase := usecases.New(bookingRepo, logger, publisher, paymentGateway, renderer, notifier, &cfg.Booking, &cfg.Gateway)
	middleware := middleware.Middleware{
		Log:  logHandler,
		Repo: bookingRepo,
	}

	validator := validator.New()
	bookingHandler := handler.BookingHandler{
		Log:       logHandler,
		Validator: validator,
		Usecase:   bookingUsecase,
		Publish:   publisher,
	}

	var messageRouters []*message.Router

	bookingConfirmedRouter, err := amqp.NewRouterWithRetries(publisher, messagestream.TopicBookingConfirmedPoisoned, "booking_confirmed_handler", messagestream.TopicBookingConfirmed, subscriber, bookingHandler.ConsumeBookingConfirmed)
	if err != nil {
		logger.Error(ctx, "Failed to create booking_confirmed router", err)
	}

	messageRouters = append(messageRouters, bookingConfirmedRouter)

	startScheduler := func() {
		if cfg.Scheduler.Monitoring {
			go sch.StartMonitoring(&cfg.Redis, cfg.Scheduler.MonitoringPort)
		}

		sch.StartHandler(&cfg.Redis, cfg.Scheduler.Concurrency,
			[]string{scheduler.TypeExpirePendingBooking, scheduler.TypeSendBookingReceipt},
			[]func(ctx context.Context, t *asynq.Task) error{bookingHandler.ExpirePendingBooking, bookingHandler.SendBookingReceipt},
		)
	}

	serverHttp := http.SetupHttpEngine()

	r := router.Initialize(serverHttp, &bookingHandler, &middleware)

	return r, messageRouters, startScheduler

}
