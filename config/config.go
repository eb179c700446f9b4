package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer    HttpServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	MessageStream MessageStreamConfig
	HttpClient    HttpClientConfig
	UserService   UserServiceConfig
	HotelService  HotelServiceConfig
	Gateway       GatewayConfig
	Mail          MailConfig
	Booking       BookingConfig
	Scheduler     SchedulerConfig
}

type HttpServerConfig struct {
	Port string `envconfig:"HTTP_SERVER_PORT" default:"9000"`
	Name string `envconfig:"HTTP_SERVER_NAME" default:"hotel-booking-service"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DATABASE_HOST" default:"localhost"`
	Port     string `envconfig:"DATABASE_PORT" default:"5432"`
	Username string `envconfig:"DATABASE_USERNAME" default:"postgres"`
	Password string `envconfig:"DATABASE_PASSWORD"`
	Name     string `envconfig:"DATABASE_NAME" default:"booking"`
	SSLMode  string `envconfig:"DATABASE_SSLMODE" default:"disable"`
	MaxOpen  int    `envconfig:"DATABASE_MAX_OPEN_CONNS" default:"20"`
	MaxIdle  int    `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MessageStreamConfig struct {
	Host       string `envconfig:"MESSAGE_STREAM_HOST" default:"localhost"`
	Port       string `envconfig:"MESSAGE_STREAM_PORT" default:"5672"`
	Username   string `envconfig:"MESSAGE_STREAM_USERNAME" default:"guest"`
	Password   string `envconfig:"MESSAGE_STREAM_PASSWORD" default:"guest"`
	MaxRetries int    `envconfig:"MESSAGE_STREAM_MAX_RETRIES" default:"3"`
}

type HttpClientConfig struct {
	// Type selects the breaker: consecutive, threshold or rate.
	Type       string        `envconfig:"HTTP_CLIENT_TYPE" default:"consecutive"`
	Timeout    time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10s"`
	Threshold  int64         `envconfig:"HTTP_CLIENT_THRESHOLD" default:"5"`
	Rate       float64       `envconfig:"HTTP_CLIENT_RATE" default:"0.5"`
	MinSamples int64         `envconfig:"HTTP_CLIENT_MIN_SAMPLES" default:"10"`
}

type UserServiceConfig struct {
	Host string `envconfig:"USER_SERVICE_HOST" default:"localhost"`
	Port string `envconfig:"USER_SERVICE_PORT" default:"9001"`
}

type HotelServiceConfig struct {
	Host string `envconfig:"HOTEL_SERVICE_HOST" default:"localhost"`
	Port string `envconfig:"HOTEL_SERVICE_PORT" default:"9002"`
}

type GatewayConfig struct {
	BaseURL       string        `envconfig:"GATEWAY_BASE_URL" default:"https://api.razorpay.com"`
	KeyID         string        `envconfig:"GATEWAY_KEY_ID"`
	KeySecret     string        `envconfig:"GATEWAY_KEY_SECRET"`
	WebhookSecret string        `envconfig:"GATEWAY_WEBHOOK_SECRET"`
	Timeout       time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"8s"`
	Currency      string        `envconfig:"GATEWAY_CURRENCY" default:"INR"`
}

type MailConfig struct {
	// Transport is smtp or ses.
	Transport string        `envconfig:"MAIL_TRANSPORT" default:"smtp"`
	Host      string        `envconfig:"SMTP_HOST" default:"localhost"`
	Port      int           `envconfig:"SMTP_PORT" default:"587"`
	Username  string        `envconfig:"SMTP_USERNAME"`
	Password  string        `envconfig:"SMTP_PASSWORD"`
	From      string        `envconfig:"MAIL_FROM" default:"no-reply@hotel-booking.local"`
	FromName  string        `envconfig:"MAIL_FROM_NAME" default:"Hotel Booking"`
	Timeout   time.Duration `envconfig:"MAIL_TIMEOUT" default:"15s"`
	SESRegion string        `envconfig:"SES_REGION" default:"ap-south-1"`
}

type BookingConfig struct {
	// PaymentExpiry cancels unpaid bookings after the order is created. Zero disables it.
	PaymentExpiry time.Duration `envconfig:"BOOKING_PAYMENT_EXPIRY" default:"30m"`
	ReceiptLock   time.Duration `envconfig:"BOOKING_RECEIPT_LOCK" default:"1m"`
	WebhookDedup  time.Duration `envconfig:"BOOKING_WEBHOOK_DEDUP_TTL" default:"24h"`
	ReceiptMarker time.Duration `envconfig:"BOOKING_RECEIPT_MARKER_TTL" default:"168h"`
}

type SchedulerConfig struct {
	Concurrency    int    `envconfig:"SCHEDULER_CONCURRENCY" default:"10"`
	MonitoringPort string `envconfig:"SCHEDULER_MONITORING_PORT" default:"8080"`
	Monitoring     bool   `envconfig:"SCHEDULER_MONITORING" default:"false"`
}

func InitConfig() *Config {
	// .env is optional, real deployments inject the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	var cfg Config
	// each section is processed on its own so the tags stay flat env names
	sections := []interface{}{
		&cfg.HttpServer,
		&cfg.Database,
		&cfg.Redis,
		&cfg.MessageStream,
		&cfg.HttpClient,
		&cfg.UserService,
		&cfg.HotelService,
		&cfg.Gateway,
		&cfg.Mail,
		&cfg.Booking,
		&cfg.Scheduler,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			log.Fatalf("error load config: %v", err)
		}
	}

	return &cfg
}
