package http

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.elastic.co/apm/module/apmfiber"
)

func SetupHttpEngine() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "hotel-booking-service",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(apmfiber.Middleware())

	return app
}

func StartHttpServer(app *fiber.App, port string) {
	go func() {
		if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
			log.Fatalf("error start http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down http server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("error shutdown http server: %v", err)
	}
}
