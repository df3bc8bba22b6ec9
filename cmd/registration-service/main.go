package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smonzon/registration-service/internal/config"
	httpAPI "github.com/smonzon/registration-service/internal/http"
	"github.com/smonzon/registration-service/internal/http/controller"
	"github.com/smonzon/registration-service/internal/logger"
	"github.com/smonzon/registration-service/internal/metrics"
	"github.com/smonzon/registration-service/internal/repository/sql"
	"github.com/smonzon/registration-service/internal/service"
	sqspkg "github.com/smonzon/registration-service/internal/sqs"
)

const outboxInterval = 2 * time.Second

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)
	defer db.Close()

	// Repositories share the one injected connection pool
	userRepository := sql.NewUserRepository(db)
	registrationRepository := sql.NewRegistrationRepository(db)
	eventRepository := sql.NewEventRepository(db)

	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("creating SQS client", err)
	sqsPublisher := sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)

	registrationService := service.NewRegistrationService(userRepository, registrationRepository)

	// Publish committed registrations from the outbox
	outboxWorker := service.NewOutboxWorker(eventRepository, sqsPublisher, outboxInterval)
	go outboxWorker.Start(ctx)

	ctr := controller.New(conf)
	regCtr := controller.NewRegistrationController(registrationService)
	httpServer := gin.Default()
	httpServer = httpAPI.InitRouter(conf, httpServer, ctr, regCtr)

	go func() {
		err = httpServer.Run(":" + conf.HTTPServer.Port)
		if err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
	cancel()
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
