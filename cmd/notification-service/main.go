package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smonzon/registration-service/internal/config"
	"github.com/smonzon/registration-service/internal/logger"
	"github.com/smonzon/registration-service/internal/repository/sql"
	"github.com/smonzon/registration-service/internal/service"
	sqspkg "github.com/smonzon/registration-service/internal/sqs"
)

const feedDebounce = 500 * time.Millisecond

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)
	defer db.Close()

	userRepository := sql.NewUserRepository(db)

	// A burst of registrations collapses into one refetch per debounce window
	feed := service.NewUserFeed(userRepository, feedDebounce)
	go feed.Run(ctx)

	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("creating SQS client", err)

	consumer := sqspkg.NewConsumer(sqsClient, conf.AWS.SQSQueueURL, func(_ context.Context, msg sqspkg.UserMessage) error {
		feed.Notify()
		return nil
	})

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Consumer error", slog.Any("err", err))
		}
	}()

	log.Println("Notification service started. Listening for user changes...")

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
