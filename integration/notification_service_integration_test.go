package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	reposql "github.com/smonzon/registration-service/internal/repository/sql"
	"github.com/smonzon/registration-service/internal/service"
	sqspkg "github.com/smonzon/registration-service/internal/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSQSClient implements the ConsumerAPI interface for testing.
type MockSQSClient struct {
	mock.Mock
}

func (m *MockSQSClient) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.ReceiveMessageOutput), args.Error(1)
}

func (m *MockSQSClient) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.DeleteMessageOutput), args.Error(1)
}

func TestNotificationService_Integration(t *testing.T) {
	t.Run("user change message refreshes the feed from the database", func(t *testing.T) {
		testDB := SetupTestDB(t)
		defer testDB.Cleanup(t)
		testDB.TruncateTables(t)

		ctx := context.Background()
		userRepo := reposql.NewUserRepository(testDB.DB)
		registrationRepo := reposql.NewRegistrationRepository(testDB.DB)
		registrationService := service.NewRegistrationService(userRepo, registrationRepo)

		feed := service.NewUserFeed(userRepo, 50*time.Millisecond)

		feedCtx, cancelFeed := context.WithCancel(ctx)
		defer cancelFeed()
		feedDone := make(chan struct{})
		go func() {
			defer close(feedDone)
			feed.Run(feedCtx)
		}()

		// a user registers while the feed is running
		created, err := registrationService.Register(ctx, registrationInput("ana@example.com", "AB123456"))
		require.NoError(t, err)

		// the registration service's change notification arrives via SQS
		msgBody, err := json.Marshal(sqspkg.UserMessage{
			Action: "registered",
			UserID: created.ID.String(),
			Email:  created.Email,
			Name:   created.Name,
		})
		require.NoError(t, err)

		receiptHandle := "test-receipt-handle"
		messageBody := string(msgBody)

		mockClient := new(MockSQSClient)
		mockClient.On("ReceiveMessage", mock.Anything, mock.Anything).Return(
			&sqs.ReceiveMessageOutput{
				Messages: []types.Message{
					{
						Body:          &messageBody,
						ReceiptHandle: &receiptHandle,
					},
				},
			},
			nil,
		).Once()

		mockClient.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(params *sqs.DeleteMessageInput) bool {
			return *params.ReceiptHandle == receiptHandle
		})).Return(&sqs.DeleteMessageOutput{}, nil).Once()

		// Return empty messages on subsequent calls to avoid busy work
		mockClient.On("ReceiveMessage", mock.Anything, mock.Anything).Return(
			&sqs.ReceiveMessageOutput{Messages: []types.Message{}},
			nil,
		)

		queueURL := "https://sqs.us-east-1.amazonaws.com/123456789/test-queue"
		consumer := sqspkg.NewConsumer(mockClient, queueURL, func(_ context.Context, _ sqspkg.UserMessage) error {
			feed.Notify()
			return nil
		})

		consumerCtx, cancelConsumer := context.WithTimeout(ctx, 2*time.Second)
		defer cancelConsumer()
		go func() {
			_ = consumer.Start(consumerCtx)
		}()

		// when: the notification lands, the feed refetches after the quiet window
		require.Eventually(t, func() bool {
			users := feed.Snapshot()
			return len(users) == 1 && users[0].Email == "ana@example.com"
		}, 2*time.Second, 20*time.Millisecond)

		cancelConsumer()
		cancelFeed()
		<-feedDone

		mockClient.AssertCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
		assert.Len(t, feed.Snapshot(), 1)
	})
}
