package server

import (
	"context"
	"fmt"
	"time"

	"worktrack/internal/config"
	"worktrack/internal/handler"
	"worktrack/internal/paymentclient"
	"worktrack/internal/repository"
	"worktrack/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	connectTimeout    = 10 * time.Second
	disconnectTimeout = 10 * time.Second
)

// Repositories groups the collection accessors
type Repositories struct {
	Users    repository.IUserRepository
	Work     repository.IWorkRecordRepository
	Payments repository.IPaymentRepository
	Messages repository.IMessageRepository
}

// Services groups the business services
type Services struct {
	User    *service.UserService
	Work    *service.WorkService
	Payment *service.PaymentService
	Message *service.MessageService
}

// Handlers groups the HTTP handlers
type Handlers struct {
	User    *handler.UserHandler
	Work    *handler.WorkHandler
	Payment *handler.PaymentHandler
	Message *handler.MessageHandler
	Health  *handler.HealthHandler
}

// Connect creates the MongoDB client. The connectivity check only logs on
// failure; the driver keeps trying to reach the cluster in the background.
func Connect(ctx context.Context, cfg config.MongoConfig, tp trace.TracerProvider, logger *zap.Logger) (*mongo.Client, error) {
	if logger == nil {
		logger = zap.L()
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetServerAPIOptions(serverAPI).
		SetMonitor(otelmongo.NewMonitor(otelmongo.WithTracerProvider(tp)))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Warn("mongodb ping failed", zap.Error(err))
	} else {
		logger.Info("connected to mongodb", zap.String("database", cfg.Database))
	}
	return client, nil
}

// Disconnect closes the MongoDB client
func Disconnect(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, disconnectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:    repository.NewUserRepository(db),
		Work:     repository.NewWorkRecordRepository(db),
		Payments: repository.NewPaymentRepository(db),
		Messages: repository.NewMessageRepository(db),
	}
}

func InitServices(cfg *config.Config, repos *Repositories, gateway paymentclient.Gateway, logger *zap.Logger) *Services {
	return &Services{
		User:    service.NewUserService(cfg, repos.Users, repos.Payments, logger.Named("users")),
		Work:    service.NewWorkService(repos.Work, logger.Named("work")),
		Payment: service.NewPaymentService(repos.Payments, repos.Users, gateway, logger.Named("payments")),
		Message: service.NewMessageService(repos.Messages, logger.Named("messages")),
	}
}

func InitHandlers(services *Services) *Handlers {
	return &Handlers{
		User:    handler.NewUserHandler(services.User),
		Work:    handler.NewWorkHandler(services.Work),
		Payment: handler.NewPaymentHandler(services.Payment),
		Message: handler.NewMessageHandler(services.Message),
		Health:  handler.NewHealthHandler(),
	}
}
