package service

import (
	"context"
	"fmt"

	"worktrack/internal/model"
	"worktrack/internal/paymentclient"
	"worktrack/internal/repository"
	"worktrack/pkg/timer"
	"worktrack/pkg/util"

	"go.uber.org/zap"
)

// PaymentService handles payment intents and payment records
type PaymentService struct {
	repo    repository.IPaymentRepository
	users   repository.IUserRepository
	gateway paymentclient.Gateway
	logger  *zap.Logger
}

// PartialPaymentError reports a payment that was stored while the
// employee's paid flag could not be set. Nothing is rolled back.
type PartialPaymentError struct {
	Result *model.InsertResult
	Err    error
}

func (e *PartialPaymentError) Error() string {
	return fmt.Sprintf("payment %s recorded but employee not marked paid: %v", util.IDString(e.Result.InsertedID), e.Err)
}

func (e *PartialPaymentError) Unwrap() error { return ErrUpstream }

// NewPaymentService creates a new payment service
func NewPaymentService(repo repository.IPaymentRepository, users repository.IUserRepository, gateway paymentclient.Gateway, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.L()
	}
	return &PaymentService{repo: repo, users: users, gateway: gateway, logger: logger}
}

// CreateIntent validates the price and asks the gateway for a USD payment
// intent of round(price*100) cents. Returns the client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, price model.Price) (string, error) {
	amount, err := price.Float()
	if err != nil || amount < 1 {
		return "", fmt.Errorf("price %q: %w", string(price), ErrInvalidInput)
	}
	cents, err := model.MinorUnits(amount)
	if err != nil {
		return "", fmt.Errorf("price %q: %v: %w", string(price), err, ErrInvalidInput)
	}

	defer timer.Track(s.logger, "create payment intent")()
	intent, err := s.gateway.CreateIntent(ctx, cents, model.CurrencyUSD)
	if err != nil {
		s.logger.Error("error creating payment intent", zap.Error(err))
		return "", fmt.Errorf("create payment intent: %w", ErrUpstream)
	}
	return intent.ClientSecret, nil
}

// Record stores the payment then marks the referenced employee as paid.
// The two writes are independent; a failure of the second leaves the
// payment in place and is reported as *PartialPaymentError.
func (s *PaymentService) Record(ctx context.Context, payment model.Document) (*model.PaymentRecordResult, error) {
	employeeID, err := util.ParseObjectID(payment.String(model.FieldEmployeeID))
	if err != nil {
		return nil, fmt.Errorf("employee id: %w", ErrInvalidInput)
	}

	sw := timer.NewStopwatch(s.logger)
	defer sw.Total("record payment")

	inserted, err := s.repo.Create(ctx, payment)
	sw.Lap("insert payment")
	if err != nil {
		s.logger.Error("save payment failed", zap.String("employeeId", employeeID.Hex()), zap.Error(err))
		return nil, fmt.Errorf("save payment: %w", ErrUpstream)
	}

	updated, err := s.users.UpdateByID(ctx, employeeID, model.Document{model.FieldPaid: true})
	sw.Lap("mark employee paid")
	if err != nil {
		s.logger.Error("payment recorded but employee not marked paid",
			zap.String("paymentId", util.IDString(inserted.InsertedID)),
			zap.String("employeeId", employeeID.Hex()),
			zap.Error(err),
		)
		return nil, &PartialPaymentError{Result: inserted, Err: err}
	}

	s.logger.Info("payment recorded",
		zap.String("paymentId", util.IDString(inserted.InsertedID)),
		zap.String("employeeId", employeeID.Hex()),
		zap.Int64("matched", updated.MatchedCount),
		zap.Int64("modified", updated.ModifiedCount),
	)
	return &model.PaymentRecordResult{Result: inserted, UpdatedPayment: updated}, nil
}

// ListByEmail returns payments whose email field equals email
func (s *PaymentService) ListByEmail(ctx context.Context, email string) ([]model.Document, error) {
	payments, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("list payments failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("list payments: %w", ErrUpstream)
	}
	return payments, nil
}
