package paymentclient

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
)

// Intent is the part of a gateway payment intent the service hands back.
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway creates payment intents with an external payment provider.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}

// StripeGateway is the Stripe implementation of Gateway.
type StripeGateway struct {
	api *client.API
}

var _ Gateway = (*StripeGateway)(nil)

// NewStripeGateway builds a Stripe client that never retries and logs
// through zap. A nil backend selects Stripe's public API.
func NewStripeGateway(secretKey string, backend stripe.Backend, logger *zap.Logger) *StripeGateway {
	if logger == nil {
		logger = zap.L()
	}
	if backend == nil {
		backend = stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			MaxNetworkRetries: stripe.Int64(0),
			LeveledLogger:     logger.Sugar(),
		})
	}
	api := client.New(secretKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})
	return &StripeGateway{api: api}
}

// NewBackend returns a Stripe backend pointed at url, used to talk to
// stripe-mock or a test server.
func NewBackend(url string, logger *zap.Logger) stripe.Backend {
	if logger == nil {
		logger = zap.L()
	}
	return stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(url),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     logger.Sugar(),
	})
}

// CreateIntent requests a payment intent for amount minor units with
// automatic payment method selection.
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
