package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// CurrencyUSD is the only currency the forum charges in
const CurrencyUSD = "usd"

// ErrNotConfigured is returned when no processor key was provided
var ErrNotConfigured = errors.New("payment processor is not configured")

// IntentCreator creates a payment intent and returns its client secret
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
}

// StripeProcessor creates card payment intents through the Stripe API
type StripeProcessor struct {
	api *client.API
}

// NewStripeProcessor initializes a Stripe client. An empty key yields a processor that
// rejects every call, so the rest of the API can run without payment credentials.
func NewStripeProcessor(secretKey string) *StripeProcessor {
	if secretKey == "" {
		slog.Warn("STRIPE_SECRET_KEY not set, payment intents are disabled")
		return &StripeProcessor{}
	}
	return &StripeProcessor{api: client.New(secretKey, nil)}
}

// CreateIntent creates a card payment intent for amountMinor units of currency
func (p *StripeProcessor) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	if p.api == nil {
		return "", ErrNotConfigured
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("error creating payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}

// ToMinorUnits converts a major-unit price (dollars) to minor units (cents)
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
