// Package payment wraps the payment provider used at the ticket issuance
// boundary. Gateway specifics stay behind the Provider interface defined by
// the consuming service.
package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/palpita/lottery-api/internal/config"
)

type StripeProvider struct {
	api *client.API
}

func NewStripeProvider(conf *config.StripeConfig) *StripeProvider {
	return &StripeProvider{
		api: client.New(conf.SecretKey, nil),
	}
}

// Charge captures a payment and returns the provider's payment id.
func (p *StripeProvider) Charge(ctx context.Context, amountCents int64, paymentMethodID, description string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(string(stripe.CurrencyBRL)),
		PaymentMethod: stripe.String(paymentMethodID),
		Description:   stripe.String(description),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("p.api.PaymentIntents.New -> %w", err)
	}

	return intent.ID, nil
}
