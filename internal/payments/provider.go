package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/mechapp/internal/config"
)

const (
	ProviderPayPal      = "paypal"
	ProviderMercadoPago = "mercadopago"
)

var ErrNotConfigured = errors.New("payments: provider not configured")

type Order struct {
	Reference   string
	Description string
	Amount      float64
	Currency    string
}

type CreatedOrder struct {
	ID          string
	ApprovalURL string
}

// Provider creates and captures checkout orders on an external gateway.
type Provider interface {
	Name() string
	CreateOrder(ctx context.Context, o Order) (CreatedOrder, error)
	// Capture reports whether the order has been paid. reference is the
	// Order.Reference it was created with.
	Capture(ctx context.Context, orderID, reference string) (bool, error)
}

// NewProvider picks the gateway from PAYMENT_PROVIDER.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.PaymentProvider {
	case ProviderPayPal:
		return NewPayPal(cfg)
	case ProviderMercadoPago:
		return NewMercadoPago(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrNotConfigured, cfg.PaymentProvider)
	}
}
