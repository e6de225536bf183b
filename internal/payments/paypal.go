package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/plutov/paypal/v4"

	"github.com/BruksfildServices01/mechapp/internal/config"
)

type PayPal struct {
	mu     sync.Mutex
	client *paypal.Client
}

func NewPayPal(cfg *config.Config) (*PayPal, error) {
	if cfg.PayPalClientID == "" || cfg.PayPalSecret == "" {
		return nil, fmt.Errorf("%w: paypal credentials missing", ErrNotConfigured)
	}

	base := paypal.APIBaseLive
	if cfg.PayPalSandbox {
		base = paypal.APIBaseSandBox
	}

	client, err := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalSecret, base)
	if err != nil {
		return nil, fmt.Errorf("paypal client: %w", err)
	}
	return &PayPal{client: client}, nil
}

func (p *PayPal) Name() string { return ProviderPayPal }

// The client refreshes an expiring token on its own but never fetches the first one.
func (p *PayPal) ensureToken(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client.Token != nil {
		return nil
	}
	if _, err := p.client.GetAccessToken(ctx); err != nil {
		return fmt.Errorf("paypal token: %w", err)
	}
	return nil
}

func (p *PayPal) CreateOrder(ctx context.Context, o Order) (CreatedOrder, error) {
	if err := p.ensureToken(ctx); err != nil {
		return CreatedOrder{}, err
	}

	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, []paypal.PurchaseUnitRequest{{
		ReferenceID: o.Reference,
		Description: o.Description,
		Amount: &paypal.PurchaseUnitAmount{
			Currency: o.Currency,
			Value:    FormatAmount(o.Amount),
		},
	}}, nil, nil)
	if err != nil {
		return CreatedOrder{}, fmt.Errorf("paypal create order: %w", err)
	}

	created := CreatedOrder{ID: order.ID}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			created.ApprovalURL = link.Href
			break
		}
	}
	return created, nil
}

func (p *PayPal) Capture(ctx context.Context, orderID, _ string) (bool, error) {
	if err := p.ensureToken(ctx); err != nil {
		return false, err
	}

	resp, err := p.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return false, fmt.Errorf("paypal capture: %w", err)
	}
	return resp.Status == "COMPLETED", nil
}

var _ Provider = (*PayPal)(nil)
