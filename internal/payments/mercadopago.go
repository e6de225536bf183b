package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/mechapp/internal/config"
)

// MercadoPago uses checkout preferences as orders. A preference is paid
// once an approved payment carries its external reference.
type MercadoPago struct {
	preferences preference.Client
	payments    payment.Client
}

func NewMercadoPago(cfg *config.Config) (*MercadoPago, error) {
	if cfg.MercadoPagoAccessToken == "" {
		return nil, fmt.Errorf("%w: mercadopago access token missing", ErrNotConfigured)
	}

	mpCfg, err := mpconfig.New(cfg.MercadoPagoAccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		preferences: preference.NewClient(mpCfg),
		payments:    payment.NewClient(mpCfg),
	}, nil
}

func (m *MercadoPago) Name() string { return ProviderMercadoPago }

func (m *MercadoPago) CreateOrder(ctx context.Context, o Order) (CreatedOrder, error) {
	resp, err := m.preferences.Create(ctx, preference.Request{
		ExternalReference: o.Reference,
		Items: []preference.ItemRequest{{
			Title:      o.Description,
			Quantity:   1,
			UnitPrice:  o.Amount,
			CurrencyID: o.Currency,
		}},
	})
	if err != nil {
		return CreatedOrder{}, fmt.Errorf("mercadopago preference: %w", err)
	}

	return CreatedOrder{ID: resp.ID, ApprovalURL: resp.InitPoint}, nil
}

func (m *MercadoPago) Capture(ctx context.Context, _, reference string) (bool, error) {
	resp, err := m.payments.Search(ctx, payment.SearchRequest{
		Filters: map[string]string{"external_reference": reference},
	})
	if err != nil {
		return false, fmt.Errorf("mercadopago search: %w", err)
	}

	for _, p := range resp.Results {
		if p.Status == "approved" {
			return true, nil
		}
	}
	return false, nil
}

var _ Provider = (*MercadoPago)(nil)
