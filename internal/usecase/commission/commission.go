package commission

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/payments"
	"github.com/BruksfildServices01/mechapp/internal/timezone"
)

type Summary struct {
	AppointmentIDs []uint  `json:"appointmentIds"`
	Count          int     `json:"count"`
	Rate           float64 `json:"rate"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
}

type Service struct {
	repo     Repository
	provider payments.Provider
	audit    *audit.Dispatcher
	log      *zap.Logger

	rate     float64
	currency string
	now      func() time.Time
}

func NewService(
	repo Repository,
	provider payments.Provider,
	audit *audit.Dispatcher,
	log *zap.Logger,
	rate float64,
	currency string,
) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		audit:    audit,
		log:      log,
		rate:     rate,
		currency: currency,
		now:      timezone.Now,
	}
}

// ======================================================
// SUMMARY
// ======================================================

func (s *Service) Summary(ctx context.Context, mechanicID uint) (Summary, error) {
	aps, err := s.repo.ListOutstanding(ctx, mechanicID)
	if err != nil {
		return Summary{}, err
	}

	ids := make([]uint, 0, len(aps))
	for _, ap := range aps {
		ids = append(ids, ap.ID)
	}

	return Summary{
		AppointmentIDs: ids,
		Count:          len(ids),
		Rate:           s.rate,
		Amount:         payments.Due(len(ids), s.rate),
		Currency:       s.currency,
	}, nil
}

// ======================================================
// CREATE ORDER
// ======================================================

// CreateOrder opens a provider order covering every outstanding appointment.
func (s *Service) CreateOrder(ctx context.Context, mechanicID uint) (*models.CommissionPayment, error) {
	if s.provider == nil {
		return nil, httperr.ErrBusiness("payments_disabled")
	}

	sum, err := s.Summary(ctx, mechanicID)
	if err != nil {
		return nil, err
	}
	if sum.Count == 0 || sum.Amount <= 0 {
		return nil, httperr.ErrBusiness("nothing_to_pay")
	}

	reference := fmt.Sprintf("mechapp-%d-%d", mechanicID, s.now().Unix())
	created, err := s.provider.CreateOrder(ctx, payments.Order{
		Reference:   reference,
		Description: fmt.Sprintf("Comisión MechApp (%d citas)", sum.Count),
		Amount:      sum.Amount,
		Currency:    sum.Currency,
	})
	if err != nil {
		s.log.Error("create commission order failed",
			zap.Uint("mechanic_id", mechanicID),
			zap.String("provider", s.provider.Name()),
			zap.Error(err),
		)
		return nil, httperr.ErrBusiness("payment_provider_error")
	}

	p := &models.CommissionPayment{
		MechanicID:      mechanicID,
		Provider:        s.provider.Name(),
		ProviderOrderID: created.ID,
		ApprovalURL:     created.ApprovalURL,
		Reference:       reference,
		Amount:          sum.Amount,
		Currency:        sum.Currency,
		AppointmentIDs:  joinIDs(sum.AppointmentIDs),
		Status:          models.PaymentCreated,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &mechanicID,
		Action:   "commission_order_created",
		Entity:   "commission_payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"provider": p.Provider, "amount": p.Amount},
	})

	return p, nil
}

// ======================================================
// CAPTURE
// ======================================================

func (s *Service) Capture(ctx context.Context, mechanicID uint, orderID string) (*models.CommissionPayment, error) {
	if s.provider == nil {
		return nil, httperr.ErrBusiness("payments_disabled")
	}

	p, err := s.repo.GetPayment(ctx, mechanicID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	if err != nil {
		return nil, err
	}

	switch p.Status {
	case models.PaymentCaptured:
		return p, nil
	case models.PaymentFailed:
		return nil, httperr.ErrBusiness("invalid_state")
	}

	paid, err := s.provider.Capture(ctx, p.ProviderOrderID, p.Reference)
	if err != nil {
		s.log.Error("capture commission failed",
			zap.Uint("mechanic_id", mechanicID),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil, httperr.ErrBusiness("payment_provider_error")
	}
	if !paid {
		return nil, httperr.ErrBusiness("payment_not_completed")
	}

	ids, err := splitIDs(p.AppointmentIDs)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", p.ID, err)
	}

	now := s.now()
	p.Status = models.PaymentCaptured
	p.CapturedAt = &now

	if err := s.repo.MarkCaptured(ctx, p, ids); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &mechanicID,
		Action:   "commission_captured",
		Entity:   "commission_payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"provider": p.Provider, "appointments": len(ids)},
	})

	return p, nil
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) ([]uint, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("appointment ids %q: %w", s, err)
		}
		out = append(out, uint(n))
	}
	return out, nil
}
