package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/mechapp/internal/config"
)

func TestDue(t *testing.T) {
	assert.Equal(t, 0.0, Due(0, 50))
	assert.Equal(t, 150.0, Due(3, 50))
	assert.Equal(t, 0.3, Due(3, 0.1))
	assert.Equal(t, 0.0, Due(2, -1))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150.00", FormatAmount(150))
	assert.Equal(t, "35.50", FormatAmount(35.5))
}

func TestNewProvider_RequiresCredentials(t *testing.T) {
	_, err := NewProvider(&config.Config{PaymentProvider: "paypal"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewProvider(&config.Config{PaymentProvider: "mercadopago"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewProvider(&config.Config{PaymentProvider: "bitcoin"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
