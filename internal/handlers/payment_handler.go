package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mechapp/internal/metrics"
	"github.com/BruksfildServices01/mechapp/internal/middleware"
	"github.com/BruksfildServices01/mechapp/internal/usecase/commission"
)

type PaymentHandler struct {
	commissions *commission.Service
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewPaymentHandler(svc *commission.Service, m *metrics.Collector, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{commissions: svc, metrics: m, log: log}
}

func (h *PaymentHandler) Summary(c *gin.Context) {
	sum, err := h.commissions.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	p, err := h.commissions.CreateOrder(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"orderId":     p.ProviderOrderID,
		"approvalUrl": p.ApprovalURL,
		"amount":      p.Amount,
		"currency":    p.Currency,
		"provider":    p.Provider,
	})
}

func (h *PaymentHandler) Capture(c *gin.Context) {
	p, err := h.commissions.Capture(c.Request.Context(), middleware.UserID(c), c.Param("orderId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.metrics.CommissionsCaptured.WithLabelValues(p.Provider).Inc()
	c.JSON(http.StatusOK, p)
}
