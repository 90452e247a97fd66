package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/engine"
	"github.com/mamadbah2/herdbook/internal/repository"
	"github.com/mamadbah2/herdbook/internal/service/reporting"
)

const dateLayout = "2006-01-02"

// PortfolioHandler serves the engine's figures over HTTP. It never derives a
// financial formula itself; every number comes from the reporting service.
type PortfolioHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewPortfolioHandler constructs the HTTP handler adapter.
func NewPortfolioHandler(svc *reporting.Service, logger *zap.Logger) *PortfolioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortfolioHandler{svc: svc, logger: logger}
}

// Summary returns the portfolio-wide aggregates.
func (h *PortfolioHandler) Summary(c *gin.Context) {
	sum, err := h.svc.PortfolioSummary(c.Request.Context())
	if err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// GoatProfit returns the financial breakdown for one goat.
func (h *PortfolioHandler) GoatProfit(c *gin.Context) {
	report, err := h.svc.GoatProfit(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrGoatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goat not found"})
			return
		}
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CaretakerEarnings returns derived compensation for one caretaker.
func (h *PortfolioHandler) CaretakerEarnings(c *gin.Context) {
	earnings, err := h.svc.CaretakerEarnings(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, reporting.ErrCaretakerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "caretaker not found"})
			return
		}
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, earnings)
}

// AllCaretakerEarnings returns compensation for every caretaker.
func (h *PortfolioHandler) AllCaretakerEarnings(c *gin.Context) {
	earnings, err := h.svc.AllCaretakerEarnings(c.Request.Context())
	if err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"caretakers": earnings})
}

// MonthlySeries returns the trailing month buckets for charting.
func (h *PortfolioHandler) MonthlySeries(c *gin.Context) {
	months := 12
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be an integer"})
			return
		}
		months = parsed
	}

	reference := time.Now()
	if raw := c.Query("reference"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reference must be YYYY-MM-DD"})
			return
		}
		reference = parsed
	}

	series, err := h.svc.MonthlySeries(c.Request.Context(), reference, months)
	if err != nil {
		h.renderEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

type finalizeSaleRequest struct {
	Price string `json:"price" binding:"required"`
	Date  string `json:"date" binding:"required"`
}

// FinalizeSale records a sale through the store's single write path.
func (h *PortfolioHandler) FinalizeSale(c *gin.Context) {
	var req finalizeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a decimal number"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	goatID := c.Param("id")
	if err := h.svc.FinalizeSale(c.Request.Context(), goatID, price, date); err != nil {
		switch {
		case errors.Is(err, reporting.ErrInvalidSale):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrGoatNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "goat not found"})
		case errors.Is(err, repository.ErrSaleAlreadyFinalized):
			c.JSON(http.StatusConflict, gin.H{"error": "sale already finalized"})
		case errors.Is(err, errors.ErrUnsupported):
			c.JSON(http.StatusNotImplemented, gin.H{"error": "store backend does not support sale finalization"})
		default:
			h.logger.Error("failed finalizing sale", zap.String("goat_id", goatID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finalize sale"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// renderEngineError maps engine failures: integrity and configuration
// violations fail loudly instead of rendering misleading zeros.
func (h *PortfolioHandler) renderEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrMissingSalePrice):
		h.logger.Error("record integrity violation", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrUnknownPaymentModel):
		h.logger.Error("payment model misconfigured", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("failed computing report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute report"})
	}
}
