package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/internal/dto"
	"github.com/SscSPs/property_market_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type exchangeRateHandler struct {
	rateService   portssvc.ExchangeRateSvcFacade
	recalculation portssvc.RecalculationSvc
}

// RegisterExchangeRateRoutes registers the rate table routes. Reads are
// public; writes and the synchronous recalculation need an authenticated caller.
func RegisterExchangeRateRoutes(public, authed *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade, recalculation portssvc.RecalculationSvc) {
	registerValidators()
	h := &exchangeRateHandler{rateService: rateService, recalculation: recalculation}

	public.GET("/exchange-rates", h.listExchangeRates)
	public.GET("/exchange-rates/:currency", h.getExchangeRate)

	authed.POST("/exchange-rates/recalculate", h.recalculate)
	authed.PUT("/exchange-rates/:currency", h.updateExchangeRate)
	authed.DELETE("/exchange-rates/:currency", h.removeExchangeRate)
}

// updateExchangeRate godoc
// @Summary Set an exchange rate
// @Description Sets "1 USD = rate units of currency" and schedules a price recalculation
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   currency path string true "Currency code"
// @Param   rate body dto.UpdateExchangeRateRequest true "New rate"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to update exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/{currency} [put]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	log := middleware.GetLoggerFromCtx(c)

	var uri dto.ExchangeRateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency code: " + err.Error()})
		return
	}
	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnw("Failed to bind JSON for UpdateExchangeRate", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	log = log.With("currency", uri.CurrencyCode, "user_id", userID)
	rate, err := h.rateService.UpdateExchangeRate(c.Request.Context(), uri.CurrencyCode, *req.Rate, userID)
	if err != nil {
		respondServiceError(c, log, err, "Failed to update exchange rate")
		return
	}

	log.Infow("Exchange rate updated", "rate", rate.Rate.String())
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Tags exchange-rates
// @Produce  json
// @Param   currency path string true "Currency code"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Router /exchange-rates/{currency} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	var uri dto.ExchangeRateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency code: " + err.Error()})
		return
	}

	rate, err := h.rateService.GetExchangeRate(c.Request.Context(), uri.CurrencyCode)
	if err != nil {
		respondServiceError(c, middleware.GetLoggerFromCtx(c), err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List the rate table
// @Tags exchange-rates
// @Produce  json
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	rates, err := h.rateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		respondServiceError(c, middleware.GetLoggerFromCtx(c), err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRatesResponse(rates))
}

// removeExchangeRate godoc
// @Summary Remove an exchange rate
// @Description Retires a currency from the rate table
// @Tags exchange-rates
// @Param   currency path string true "Currency code"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Security BearerAuth
// @Router /exchange-rates/{currency} [delete]
func (h *exchangeRateHandler) removeExchangeRate(c *gin.Context) {
	log := middleware.GetLoggerFromCtx(c)
	var uri dto.ExchangeRateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency code: " + err.Error()})
		return
	}

	if err := h.rateService.RemoveExchangeRate(c.Request.Context(), uri.CurrencyCode); err != nil {
		respondServiceError(c, log.With("currency", uri.CurrencyCode), err, "Failed to remove exchange rate")
		return
	}
	log.Infow("Exchange rate removed", "currency", uri.CurrencyCode)
	c.Status(http.StatusNoContent)
}

// recalculate godoc
// @Summary Recalculate all listing prices now
// @Description Runs the price recalculation synchronously against the current rate table
// @Tags exchange-rates
// @Produce  json
// @Success 200 {object} dto.RecalculationReportResponse
// @Failure 500 {object} map[string]string "Recalculation failed"
// @Security BearerAuth
// @Router /exchange-rates/recalculate [post]
func (h *exchangeRateHandler) recalculate(c *gin.Context) {
	report, err := h.recalculation.RunNow(c.Request.Context())
	if err != nil {
		respondServiceError(c, middleware.GetLoggerFromCtx(c), err, "Recalculation failed")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecalculationReportResponse(report))
}
