package handlers

import (
	"net/http"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/internal/dto"
	"github.com/SscSPs/property_market_app/internal/middleware"
	"github.com/SscSPs/property_market_app/internal/utils/pricing"
	"github.com/gin-gonic/gin"
)

type listingHandler struct {
	listings  portssvc.ListingSvcFacade
	precision portssvc.PrecisionProvider
	canonical domain.Language
}

// RegisterListingRoutes registers the listing routes. Reads are public.
func RegisterListingRoutes(public, authed *gin.RouterGroup, listings portssvc.ListingSvcFacade, precision portssvc.PrecisionProvider, canonical domain.Language) {
	registerValidators()
	h := &listingHandler{listings: listings, precision: precision, canonical: canonical}

	public.GET("/listings/:listingID", h.getListing)
	authed.PUT("/listings/:listingID/price", h.changePrice)
	authed.PUT("/listings/:listingID/content", h.updateContent)
}

// getListing godoc
// @Summary Get a listing in one language
// @Description Returns the listing with text in the requested language (falling back to the canonical one) and prices in every configured currency
// @Tags listings
// @Produce  json
// @Param   listingID path string true "Listing ID"
// @Param   lang query string false "Language code (vi, en, lo)"
// @Param   currency query string false "Legacy language hint (USD, LAK, VND)"
// @Success 200 {object} dto.ListingResponse
// @Failure 404 {object} map[string]string "Listing not found"
// @Router /listings/{listingID} [get]
func (h *listingHandler) getListing(c *gin.Context) {
	log := middleware.GetLoggerFromCtx(c).With("listing_id", c.Param("listingID"))

	var q dto.ListingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	listing, err := h.listings.GetListing(c.Request.Context(), c.Param("listingID"))
	if err != nil {
		respondServiceError(c, log, err, "Failed to retrieve listing")
		return
	}
	h.respondListing(c, *listing, q.Requested(), http.StatusOK)
}

// changePrice godoc
// @Summary Change a listing's price
// @Description Records a new USD base amount in the price history and refreshes the converted prices
// @Tags listings
// @Accept  json
// @Produce  json
// @Param   listingID path string true "Listing ID"
// @Param   price body dto.ChangeListingPriceRequest true "New base amount"
// @Success 200 {object} dto.ListingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Listing not found"
// @Security BearerAuth
// @Router /listings/{listingID}/price [put]
func (h *listingHandler) changePrice(c *gin.Context) {
	log := middleware.GetLoggerFromCtx(c).With("listing_id", c.Param("listingID"))

	var req dto.ChangeListingPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	listing, err := h.listings.ChangePrice(c.Request.Context(), c.Param("listingID"), *req.BaseAmountUSD, userID)
	if err != nil {
		respondServiceError(c, log, err, "Failed to change listing price")
		return
	}
	log.Infow("Listing price changed", "base_amount", req.BaseAmountUSD.String())
	h.respondListing(c, *listing, string(h.canonical), http.StatusOK)
}

// updateContent godoc
// @Summary Update a listing's text
// @Description Replaces the canonical title and description and refreshes the translations
// @Tags listings
// @Accept  json
// @Produce  json
// @Param   listingID path string true "Listing ID"
// @Param   content body dto.UpdateListingContentRequest true "Canonical text"
// @Success 200 {object} dto.ListingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Listing not found"
// @Security BearerAuth
// @Router /listings/{listingID}/content [put]
func (h *listingHandler) updateContent(c *gin.Context) {
	log := middleware.GetLoggerFromCtx(c).With("listing_id", c.Param("listingID"))

	var req dto.UpdateListingContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	listing, err := h.listings.UpdateContent(c.Request.Context(), c.Param("listingID"), req.Title, req.Description, userID)
	if err != nil {
		respondServiceError(c, log, err, "Failed to update listing content")
		return
	}
	h.respondListing(c, *listing, string(h.canonical), http.StatusOK)
}

func (h *listingHandler) respondListing(c *gin.Context, listing domain.Listing, requested string, status int) {
	precision, err := h.precision.PrecisionTable(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c).Warnw("Precision table unavailable, using defaults", "error", err)
		precision = pricing.NewPrecisionTable(nil)
	}

	lang := domain.ResolveLanguage(requested, h.canonical)
	picked := h.listings.PickTranslatedContent(listing, requested)
	c.JSON(status, dto.ToListingResponse(picked, lang, precision))
}
