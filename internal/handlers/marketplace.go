package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rythumitra/rythumitra-backend/internal/services"
)

type MarketplaceHandler struct {
	marketplaceService services.MarketplaceService
}

func NewMarketplaceHandler(marketplaceService services.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceService: marketplaceService}
}

func (mh *MarketplaceHandler) GetPrices(c *gin.Context) {
	prices, err := mh.marketplaceService.GetPrices(c.Request.Context(), c.Query("region"))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "get_prices_failed", err)
		return
	}
	RespondOK(c, gin.H{"prices": prices})
}

func (mh *MarketplaceHandler) UpdatePrice(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	var req services.PriceUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	price, err := mh.marketplaceService.UpdatePrice(c.Request.Context(), farmerID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_price_failed", err)
		return
	}
	RespondOK(c, gin.H{"price": price})
}
