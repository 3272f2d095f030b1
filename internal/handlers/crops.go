package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rythumitra/rythumitra-backend/internal/repos"
	"github.com/rythumitra/rythumitra-backend/internal/services"
)

type CropHandler struct {
	cropService        services.CropService
	suitabilityService services.SuitabilityService
}

func NewCropHandler(cropService services.CropService, suitabilityService services.SuitabilityService) *CropHandler {
	return &CropHandler{cropService: cropService, suitabilityService: suitabilityService}
}

func (ch *CropHandler) ListCrops(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := repos.CropFilter{
		Category: c.Query("category"),
		Season:   c.Query("season"),
		SoilType: c.Query("soilType"),
	}
	if v := c.Query("homeGrowable"); v != "" {
		parsed := v == "true"
		filter.HomeGrowable = &parsed
	}
	if v := c.Query("dailyMarket"); v != "" {
		parsed := v == "true"
		filter.DailyMarket = &parsed
	}

	crops, total, err := ch.cropService.ListCrops(c.Request.Context(), filter, offset, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_crops_failed", err)
		return
	}
	RespondOK(c, gin.H{
		"crops":  crops,
		"total":  total,
		"offset": offset,
		"limit":  limit,
	})
}

func (ch *CropHandler) GetCrop(c *gin.Context) {
	cropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid crop id"))
		return
	}
	detail, err := ch.cropService.GetCrop(c.Request.Context(), cropID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "get_crop_failed", err)
		return
	}
	if detail == nil {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("crop not found"))
		return
	}
	RespondOK(c, detail)
}

func (ch *CropHandler) GetPriceHistory(c *gin.Context) {
	cropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid crop id"))
		return
	}
	history, err := ch.cropService.GetPriceHistory(c.Request.Context(), cropID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "price_history_failed", err)
		return
	}
	RespondOK(c, gin.H{"price_history": history})
}

func (ch *CropHandler) Recommendations(c *gin.Context) {
	var req struct {
		SoilType      string `json:"soilType"`
		Season        string `json:"season"`
		Location      string `json:"location"`
		DailyMarket   bool   `json:"dailyMarket"`
		MultiCropping bool   `json:"multiCropping"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	scored, err := ch.suitabilityService.Recommend(c.Request.Context(), services.SuitabilityCriteria{
		SoilType:      req.SoilType,
		Season:        req.Season,
		Location:      req.Location,
		DailyMarket:   req.DailyMarket,
		MultiCropping: req.MultiCropping,
	})
	if err != nil {
		RespondError(c, http.StatusBadRequest, "recommendations_failed", err)
		return
	}
	RespondOK(c, gin.H{"recommendations": scored})
}
