package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rythumitra/rythumitra-backend/internal/services"
)

type StrategyHandler struct {
	strategyService services.StrategyService
}

func NewStrategyHandler(strategyService services.StrategyService) *StrategyHandler {
	return &StrategyHandler{strategyService: strategyService}
}

func (sh *StrategyHandler) CreateStrategy(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	var req services.StrategyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	strategy, err := sh.strategyService.CreateStrategy(c.Request.Context(), farmerID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_strategy_failed", err)
		return
	}
	RespondOK(c, gin.H{"strategy": strategy})
}

func (sh *StrategyHandler) GetStrategies(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	strategies, err := sh.strategyService.GetStrategies(c.Request.Context(), farmerID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "get_strategies_failed", err)
		return
	}
	RespondOK(c, gin.H{"strategies": strategies})
}

func (sh *StrategyHandler) GetStrategy(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	strategyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid strategy id"))
		return
	}
	strategy, err := sh.strategyService.GetStrategy(c.Request.Context(), farmerID, strategyID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "get_strategy_failed", err)
		return
	}
	if strategy == nil {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("strategy not found"))
		return
	}
	RespondOK(c, gin.H{"strategy": strategy})
}
