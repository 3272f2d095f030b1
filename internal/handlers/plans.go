package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rythumitra/rythumitra-backend/internal/requestdata"
	"github.com/rythumitra/rythumitra-backend/internal/services"
)

type PlanHandler struct {
	planService services.PlanService
}

func NewPlanHandler(planService services.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func farmerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.FarmerID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no farmer in context"))
		return uuid.Nil, false
	}
	return rd.FarmerID, true
}

func (ph *PlanHandler) StartPlan(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	var req struct {
		CropID         uuid.UUID `json:"cropId"`
		AreaAcres      float64   `json:"areaAcres"`
		CompanionCrops []string  `json:"companionCrops"`
		FieldLocation  string    `json:"fieldLocation"`
		MultiCropType  string    `json:"multiCropType"`
		Notes          string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.CropID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("cropId is required"))
		return
	}
	result, err := ph.planService.StartPlan(c.Request.Context(), farmerID, services.StartPlanInput{
		CropID:         req.CropID,
		AreaAcres:      req.AreaAcres,
		CompanionCrops: req.CompanionCrops,
		FieldLocation:  req.FieldLocation,
		MultiCropType:  req.MultiCropType,
		Notes:          req.Notes,
	})
	if err != nil {
		RespondError(c, http.StatusBadRequest, "start_plan_failed", err)
		return
	}
	payload := gin.H{"plan": result.Plan, "tasks": result.Tasks}
	// The plan row survives a failed task materialization; the client
	// gets the plan plus the partial-failure detail.
	if result.TasksError != nil {
		payload["tasks_error"] = result.TasksError.Error()
	}
	RespondOK(c, payload)
}

func (ph *PlanHandler) GetPlans(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	plans, err := ph.planService.GetPlans(c.Request.Context(), farmerID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "get_plans_failed", err)
		return
	}
	RespondOK(c, gin.H{"plans": plans})
}

func (ph *PlanHandler) CompletePlan(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid plan id"))
		return
	}
	var req struct {
		ActualHarvestDate *time.Time `json:"actual_harvest_date"`
	}
	// Empty body is fine: harvest date defaults to now.
	_ = c.ShouldBindJSON(&req)
	plan, err := ph.planService.CompletePlan(c.Request.Context(), farmerID, planID, req.ActualHarvestDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "complete_plan_failed", err)
		return
	}
	RespondOK(c, gin.H{"plan": plan})
}

func (ph *PlanHandler) GetRoadmap(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid plan id"))
		return
	}
	tasks, err := ph.planService.GetRoadmap(c.Request.Context(), farmerID, planID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "get_roadmap_failed", err)
		return
	}
	RespondOK(c, gin.H{"tasks": tasks})
}

func (ph *PlanHandler) CompleteRoadmapTask(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid task id"))
		return
	}
	if err := ph.planService.CompleteRoadmapTask(c.Request.Context(), farmerID, taskID); err != nil {
		RespondError(c, http.StatusBadRequest, "complete_task_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "task completed"})
}

func (ph *PlanHandler) CompleteDailyTask(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid task id"))
		return
	}
	if err := ph.planService.CompleteDailyTask(c.Request.Context(), farmerID, taskID); err != nil {
		RespondError(c, http.StatusBadRequest, "complete_task_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "task completed"})
}
