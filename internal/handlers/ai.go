package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rythumitra/rythumitra-backend/internal/services"
)

// AIHandler fronts every model-backed feature. Each endpoint validates
// its payload, calls its service once, and maps gateway failures onto
// 429/402/500.
type AIHandler struct {
	recommendationService services.CropRecommendationService
	forecastService       services.DiseaseForecastService
	pestService           services.PestDetectionService
	seedService           services.SeedResearchService
	taskService           services.TaskGenerationService
	weatherService        services.WeatherService
	assistantService      services.AssistantService
}

func NewAIHandler(
	recommendationService services.CropRecommendationService,
	forecastService services.DiseaseForecastService,
	pestService services.PestDetectionService,
	seedService services.SeedResearchService,
	taskService services.TaskGenerationService,
	weatherService services.WeatherService,
	assistantService services.AssistantService,
) *AIHandler {
	return &AIHandler{
		recommendationService: recommendationService,
		forecastService:       forecastService,
		pestService:           pestService,
		seedService:           seedService,
		taskService:           taskService,
		weatherService:        weatherService,
		assistantService:      assistantService,
	}
}

func (ah *AIHandler) CropRecommendation(c *gin.Context) {
	var req services.CropRecommendationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := ah.recommendationService.Recommend(c.Request.Context(), req)
	if err != nil {
		RespondAIError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

func (ah *AIHandler) DiseaseForecast(c *gin.Context) {
	var req services.DiseaseForecastInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := ah.forecastService.Forecast(c.Request.Context(), req)
	if err != nil {
		RespondAIError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

func (ah *AIHandler) PestDetection(c *gin.Context) {
	var req services.PestDetectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := ah.pestService.Detect(c.Request.Context(), req)
	if err != nil {
		RespondAIError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

func (ah *AIHandler) SeedResearch(c *gin.Context) {
	var req services.SeedResearchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := ah.seedService.Research(c.Request.Context(), req)
	if err != nil {
		RespondAIError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

func (ah *AIHandler) GenerateTasks(c *gin.Context) {
	var req services.TaskGenerationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := ah.taskService.Generate(c.Request.Context(), req)
	if err != nil {
		RespondAIError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

func (ah *AIHandler) WeatherForecast(c *gin.Context) {
	var req struct {
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := ah.weatherService.GetForecast(c.Request.Context(), req.Location)
	if err != nil {
		RespondAIError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ah *AIHandler) VoiceAssistant(c *gin.Context) {
	var req struct {
		Message  string `json:"message"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	reply, err := ah.assistantService.Ask(c.Request.Context(), req.Message, req.Language)
	if err != nil {
		RespondAIError(c, err)
		return
	}
	RespondOK(c, gin.H{"response": reply})
}
