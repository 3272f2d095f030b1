package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
)

// PestDetectionInput points the model at a crop photo.
type PestDetectionInput struct {
	ImageURL string `json:"imageUrl"`
	CropName string `json:"cropName"`
}

// PestDetectionService diagnoses pests and diseases from an image.
// Nothing is persisted; the diagnosis goes straight back to the farmer.
type PestDetectionService interface {
	Detect(ctx context.Context, input PestDetectionInput) (json.RawMessage, error)
}

type pestDetectionService struct {
	log *logger.Logger
	ai  AIClient
}

func NewPestDetectionService(log *logger.Logger, ai AIClient) PestDetectionService {
	serviceLog := log.With("service", "PestDetectionService")
	return &pestDetectionService{log: serviceLog, ai: ai}
}

const pestDetectionSystemPrompt = `You are an expert plant pathologist specializing in Indian agriculture. Analyze crop images to identify:

1. Pest/Disease Identification
   - Exact name of the pest or disease
   - Scientific name
   - Severity level (mild/moderate/severe/critical)
   - Affected parts of the plant

2. Symptoms Analysis
   - Visible symptoms in the image
   - Stage of infection/infestation
   - Potential spread risk

3. Immediate Actions
   - What to do TODAY to prevent spread
   - Emergency measures if critical

4. Treatment Plan
   - Organic treatment options (detailed steps, ingredients, preparation method)
   - Chemical treatment options (exact product names available in India, dosage per liter, application method)
   - Treatment frequency and duration
   - Expected recovery timeline

5. Prevention for Future
   - How this happened (likely causes)
   - Preventive measures for next season
   - Monitoring tips to catch early

6. Cost Estimate
   - Approximate treatment cost in INR
   - Cost comparison: organic vs chemical

Provide practical, actionable advice that Indian farmers can implement immediately.`

func diagnosePestTool() ToolDef {
	return ToolDef{
		Name:        "diagnose_pest_disease",
		Description: "Provide detailed pest/disease diagnosis and treatment plan",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"diagnosis": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"pest_or_disease": map[string]any{"type": "string"},
						"scientific_name": map[string]any{"type": "string"},
						"severity":        map[string]any{"type": "string", "enum": []string{"mild", "moderate", "severe", "critical"}},
						"affected_parts":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"symptoms":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"infection_stage": map[string]any{"type": "string"},
						"spread_risk":     map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}},
					},
				},
				"immediate_actions": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"organic_treatment": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"method":            map[string]any{"type": "string"},
						"ingredients":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"preparation":       map[string]any{"type": "string"},
						"application":       map[string]any{"type": "string"},
						"frequency":         map[string]any{"type": "string"},
						"duration":          map[string]any{"type": "string"},
						"cost_estimate_inr": map[string]any{"type": "string"},
					},
				},
				"chemical_treatment": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"products":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"dosage":             map[string]any{"type": "string"},
						"application":        map[string]any{"type": "string"},
						"frequency":          map[string]any{"type": "string"},
						"duration":           map[string]any{"type": "string"},
						"safety_precautions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"cost_estimate_inr":  map[string]any{"type": "string"},
					},
				},
				"prevention": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"causes":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"preventive_measures": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"monitoring_tips":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
				},
				"expected_recovery": map[string]any{"type": "string"},
				"confidence_score":  map[string]any{"type": "number", "description": "0-100% confidence in diagnosis"},
			},
			"required": []string{"diagnosis", "immediate_actions", "organic_treatment", "chemical_treatment", "prevention"},
		},
	}
}

func (ps *pestDetectionService) Detect(ctx context.Context, input PestDetectionInput) (json.RawMessage, error) {
	if input.ImageURL == "" {
		return nil, fmt.Errorf("imageUrl is required")
	}
	cropName := input.CropName
	if cropName == "" {
		cropName = "crop"
	}
	userPrompt := fmt.Sprintf("Analyze this %s image for pest or disease problems. Provide detailed diagnosis and treatment recommendations.", cropName)

	result, err := ps.ai.CallToolWithImage(ctx, pestDetectionSystemPrompt, userPrompt, input.ImageURL, diagnosePestTool())
	if err != nil {
		return nil, err
	}
	ps.log.Info("Pest detection completed", "crop", cropName)
	return result, nil
}
