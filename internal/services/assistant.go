package services

import (
	"context"
	"fmt"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
	"github.com/rythumitra/rythumitra-backend/internal/normalization"
)

// AssistantService is a thin text relay to the model for the voice
// assistant page. No audio handling; speech-to-text happens on the
// client.
type AssistantService interface {
	Ask(ctx context.Context, message, language string) (string, error)
}

type assistantService struct {
	log *logger.Logger
	ai  AIClient
}

func NewAssistantService(log *logger.Logger, ai AIClient) AssistantService {
	serviceLog := log.With("service", "AssistantService")
	return &assistantService{log: serviceLog, ai: ai}
}

const assistantSystemPromptTelugu = `మీరు భారతీయ రైతులకు సహాయం చేసే AI వ్యవసాయ సలహాదారు. తెలుగులో స్పష్టమైన, సరళమైన, ఆచరణాత్మక సలహాలు ఇవ్వండి.

సహాయం చేయగల అంశాలు:
- పంట సిఫార్సులు (ఏ పంట పెంచాలి, ఎప్పుడు)
- నేల విశ్లేషణ మరియు నేల సంరక్షణ
- నీటి నిర్వహణ మరియు నీటిపారుదల పద్ధతులు
- విత్తనాల ఎంపిక (మంచి విత్తనాలు ఎక్కడ దొరుకుతాయి)
- ఎరువుల వినియోగం (సేంద్రీయ మరియు రసాయనిక)
- చీడపురుగుల నివారణ మరియు నియంత్రణ
- పంట వ్యాధుల నిర్ధారణ మరియు చికిత్స
- వాతావరణ సమాచారం
- మార్కెట్ ధరలు మరియు అమ్మకాల సలహాలు
- సర్కారు పథకాలు మరియు రుణాలు

సలహాలు:
- సరళమైన తెలుగులో వివరించండి
- నిజమైన, ఆచరణాత్మక సలహాలు ఇవ్వండి
- స్థానిక సమాచారం (భారత వాతావరణం, మార్కెట్లు) ప్రాతిపదిక గా ఇవ్వండి
- ఖర్చు మరియు లాభదాయకత గురించి తెలియజేయండి`

const assistantSystemPromptEnglish = `You are an AI agricultural advisor helping Indian farmers. Provide clear, practical advice in simple language.

Topics you can help with:
- Crop recommendations
- Soil analysis and management
- Irrigation and water management
- Seed selection
- Fertilizer usage
- Pest control
- Disease diagnosis and treatment
- Weather information
- Market prices
- Government schemes

Provide practical, actionable advice based on Indian agricultural context.`

func (as *assistantService) Ask(ctx context.Context, message, language string) (string, error) {
	message = normalization.ParseInputString(message)
	if message == "" {
		return "", fmt.Errorf("message is required")
	}
	systemPrompt := assistantSystemPromptEnglish
	if language == "" || language == "te" {
		systemPrompt = assistantSystemPromptTelugu
	}
	reply, err := as.ai.CallText(ctx, systemPrompt, message)
	if err != nil {
		return "", err
	}
	as.log.Info("Assistant reply generated", "language", language)
	return reply, nil
}
