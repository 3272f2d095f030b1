package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rythumitra/rythumitra-backend/internal/services"
)

func recordAIError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	RespondAIError(c, err)

	var envelope ErrorEnvelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not an error envelope: %v", err)
	}
	return recorder, envelope
}

func TestRespondAIErrorRateLimited(t *testing.T) {
	recorder, envelope := recordAIError(t, fmt.Errorf("call failed: %w", services.ErrRateLimited))
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", recorder.Code)
	}
	if envelope.Error.Code != "rate_limited" {
		t.Fatalf("expected rate_limited code, got %q", envelope.Error.Code)
	}
}

func TestRespondAIErrorQuotaExhausted(t *testing.T) {
	recorder, envelope := recordAIError(t, services.ErrQuotaExhausted)
	if recorder.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", recorder.Code)
	}
	if envelope.Error.Code != "quota_exhausted" {
		t.Fatalf("expected quota_exhausted code, got %q", envelope.Error.Code)
	}
}

func TestRespondAIErrorGeneric(t *testing.T) {
	recorder, envelope := recordAIError(t, errors.New("model unavailable"))
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	if envelope.Error.Code != "ai_error" {
		t.Fatalf("expected ai_error code, got %q", envelope.Error.Code)
	}
	if envelope.Error.Message != "model unavailable" {
		t.Fatalf("error message should pass through, got %q", envelope.Error.Message)
	}
}
