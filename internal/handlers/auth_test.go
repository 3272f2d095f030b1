package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rythumitra/rythumitra-backend/internal/services"
)

type fakeAuthService struct {
	verifyErr error
}

func (f *fakeAuthService) RequestOTP(ctx context.Context, phone, email string) error { return nil }
func (f *fakeAuthService) VerifyOTP(ctx context.Context, phone, email, code string) (string, string, error) {
	if f.verifyErr != nil {
		return "", "", f.verifyErr
	}
	return "access-token", "refresh-token", nil
}
func (f *fakeAuthService) RefreshTokens(ctx context.Context) (string, string, error) {
	return "", "", nil
}
func (f *fakeAuthService) Logout(ctx context.Context) error { return nil }
func (f *fakeAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	return ctx, nil
}
func (f *fakeAuthService) GetAccessTTL() time.Duration { return time.Hour }

func postVerifyOTP(t *testing.T, authService services.AuthService, body string) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/otp/verify", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	NewAuthHandler(authService).VerifyOTP(c)

	var envelope ErrorEnvelope
	_ = json.Unmarshal(recorder.Body.Bytes(), &envelope)
	return recorder, envelope
}

func TestVerifyOTPMissingDestinationIsBadRequest(t *testing.T) {
	authService := &fakeAuthService{verifyErr: services.ErrDestinationRequired}
	recorder, envelope := postVerifyOTP(t, authService, `{"code":"123456"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("missing destination is a validation error, expected 400, got %d", recorder.Code)
	}
	if envelope.Error.Code != "bad_request" {
		t.Fatalf("expected bad_request code, got %q", envelope.Error.Code)
	}
}

func TestVerifyOTPBadCodeIsUnauthorized(t *testing.T) {
	authService := &fakeAuthService{verifyErr: errors.New("Invalid passcode")}
	recorder, envelope := postVerifyOTP(t, authService, `{"phone":"+911234567890","code":"000000"}`)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("rejected code expected 401, got %d", recorder.Code)
	}
	if envelope.Error.Code != "otp_verify_failed" {
		t.Fatalf("expected otp_verify_failed code, got %q", envelope.Error.Code)
	}
}

func TestVerifyOTPSuccessReturnsTokens(t *testing.T) {
	recorder, _ := postVerifyOTP(t, &fakeAuthService{}, `{"phone":"+911234567890","code":"123456"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var payload struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if payload.AccessToken != "access-token" || payload.RefreshToken != "refresh-token" {
		t.Fatalf("tokens not passed through: %+v", payload)
	}
	if payload.ExpiresIn != 3600 {
		t.Fatalf("expected expires_in 3600, got %d", payload.ExpiresIn)
	}
}
