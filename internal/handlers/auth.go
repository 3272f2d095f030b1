package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rythumitra/rythumitra-backend/internal/requestdata"
	"github.com/rythumitra/rythumitra-backend/internal/services"
)

var errMissingRefreshToken = errors.New("refresh_token is required")

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) RequestOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := ah.authService.RequestOTP(c.Request.Context(), req.Phone, req.Email); err != nil {
		RespondError(c, http.StatusBadRequest, "otp_request_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "otp sent"})
}

func (ah *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	accessToken, refreshToken, err := ah.authService.VerifyOTP(c.Request.Context(), req.Phone, req.Email, req.Code)
	if errors.Is(err, services.ErrDestinationRequired) {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "otp_verify_failed", err)
		return
	}
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	RespondOK(c, gin.H{"access_token": accessToken, "refresh_token": refreshToken, "expires_in": expiresIn})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		RespondError(c, http.StatusBadRequest, "bad_request", errMissingRefreshToken)
		return
	}
	ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
		RefreshToken: req.RefreshToken,
	})
	accessToken, refreshToken, err := ah.authService.RefreshTokens(ctx)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "refresh_failed", err)
		return
	}
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	RespondOK(c, gin.H{"access_token": accessToken, "refresh_token": refreshToken, "expires_in": expiresIn})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		RespondError(c, http.StatusBadRequest, "logout_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "logged out successfully"})
}
