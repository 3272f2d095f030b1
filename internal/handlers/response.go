package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rythumitra/rythumitra-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondAIError maps gateway sentinels onto the statuses the client
// shows dedicated messaging for; everything else is a 500.
func RespondAIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRateLimited):
		RespondError(c, http.StatusTooManyRequests, "rate_limited", err)
	case errors.Is(err, services.ErrQuotaExhausted):
		RespondError(c, http.StatusPaymentRequired, "quota_exhausted", err)
	default:
		RespondError(c, http.StatusInternalServerError, "ai_error", err)
	}
}
