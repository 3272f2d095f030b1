package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rythumitra/rythumitra-backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (ph *ProfileHandler) GetProfile(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	profile, err := ph.profileService.GetProfile(c.Request.Context(), farmerID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "get_profile_failed", err)
		return
	}
	if profile == nil {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("profile not found"))
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}

func (ph *ProfileHandler) UpdateProfile(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	var req services.ProfileUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	profile, err := ph.profileService.UpdateProfile(c.Request.Context(), farmerID, req)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "update_profile_failed", err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}
