package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rythumitra/rythumitra-backend/internal/services"
)

type CalendarHandler struct {
	calendarService services.CalendarService
}

func NewCalendarHandler(calendarService services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

func (ch *CalendarHandler) GetCalendar(c *gin.Context) {
	farmerID, ok := farmerIDFromContext(c)
	if !ok {
		return
	}
	entries, err := ch.calendarService.GetCalendar(c.Request.Context(), farmerID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "calendar_failed", err)
		return
	}
	RespondOK(c, gin.H{"calendar": entries})
}
