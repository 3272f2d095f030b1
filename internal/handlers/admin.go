package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/rythumitra/rythumitra-backend/internal/services"
)

// AdminHandler exposes the bulk catalog loaders. The routes sit behind
// auth like everything else; catalog writes are idempotent upserts.
type AdminHandler struct {
	importService services.ImportService
}

func NewAdminHandler(importService services.ImportService) *AdminHandler {
	return &AdminHandler{importService: importService}
}

func (ah *AdminHandler) ImportCrops(c *gin.Context) {
	var req struct {
		CSVPath string `json:"csv_path"`
	}
	_ = c.ShouldBindJSON(&req)
	csvPath := req.CSVPath
	if csvPath == "" {
		csvPath = os.Getenv("CROPS_CSV_PATH")
	}
	summary, err := ah.importService.ImportCrops(c.Request.Context(), csvPath)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "import_failed", err)
		return
	}
	RespondOK(c, summary)
}

func (ah *AdminHandler) SeedDatabase(c *gin.Context) {
	summary, err := ah.importService.SeedDatabase(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "seed_failed", err)
		return
	}
	RespondOK(c, summary)
}
