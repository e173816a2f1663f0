package controllers

import (
	"net/http"
	"strconv"

	"github.com/binarybcc/aip-tracker/services"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Svc *services.ProgressService
}

func NewProgressController(svc *services.ProgressService) *ProgressController {
	return &ProgressController{Svc: svc}
}

// GetReport serves the windowed progress report. ?period=7|30|90|all
// (default 30).
func (h *ProgressController) GetReport(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	period := c.DefaultQuery("period", "30")
	days := 0
	if period != "all" {
		n, err := strconv.Atoi(period)
		if err != nil || (n != 7 && n != 30 && n != 90) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "period must be 7, 30, 90 or all"})
			return
		}
		days = n
	}

	report, err := h.Svc.Report(c.Request.Context(), userID, days, appClock)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
