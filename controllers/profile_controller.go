package controllers

import (
	"errors"
	"net/http"

	"github.com/binarybcc/aip-tracker/services"

	"github.com/gin-gonic/gin"
)

func CompleteSetup(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input services.SetupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, granted, err := services.CompleteSetup(userID, input, appClock)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrProfileExists) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"profile":      profile,
		"achievements": granted,
	})
}

func GetProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := services.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found, complete setup first"})
		return
	}

	state, err := services.EvaluatePhase(*profile, appClock.Today())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile, "phase": state})
}

func GetDashboard(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	dash, err := services.GetDashboard(userID, appClock)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "complete setup first"})
		return
	}

	c.JSON(http.StatusOK, dash)
}
