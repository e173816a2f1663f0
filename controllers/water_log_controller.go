package controllers

import (
	"net/http"

	"github.com/binarybcc/aip-tracker/services"

	"github.com/gin-gonic/gin"
)

func LogWater(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		AmountMl int `json:"amount_ml" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, granted, err := services.LogWater(userID, body.AmountMl, appClock)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"water":        summary,
		"achievements": granted,
	})
}

func GetWaterToday(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, err := services.WaterToday(userID, appClock)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "complete setup first"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
