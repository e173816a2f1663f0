package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/binarybcc/aip-tracker/models"
	"github.com/binarybcc/aip-tracker/services"

	"github.com/gin-gonic/gin"
)

func StartReintroduction(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, granted, err := services.StartReintroduction(userID, appClock)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":      profile,
		"achievements": granted,
	})
}

func ListReintroTests(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	board, err := services.ListReintroTests(userID, appClock)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, board)
}

func ScheduleReintroTest(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		FoodID   uint   `json:"food_id" binding:"required"`
		TestDate string `json:"test_date"` // YYYY-MM-DD, defaults to today
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := appClock.Today()
	if body.TestDate != "" {
		d, err := time.Parse("2006-01-02", body.TestDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid test_date. Use YYYY-MM-DD"})
			return
		}
		date = d
	}

	test, err := services.ScheduleReintroTest(userID, body.FoodID, date, appClock)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, test)
}

func CompleteReintroTest(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	testID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid test id"})
		return
	}

	var body struct {
		Result string `json:"result" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	test, granted, err := services.CompleteReintroTest(
		userID, uint(testID), models.TestResult(body.Result), body.Notes, appClock)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"test":         test,
		"achievements": granted,
	})
}

func GetSuggestedTestDate(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date, err := services.SuggestedDate(userID, appClock)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggested_date": services.DateKey(date)})
}

func ListReintroFoods(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	groups, err := services.ReintroFoodsByStage(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, groups)
}
