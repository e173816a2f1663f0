package controllers

import (
	"errors"
	"net/http"

	"github.com/binarybcc/aip-tracker/services"

	"github.com/gin-gonic/gin"
)

var appClock = services.NewClock()

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}

// statusFor maps core validation errors to HTTP statuses; anything else is
// a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInvalidResult):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrIllegalTransition),
		errors.Is(err, services.ErrAlreadyScheduled),
		errors.Is(err, services.ErrPhaseNotReady),
		errors.Is(err, services.ErrAlreadyCompleted),
		errors.Is(err, services.ErrProfileExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
