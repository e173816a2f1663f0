package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/binarybcc/aip-tracker/services"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(services.ErrInvalidState))
	assert.Equal(t, http.StatusBadRequest, statusFor(services.ErrInvalidResult))

	for _, err := range []error{
		services.ErrIllegalTransition,
		services.ErrAlreadyScheduled,
		services.ErrPhaseNotReady,
		services.ErrAlreadyCompleted,
		services.ErrProfileExists,
	} {
		assert.Equal(t, http.StatusConflict, statusFor(err))
	}

	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}
