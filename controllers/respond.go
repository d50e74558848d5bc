package controllers

import (
	"errors"
	"net/http"

	"MetOptix/services"
	"MetOptix/util"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated), errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case services.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrPatientNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateVisit):
		return http.StatusConflict
	case errors.Is(err, services.ErrStoreRead), errors.Is(err, services.ErrStoreWrite), errors.Is(err, services.ErrStoreDelete):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), util.FailedResponse(err))
}
