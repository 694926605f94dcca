package handlers

import (
	"errors"
	"net/http"

	"leaguerats/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Status code for a store error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func respondResult(c *gin.Context, result any) {
	c.JSON(http.StatusOK, gin.H{"result": result})
}
