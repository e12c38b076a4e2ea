package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veloxrp/econ_backend/internal/apperrors"
	"github.com/veloxrp/econ_backend/internal/middleware"
)

// respondError maps the service sentinel taxonomy onto HTTP statuses. Every
// non-success outcome means "no effect occurred"; anything unrecognized is an
// internal error and the detail stays out of the response.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrCharacterNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown session"})
	case errors.Is(err, apperrors.ErrNoAccess):
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to account"})
	case errors.Is(err, apperrors.ErrAccountNotFound), errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient funds"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrTransactionFailed):
		c.JSON(http.StatusConflict, gin.H{"error": "Transaction failed"})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requireSession fetches the caller's session id or aborts with 401.
func requireSession(c *gin.Context) (string, bool) {
	sid, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing " + middleware.SessionHeader + " header"})
		return "", false
	}
	return sid, true
}
