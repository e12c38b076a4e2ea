package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/veloxrp/econ_backend/internal/core/ports/services"
	"github.com/veloxrp/econ_backend/internal/dto"
	"github.com/veloxrp/econ_backend/internal/middleware"
)

// economyHandler handles the balance-movement operations.
type economyHandler struct {
	economyService portssvc.EconomySvcFacade
}

func newEconomyHandler(es portssvc.EconomySvcFacade) *economyHandler {
	return &economyHandler{economyService: es}
}

// registerEconomyRoutes registers the deposit/withdraw/transfer routes.
func registerEconomyRoutes(rg *gin.RouterGroup, economyService portssvc.EconomySvcFacade) {
	h := newEconomyHandler(economyService)

	economy := rg.Group("/economy")
	{
		economy.POST("/deposit", h.deposit)
		economy.POST("/withdraw", h.withdraw)
		economy.POST("/transfer", h.transfer)
		// Legacy combined-record transfer, kept for old clients.
		economy.POST("/transfer/direct", h.transferDirect)
	}
}

func (h *economyHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.economyService.Deposit(c.Request.Context(), sessionID, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *economyHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.economyService.Withdraw(c.Request.Context(), sessionID, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *economyHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.economyService.Transfer(c.Request.Context(), sessionID, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *economyHandler) transferDirect(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.economyService.TransferDirect(c.Request.Context(), sessionID, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
