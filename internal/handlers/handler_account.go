package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veloxrp/econ_backend/internal/core/domain"
	portssvc "github.com/veloxrp/econ_backend/internal/core/ports/services"
	"github.com/veloxrp/econ_backend/internal/dto"
	"github.com/veloxrp/econ_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	characters     portssvc.CharacterResolver
}

func newAccountHandler(as portssvc.AccountSvcFacade, resolver portssvc.CharacterResolver) *accountHandler {
	return &accountHandler{accountService: as, characters: resolver}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, resolver portssvc.CharacterResolver) {
	h := newAccountHandler(accountService, resolver)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.GET("/:id/transactions", h.listTransactions)
		accounts.PUT("/:id/access", h.setAccess)
		accounts.GET("/mine", h.listMine)
	}
}

func parseAccountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id"})
		return 0, false
	}
	return id, true
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), accountID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *accountHandler) listTransactions(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.accountService.ListTransactions(c.Request.Context(), accountID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.TransactionResponse, len(records))
	for i, rec := range records {
		responses[i] = dto.ToTransactionResponse(rec)
	}
	c.JSON(http.StatusOK, gin.H{"transactions": responses})
}

func (h *accountHandler) setAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.SetAccountAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setAccess", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var role *domain.AccountRole
	if req.Role != nil {
		r := domain.AccountRole(*req.Role)
		role = &r
	}

	if err := h.accountService.SetAccountAccess(c.Request.Context(), accountID, req.CharacterID, role); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// listMine lists every account the calling character can access. The caller is
// identified by the session header only; a client-supplied character id is
// never trusted here.
func (h *accountHandler) listMine(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	char, err := h.characters.ResolveCharacter(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	accounts, err := h.accountService.ListAccountsForCharacter(c.Request.Context(), char.CharacterID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.AccountWithRoleResponse, len(accounts))
	for i, acc := range accounts {
		responses[i] = dto.AccountWithRoleResponse{
			AccountResponse: dto.ToAccountResponse(&acc.Account),
			Role:            acc.Role,
		}
	}
	c.JSON(http.StatusOK, gin.H{"accounts": responses})
}
