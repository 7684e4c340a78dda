package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/savr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/savr_backend/internal/core/ports/services"
	"github.com/SscSPs/savr_backend/internal/dto"
	"github.com/SscSPs/savr_backend/internal/middleware"
)

// savingsHandler handles HTTP requests against the caller's savings account.
type savingsHandler struct {
	savingsService portssvc.SavingsSvcFacade
}

// newSavingsHandler creates a new savingsHandler.
func newSavingsHandler(ss portssvc.SavingsSvcFacade) *savingsHandler {
	return &savingsHandler{savingsService: ss}
}

// RegisterSavingsRoutes registers the savings account routes. The group is
// expected to carry the user auth middleware.
func RegisterSavingsRoutes(rg *gin.RouterGroup, savingsService portssvc.SavingsSvcFacade) {
	h := newSavingsHandler(savingsService)

	savings := rg.Group("/savings")
	{
		savings.POST("/deposit", h.deposit)
		savings.POST("/withdraw", h.withdraw)
		savings.GET("/balance", h.getBalance)
		savings.GET("/history", h.getHistory)
	}
}

// deposit godoc
// @Summary Deposit into the savings account
// @Description Adds the amount to the caller's balance and appends a ledger entry atomically
// @Tags savings
// @Accept  json
// @Produce  json
// @Param   deposit body dto.AmountRequest true "Amount to deposit"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} ErrorResponse "Invalid or non-positive amount"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Device not verified"
// @Failure 409 {object} ErrorResponse "Write conflict persisted after retries"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /savings/deposit [post]
func (h *savingsHandler) deposit(c *gin.Context) {
	h.applyMutation(c, h.savingsService.Deposit)
}

// withdraw godoc
// @Summary Withdraw from the savings account
// @Description Subtracts the amount from the caller's balance and appends a ledger entry atomically
// @Tags savings
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.AmountRequest true "Amount to withdraw"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or insufficient balance"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Device not verified"
// @Failure 409 {object} ErrorResponse "Write conflict persisted after retries"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /savings/withdraw [post]
func (h *savingsHandler) withdraw(c *gin.Context) {
	h.applyMutation(c, h.savingsService.Withdraw)
}

type mutationFunc func(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Transaction, error)

func (h *savingsHandler) applyMutation(c *gin.Context, mutate mutationFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for mutation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Amount must be a number greater than 0"})
		return
	}

	txn, err := mutate(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MutationResponse{
		Balance:     txn.BalanceAfter,
		Transaction: dto.ToTransactionResponse(txn),
	})
}

// getBalance godoc
// @Summary Get the current balance
// @Description Returns the caller's stored balance
// @Tags savings
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /savings/balance [get]
func (h *savingsHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balance, err := h.savingsService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// getHistory godoc
// @Summary Get transaction history
// @Description Returns a reverse-chronological page of the caller's ledger entries
// @Tags savings
// @Produce  json
// @Param   page query int false "Page number (1-based)" default(1)
// @Param   limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /savings/history [get]
func (h *savingsHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.HistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for history", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination parameters: " + err.Error()})
		return
	}

	page, err := h.savingsService.GetHistory(c.Request.Context(), userID, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryResponse(page))
}
