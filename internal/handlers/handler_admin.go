package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/savr_backend/internal/core/ports/services"
	"github.com/SscSPs/savr_backend/internal/dto"
	"github.com/SscSPs/savr_backend/internal/middleware"
	"github.com/SscSPs/savr_backend/internal/platform/config"
)

// adminHandler handles the admin console routes.
type adminHandler struct {
	adminService   portssvc.AdminSvcFacade
	savingsService portssvc.SavingsSvcFacade
	tokenService   portssvc.TokenSvcFacade
}

// newAdminHandler creates a new adminHandler.
func newAdminHandler(as portssvc.AdminSvcFacade, ss portssvc.SavingsSvcFacade, ts portssvc.TokenSvcFacade) *adminHandler {
	return &adminHandler{
		adminService:   as,
		savingsService: ss,
		tokenService:   ts,
	}
}

// registerAdminRoutes sets up the admin login route and the protected admin
// console routes.
func registerAdminRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services.Admin, services.Savings, services.Token)

	// 10 requests per minute per IP on the admin login endpoint
	rate, _ := limiter.NewRateFromFormatted("10-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	r.POST("/api/v1/admin/login", middleware.RateLimit(ipLimiter), h.login)

	admin := r.Group("/api/v1/admin", middleware.AdminAuthMiddleware(cfg.JWTSecret))
	{
		admin.POST("/logout", h.logout)
		admin.GET("/users", h.listUsers)
		admin.GET("/users/:id", h.getUser)
		admin.POST("/users/:id/verify-device", h.verifyDevice)
		admin.GET("/transactions", h.listTransactions)
		admin.GET("/stats", h.getStats)
	}
}

// login godoc
// @Summary Log an admin in
// @Description Authenticates admin credentials and returns an admin access token
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} dto.AdminLoginResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /admin/login [post]
func (h *adminHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for admin login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	admin, err := h.adminService.AuthenticateAdmin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), admin.AdminID, true)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Admin logged in", slog.String("admin_id", admin.AdminID))
	c.JSON(http.StatusOK, dto.AdminLoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Admin: dto.AdminResponse{
			AdminID:  admin.AdminID,
			FullName: admin.FullName,
			Email:    admin.Email,
		},
	})
}

// logout godoc
// @Summary Log an admin out
// @Description Stateless acknowledgement; admin sessions are access-token only
// @Tags admin
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /admin/logout [post]
func (h *adminHandler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// listUsers godoc
// @Summary List users
// @Description Returns a page of users, newest first, optionally filtered by a name/email search term
// @Tags admin
// @Produce  json
// @Param   page query int false "Page number (1-based)" default(1)
// @Param   limit query int false "Page size (max 100)" default(20)
// @Param   search query string false "Name or email filter"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for user listing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination parameters: " + err.Error()})
		return
	}

	page, err := h.adminService.ListUsers(c.Request.Context(), params.Page, params.Limit, params.Search)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(page))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags admin
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *adminHandler) getUser(c *gin.Context) {
	user, err := h.adminService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// verifyDevice godoc
// @Summary Verify a user's device
// @Description Marks the user's device as trusted, unlocking deposits and withdrawals. Idempotent.
// @Tags admin
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.VerifyDeviceResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/verify-device [post]
func (h *adminHandler) verifyDevice(c *gin.Context) {
	user, err := h.savingsService.VerifyDevice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyDeviceResponse{
		UserID:         user.UserID,
		DeviceVerified: user.DeviceVerified,
	})
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Returns a page of transactions across all users, newest first, optionally filtered by user
// @Tags admin
// @Produce  json
// @Param   page query int false "Page number (1-based)" default(1)
// @Param   limit query int false "Page size (max 100)" default(20)
// @Param   userId query string false "Filter by user ID"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Security BearerAuth
// @Router /admin/transactions [get]
func (h *adminHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for transaction listing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination parameters: " + err.Error()})
		return
	}

	page, err := h.adminService.ListTransactions(c.Request.Context(), params.UserID, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(page))
}

// getStats godoc
// @Summary Get dashboard stats
// @Description Returns user, balance and transaction aggregates, served from a short-lived cache
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *adminHandler) getStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalUsers:        stats.TotalUsers,
		VerifiedUsers:     stats.VerifiedUsers,
		TotalBalance:      stats.TotalBalance,
		TotalTransactions: stats.TotalTransactions,
	})
}
