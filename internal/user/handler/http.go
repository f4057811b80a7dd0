package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/platform/httpx"
	"healthtrack/backend/internal/user/domain"
	"healthtrack/backend/internal/user/service"
)

// AccountHandler serves /v1/me and /v1/account.
type AccountHandler struct {
	svc *service.AccountService
}

func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Register mounts the account routes on r, which must run the auth middleware.
func (h *AccountHandler) Register(r gin.IRoutes) {
	r.GET("/v1/me", h.Me)
	r.DELETE("/v1/account", h.Delete)
}

var accountErrors = []httpx.Mapping{
	{Err: service.ErrUserNotFound, Status: http.StatusNotFound},
}

type userResponse struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

func (h *AccountHandler) Me(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	u, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err, accountErrors...)
		return
	}
	c.JSON(http.StatusOK, userResponse{ID: u.ID, Email: u.Email, Status: u.Status, CreatedAt: u.CreatedAt})
}

// Delete handles DELETE /v1/account. The account and all of its health data are removed.
func (h *AccountHandler) Delete(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAccount(c.Request.Context(), userID); err != nil {
		httpx.Error(c, err, accountErrors...)
		return
	}
	c.Status(http.StatusNoContent)
}
