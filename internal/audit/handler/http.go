package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/audit/domain"
	auditrepo "healthtrack/backend/internal/audit/repository"
	"healthtrack/backend/internal/platform/httpx"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// AuditHandler lets users read their own audit trail.
type AuditHandler struct {
	repo auditrepo.Repository
}

func NewAuditHandler(repo auditrepo.Repository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// Register mounts GET /v1/audit-logs on r, which must run the auth middleware.
func (h *AuditHandler) Register(r gin.IRoutes) {
	r.GET("/v1/audit-logs", h.List)
}

// List handles GET /v1/audit-logs?limit=&offset=, newest first.
func (h *AuditHandler) List(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	limit, err := queryInt(c, "limit", defaultPageSize)
	if err != nil || limit < 1 || limit > maxPageSize {
		httpx.BadRequest(c, "limit must be between 1 and "+strconv.Itoa(maxPageSize))
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		httpx.BadRequest(c, "offset must be a non-negative integer")
		return
	}
	logs, err := h.repo.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	if logs == nil {
		logs = []*domain.AuditLog{}
	}
	c.JSON(http.StatusOK, gin.H{"audit_logs": logs, "limit": limit, "offset": offset})
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
