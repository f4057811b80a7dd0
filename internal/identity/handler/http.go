package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/identity/service"
	"healthtrack/backend/internal/platform/httpx"
)

// AuthHandler serves the account register and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler returns a handler over auth. A nil auth makes every endpoint answer 503.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register mounts the auth routes on r.
func (h *AuthHandler) Register(r gin.IRoutes) {
	r.POST("/v1/auth/register", h.SignUp)
	r.POST("/v1/auth/login", h.Login)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
}

var authErrors = []httpx.Mapping{
	{Err: service.ErrEmailAlreadyRegistered, Status: http.StatusConflict},
	{Err: service.ErrInvalidCredentials, Status: http.StatusUnauthorized},
	{Err: service.ErrRateLimited, Status: http.StatusTooManyRequests},
}

// SignUp handles POST /v1/auth/register.
func (h *AuthHandler) SignUp(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	res, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(c, err, authErrors...)
		return
	}
	c.JSON(http.StatusCreated, toAuthResponse(res))
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var rl *service.RateLimitedError
		if errors.As(err, &rl) {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
		}
		httpx.Error(c, err, authErrors...)
		return
	}
	c.JSON(http.StatusOK, toAuthResponse(res))
}

func (h *AuthHandler) available(c *gin.Context) bool {
	if h.auth == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "accounts are not configured"})
		return false
	}
	return true
}

func toAuthResponse(res *service.AuthResult) authResponse {
	return authResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		UserID:      res.UserID,
		Email:       res.Email,
	}
}
