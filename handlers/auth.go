package handlers

import (
	"errors"
	"net/http"
	"strings"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHandler handles account sign-up for doctors and patients.
func RegisterHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		resp, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, auth.ErrEmailTaken) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// LoginHandler handles sign-in. A locked account gets 429 with the seconds
// left before the lock expires.
func LoginHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		resp, err := svc.Login(c.Request.Context(), req)
		if err != nil {
			var locked *auth.LockedError
			switch {
			case errors.As(err, &locked):
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error":            locked.Error(),
					"remainingSeconds": locked.RemainingSeconds,
				})
			case errors.Is(err, auth.ErrInvalidCredentials):
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			case errors.Is(err, auth.ErrAccountPending), errors.Is(err, auth.ErrAccountRejected):
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			default:
				logger.Error("Login failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SignOutHandler revokes the caller's token.
func SignOutHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString(middleware.CtxToken)
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if err := svc.SignOut(c.Request.Context(), token); err != nil {
			getLogger(c).Error("Sign-out failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "sign out failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "signed out"})
	}
}

// ForgotPasswordHandler starts the email reset flow. Always 200 so the
// endpoint cannot confirm which emails exist.
func ForgotPasswordHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if err := svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
			getLogger(c).Error("Forgot password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password reset failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset code was sent"})
	}
}

// ResetPasswordHandler completes the reset flow with the emailed code.
func ResetPasswordHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if err := svc.ResetPassword(c.Request.Context(), req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}
