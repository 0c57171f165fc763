package api

import (
	"smartlight/auth"
	"smartlight/internal/taskqueue"
	"smartlight/internal/web/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterAuthRoutes(router *gin.Engine, authModule *auth.AuthModule, log *zap.SugaredLogger) {
	r := router.Group("/auth")
	{
		r.POST("/login", func(c *gin.Context) {
			var loginRequest models.LoginRequest
			if err := c.ShouldBindJSON(&loginRequest); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			token, err := authModule.LoginWithJWT(c, loginRequest.Username, loginRequest.Password)
			if err != nil {
				c.JSON(401, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"token": token})
		})

		r.POST("/register", func(c *gin.Context) {
			var registerRequest models.RegisterRequest
			if err := c.ShouldBindJSON(&registerRequest); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			token, err := authModule.RegisterWithJWT(c, registerRequest.Username, registerRequest.Password, registerRequest.Email)
			if err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
			c.JSON(201, gin.H{"token": token})
		})

		r.POST("/forgot-password", func(c *gin.Context) {
			var req models.ForgotPasswordRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			code, err := authModule.RequestPasswordReset(c, req.Email)
			if err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
			if err := taskqueue.EnqueueResetCodeEmail(req.Email, code); err != nil {
				log.Errorw("failed to enqueue reset code email", "email", req.Email, "error", err)
				c.JSON(500, gin.H{"error": "Failed to send reset code"})
				return
			}
			// The code goes out by mail only, never in the response.
			c.JSON(200, gin.H{"message": "Reset code sent"})
		})

		r.POST("/verify-reset-code", func(c *gin.Context) {
			var req models.VerifyResetCodeRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			if err := authModule.VerifyResetCode(c, req.Email, req.Code); err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"message": "Code verified"})
		})

		r.POST("/reset-password", func(c *gin.Context) {
			var req models.ResetPasswordRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			if err := authModule.ResetPassword(c, req.Email, req.Code, req.NewPassword); err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"message": "Password reset"})
		})
	}
}
