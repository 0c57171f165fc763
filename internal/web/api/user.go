package api

import (
	"smartlight/auth"
	"smartlight/internal/db"
	dbmodels "smartlight/internal/models"
	"smartlight/internal/web/middleware"
	"smartlight/internal/web/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterUserRoutes(r *gin.Engine, mw *middleware.MiddlewareManager, store *db.DB, authModule *auth.AuthModule, log *zap.SugaredLogger) {
	users := r.Group("/users")
	users.Use(mw.RequireAuth())
	{
		users.GET("/me", func(c *gin.Context) {
			userID := c.GetInt64("user_id")
			var user dbmodels.User
			err := store.Pool().QueryRow(c, "SELECT id, username, email, created_at FROM users WHERE id=$1", userID).
				Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
			if err != nil {
				log.Warnw("failed to fetch user", "user_id", userID, "error", err)
				c.JSON(404, gin.H{"error": "User not found"})
				return
			}
			c.JSON(200, user)
		})

		users.POST("/change-password", func(c *gin.Context) {
			userID := c.GetInt64("user_id")
			var req models.ChangePasswordRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			if err := authModule.ChangePassword(c, userID, req.OldPassword, req.NewPassword); err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"message": "Password changed"})
		})
	}
}
