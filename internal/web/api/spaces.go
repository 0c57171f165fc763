package api

import (
	"strconv"

	"smartlight/internal/db"
	"smartlight/internal/web/middleware"
	"smartlight/internal/web/models"

	"github.com/gin-gonic/gin"
)

func RegisterSpaceRoutes(r *gin.Engine, mw *middleware.MiddlewareManager, store *db.DB) {
	spaces := r.Group("/spaces")
	spaces.Use(mw.RequireAuth())
	{
		spaces.GET("/", func(c *gin.Context) {
			userID := c.GetInt64("user_id")
			list, err := store.ListSpacesByOwner(c, userID)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch spaces"})
				return
			}
			c.JSON(200, list)
		})

		spaces.POST("/", func(c *gin.Context) {
			userID := c.GetInt64("user_id")
			var req models.AddSpaceRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			space, err := store.CreateSpace(c, req.Name, userID)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to create space"})
				return
			}
			c.JSON(201, space)
		})

		spaces.DELETE("/:id", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid space id"})
				return
			}
			if err := store.DeleteSpace(c, id); err != nil {
				c.JSON(500, gin.H{"error": "Failed to delete space"})
				return
			}
			c.JSON(200, gin.H{"status": "Space deleted"})
		})

		spaces.GET("/:id/rooms", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid space id"})
				return
			}
			rooms, err := store.ListRoomsBySpace(c, id)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch rooms"})
				return
			}
			c.JSON(200, rooms)
		})

		spaces.POST("/:id/rooms", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid space id"})
				return
			}
			var req models.AddRoomRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			room, err := store.CreateRoom(c, req.Name, id)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to create room"})
				return
			}
			c.JSON(201, room)
		})
	}
}
