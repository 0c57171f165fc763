package api

import (
	"net/http"
	"time"

	"smartlight/internal/bridge"
	"smartlight/internal/command"
	"smartlight/internal/db"
	"smartlight/internal/web/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const streamInterval = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The app is served from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func RegisterLightRoutes(r *gin.Engine, store *db.DB, br *bridge.Bridge, log *zap.SugaredLogger) {
	light := r.Group("/api/light")
	{
		light.POST("/control", func(c *gin.Context) {
			var req models.ControlRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			br.PublishControl(req.Command)
			c.JSON(200, gin.H{"message": "Command sent: " + req.Command})
		})

		light.POST("/reset-wifi", func(c *gin.Context) {
			br.PublishControl(command.PayloadResetWifi)
			c.JSON(200, gin.H{
				"success": true,
				"message": "Reset WiFi command sent. The controller will restart and enter provisioning mode.",
			})
		})

		light.GET("/status", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"connected": br.IsConnected(),
				"telemetry": br.LastSnapshot(),
			})
		})

		light.GET("/latest", func(c *gin.Context) {
			snap, err := store.LatestTelemetry(c)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch telemetry"})
				return
			}
			if snap == nil {
				c.Status(204)
				return
			}
			c.JSON(200, snap)
		})

		light.GET("/history", func(c *gin.Context) {
			var start, end time.Time
			if s := c.Query("start"); s != "" {
				t, err := time.Parse(time.RFC3339, s)
				if err != nil {
					c.JSON(400, gin.H{"error": "Invalid start time"})
					return
				}
				start = t
			}
			if s := c.Query("end"); s != "" {
				t, err := time.Parse(time.RFC3339, s)
				if err != nil {
					c.JSON(400, gin.H{"error": "Invalid end time"})
					return
				}
				end = t
			}
			history, err := store.TelemetryBetween(c, start, end)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch history"})
				return
			}
			c.JSON(200, history)
		})

		light.GET("/stats", func(c *gin.Context) {
			stats, err := store.GetTelemetryStats(c)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch stats"})
				return
			}
			c.JSON(200, stats)
		})

		light.GET("/stream", func(c *gin.Context) {
			conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
			if err != nil {
				log.Warnw("websocket upgrade failed", "error", err)
				return
			}
			go streamTelemetry(conn, br, log)
		})
	}
}

// streamTelemetry pushes the cached telemetry to the client at a fixed
// interval until the connection drops.
func streamTelemetry(conn *websocket.Conn, br *bridge.Bridge, log *zap.SugaredLogger) {
	defer conn.Close()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteJSON(br.LastSnapshot()); err != nil {
			log.Debugw("telemetry stream closed", "error", err)
			return
		}
	}
}
