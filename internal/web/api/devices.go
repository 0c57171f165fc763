package api

import (
	"errors"
	"strconv"
	"strings"

	"smartlight/internal/bridge"
	"smartlight/internal/command"
	"smartlight/internal/db"
	dbmodels "smartlight/internal/models"
	"smartlight/internal/web/middleware"
	"smartlight/internal/web/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errDeviceNotFound = errors.New("device not found")

func RegisterDeviceRoutes(r *gin.Engine, mw *middleware.MiddlewareManager, store *db.DB, br *bridge.Bridge, log *zap.SugaredLogger) {
	devices := r.Group("/devices")
	devices.Use(mw.RequireAuth())
	{
		devices.GET("/", func(c *gin.Context) {
			if roomID, err := strconv.ParseInt(c.Query("room_id"), 10, 64); err == nil {
				list, err := store.ListDevicesByRoom(c, roomID)
				if err != nil {
					c.JSON(500, gin.H{"error": "Failed to fetch devices"})
					return
				}
				c.JSON(200, list)
				return
			}
			spaceID, err := strconv.ParseInt(c.Query("space_id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "space_id or room_id required"})
				return
			}
			list, err := store.ListDevicesBySpace(c, spaceID)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch devices"})
				return
			}
			c.JSON(200, list)
		})

		devices.POST("/", func(c *gin.Context) {
			var req models.AddDeviceRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			deviceType := req.DeviceType
			if deviceType == "" {
				deviceType = "light"
			}
			topic := req.MQTTTopic
			if topic == "" && strings.EqualFold(deviceType, "light") {
				topic = command.ControlTopic
			}
			dev, err := store.CreateDevice(c, &dbmodels.Device{
				Name:       req.Name,
				DeviceType: deviceType,
				Image:      req.Image,
				MQTTTopic:  topic,
				SpaceID:    req.SpaceID,
				RoomID:     req.RoomID,
			})
			if err != nil {
				log.Errorw("failed to create device", "error", err)
				c.JSON(500, gin.H{"error": "Failed to create device"})
				return
			}
			c.JSON(201, dev)
		})

		devices.GET("/:id", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid device id"})
				return
			}
			dev, err := store.GetDevice(c, id)
			if err != nil {
				c.JSON(404, gin.H{"error": "Device not found"})
				return
			}
			c.JSON(200, dev)
		})

		devices.POST("/:id/state", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid device id"})
				return
			}
			var req models.SetDeviceStateRequest
			if err := c.ShouldBindJSON(&req); err != nil || req.On == nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			dev, err := setDeviceState(c, store, br, id, *req.On)
			if err != nil {
				status := 500
				if errors.Is(err, errDeviceNotFound) {
					status = 404
				}
				c.JSON(status, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, dev)
		})

		devices.POST("/:id/toggle", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid device id"})
				return
			}
			dev, err := store.GetDevice(c, id)
			if err != nil {
				c.JSON(404, gin.H{"error": "Device not found"})
				return
			}
			dev, err = setDeviceState(c, store, br, id, !dev.IsOn)
			if err != nil {
				c.JSON(500, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, dev)
		})

		devices.DELETE("/:id", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid device id"})
				return
			}
			if err := store.DeleteDevice(c, id); err != nil {
				c.JSON(500, gin.H{"error": "Failed to delete device"})
				return
			}
			c.JSON(200, gin.H{"status": "Device deleted"})
		})
	}
}

// setDeviceState publishes the control command and persists the new state.
func setDeviceState(c *gin.Context, store *db.DB, br *bridge.Bridge, id int64, on bool) (*dbmodels.Device, error) {
	dev, err := store.GetDevice(c, id)
	if err != nil {
		return nil, errDeviceNotFound
	}

	topic, payload := command.Resolve(dev.DeviceType, dev.MQTTTopic, dev.ID, on)
	br.Publish(topic, payload)

	if err := store.SetDeviceOn(c, id, on); err != nil {
		return nil, err
	}
	dev.IsOn = on
	return dev, nil
}
