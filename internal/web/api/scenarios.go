package api

import (
	"context"
	"strconv"

	"smartlight/internal/db"
	dbmodels "smartlight/internal/models"
	"smartlight/internal/web/middleware"
	"smartlight/internal/web/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScenarioTrigger is the manual-override entry point into the scheduler.
type ScenarioTrigger interface {
	Trigger(ctx context.Context, scenarioID int64, turnOn bool) error
}

// scenarioResponse mirrors dbmodels.Scenario with the id lists decoded.
type scenarioResponse struct {
	dbmodels.Scenario
	DeviceIDs []int64 `json:"device_ids"`
	RoomIDs   []int64 `json:"room_ids"`
}

func toScenarioResponse(s dbmodels.Scenario) scenarioResponse {
	return scenarioResponse{
		Scenario:  s,
		DeviceIDs: s.DeviceIDList(),
		RoomIDs:   s.RoomIDList(),
	}
}

func RegisterScenarioRoutes(r *gin.Engine, mw *middleware.MiddlewareManager, store *db.DB, trigger ScenarioTrigger, log *zap.SugaredLogger) {
	scenarios := r.Group("/scenarios")
	scenarios.Use(mw.RequireAuth())
	{
		scenarios.GET("/", func(c *gin.Context) {
			userID := c.GetInt64("user_id")
			list, err := store.ListScenariosByUser(c, userID)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch scenarios"})
				return
			}
			resp := make([]scenarioResponse, len(list))
			for i, s := range list {
				resp[i] = toScenarioResponse(s)
			}
			c.JSON(200, resp)
		})

		scenarios.GET("/:id", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid scenario id"})
				return
			}
			s, err := store.GetScenario(c, id)
			if err != nil {
				c.JSON(404, gin.H{"error": "Scenario not found"})
				return
			}
			c.JSON(200, toScenarioResponse(*s))
		})

		scenarios.POST("/", func(c *gin.Context) {
			userID := c.GetInt64("user_id")
			var req models.ScenarioRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			s := scenarioFromRequest(&req)
			s.UserID = userID
			created, err := store.CreateScenario(c, s)
			if err != nil {
				log.Errorw("failed to create scenario", "error", err)
				c.JSON(500, gin.H{"error": "Failed to create scenario"})
				return
			}
			log.Infow("created scenario", "scenario", created.Name,
				"time_on", created.TimeOn, "time_on_period", created.TimeOnPeriod,
				"time_off", created.TimeOff, "time_off_period", created.TimeOffPeriod)
			c.JSON(201, toScenarioResponse(*created))
		})

		scenarios.PUT("/:id", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid scenario id"})
				return
			}
			existing, err := store.GetScenario(c, id)
			if err != nil {
				c.JSON(404, gin.H{"error": "Scenario not found"})
				return
			}
			var req models.ScenarioRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			updated := scenarioFromRequest(&req)
			updated.ID = existing.ID
			updated.UserID = existing.UserID
			s, err := store.UpdateScenario(c, updated)
			if err != nil {
				log.Errorw("failed to update scenario", "scenario_id", id, "error", err)
				c.JSON(500, gin.H{"error": "Failed to update scenario"})
				return
			}
			c.JSON(200, toScenarioResponse(*s))
		})

		scenarios.DELETE("/:id", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid scenario id"})
				return
			}
			if err := store.DeleteScenario(c, id); err != nil {
				c.JSON(500, gin.H{"error": "Failed to delete scenario"})
				return
			}
			c.JSON(200, gin.H{"status": "Scenario deleted"})
		})

		scenarios.POST("/:id/toggle", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid scenario id"})
				return
			}
			s, err := store.ToggleScenario(c, id)
			if err != nil {
				c.JSON(404, gin.H{"error": "Scenario not found"})
				return
			}
			c.JSON(200, toScenarioResponse(*s))
		})

		scenarios.POST("/:id/trigger", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid scenario id"})
				return
			}
			var req models.TriggerScenarioRequest
			if err := c.ShouldBindJSON(&req); err != nil || req.On == nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			if err := trigger.Trigger(c, id, *req.On); err != nil {
				c.JSON(404, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"status": "Scenario triggered"})
		})
	}
}

func scenarioFromRequest(req *models.ScenarioRequest) *dbmodels.Scenario {
	boolOr := func(v *bool, def bool) bool {
		if v != nil {
			return *v
		}
		return def
	}
	volume := 70
	if req.Volume != nil {
		volume = *req.Volume
	}
	return &dbmodels.Scenario{
		Name:            req.Name,
		TimeOn:          req.TimeOn,
		TimeOff:         req.TimeOff,
		TimeOnPeriod:    req.TimeOnPeriod,
		TimeOffPeriod:   req.TimeOffPeriod,
		ScheduleType:    req.ScheduleType,
		SelectedDates:   req.SelectedDates,
		SelectedMonth:   req.SelectedMonth,
		SelectedYear:    req.SelectedYear,
		Active:          boolOr(req.Active, true),
		ScheduleEnabled: boolOr(req.ScheduleEnabled, true),
		DeviceStatus:    boolOr(req.DeviceStatus, true),
		Volume:          volume,
		DeviceIDs:       dbmodels.EncodeIDList(req.DeviceIDs),
		RoomIDs:         dbmodels.EncodeIDList(req.RoomIDs),
		SpaceID:         req.SpaceID,
		ImageURL:        req.ImageURL,
	}
}
