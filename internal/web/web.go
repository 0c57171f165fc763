package web

import (
	"smartlight/auth"
	"smartlight/internal/bridge"
	"smartlight/internal/db"
	"smartlight/internal/web/api"
	"smartlight/internal/web/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WebServer struct {
	router *gin.Engine
}

func NewWebServer(store *db.DB, br *bridge.Bridge, authModule *auth.AuthModule, trigger api.ScenarioTrigger, log *zap.SugaredLogger) *WebServer {
	router := gin.Default()

	mw := middleware.NewMiddlewareManager(authModule)

	api.RegisterAuthRoutes(router, authModule, log)
	api.RegisterUserRoutes(router, mw, store, authModule, log)
	api.RegisterDeviceRoutes(router, mw, store, br, log)
	api.RegisterScenarioRoutes(router, mw, store, trigger, log)
	api.RegisterSpaceRoutes(router, mw, store)
	api.RegisterLightRoutes(router, store, br, log)

	return &WebServer{router: router}
}

func (ws *WebServer) Start(addr string) error {
	return ws.router.Run(addr)
}
