package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartlight/internal/bridge"
)

func TestLightStatusEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	br := bridge.New(bridge.Config{}, nil, zap.NewNop().Sugar())
	RegisterLightRoutes(r, nil, br, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/light/status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Connected bool `json:"connected"`
		Telemetry struct {
			Status string `json:"status"`
		} `json:"telemetry"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Connected {
		t.Error("connected = true for a bridge that never connected")
	}
	if body.Telemetry.Status != "off" {
		t.Errorf("telemetry status = %q, want default off", body.Telemetry.Status)
	}
}

func TestLightControlRejectsBadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	br := bridge.New(bridge.Config{}, nil, zap.NewNop().Sugar())
	RegisterLightRoutes(r, nil, br, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/light/control", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
