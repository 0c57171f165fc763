package bridge

import (
	"sync"
	"time"

	"smartlight/internal/models"
)

// TelemetryCache holds the last observed device status, current and power.
// All three activity sources (inbound MQTT callbacks, the scheduler tick and
// request handlers) read and write it concurrently, so every access goes
// through the mutex.
type TelemetryCache struct {
	mu      sync.RWMutex
	status  string
	current float64
	power   float64
}

// NewTelemetryCache returns a cache with status "off" and zero readings.
func NewTelemetryCache() *TelemetryCache {
	return &TelemetryCache{status: "off"}
}

// SetStatus stores a status value. Only "on" and "off" are accepted; anything
// else leaves the cached value unchanged.
func (c *TelemetryCache) SetStatus(status string) {
	if status != "on" && status != "off" {
		return
	}
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

// SetCurrent stores the last observed current in amperes.
func (c *TelemetryCache) SetCurrent(current float64) {
	c.mu.Lock()
	c.current = current
	c.mu.Unlock()
}

// SetPower stores the last observed power in watts.
func (c *TelemetryCache) SetPower(power float64) {
	c.mu.Lock()
	c.power = power
	c.mu.Unlock()
}

// Status returns the cached status.
func (c *TelemetryCache) Status() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Snapshot materializes the cached values as an immutable reading stamped
// with the given time.
func (c *TelemetryCache) Snapshot(at time.Time) models.TelemetrySnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.TelemetrySnapshot{
		Status:    c.status,
		Current:   c.current,
		Power:     c.power,
		Timestamp: at,
	}
}
