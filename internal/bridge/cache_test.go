package bridge

import (
	"testing"
	"time"
)

func TestTelemetryCacheDefaults(t *testing.T) {
	c := NewTelemetryCache()
	if got := c.Status(); got != "off" {
		t.Errorf("default status = %q, want off", got)
	}
}

func TestTelemetryCacheSetStatus(t *testing.T) {
	c := NewTelemetryCache()

	c.SetStatus("on")
	if got := c.Status(); got != "on" {
		t.Errorf("status = %q, want on", got)
	}

	c.SetStatus("ON")
	if got := c.Status(); got != "on" {
		t.Errorf("status = %q, values outside on/off must be ignored", got)
	}
}

func TestTelemetryCacheSnapshot(t *testing.T) {
	c := NewTelemetryCache()
	c.SetStatus("on")
	c.SetCurrent(0.7)
	c.SetPower(8.4)

	at := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	snap := c.Snapshot(at)

	if snap.Status != "on" || snap.Current != 0.7 || snap.Power != 8.4 {
		t.Errorf("snapshot = %+v", snap)
	}
	if !snap.Timestamp.Equal(at) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, at)
	}
}
