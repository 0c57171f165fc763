package bridge

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"smartlight/internal/models"
)

func newTestBridge(sink SnapshotSink) *Bridge {
	b := New(Config{
		StatusTopic: "/light/status",
		Wildcard:    "/light/#",
	}, sink, zap.NewNop().Sugar())
	b.now = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }
	return b
}

func TestHandleStatusFullFrame(t *testing.T) {
	var snaps []models.TelemetrySnapshot
	b := newTestBridge(func(s models.TelemetrySnapshot) { snaps = append(snaps, s) })

	b.handleMessage("/light/status", `{"state":"on","current":0.42,"power":5.1}`)

	snap := b.LastSnapshot()
	if snap.Status != "on" || snap.Current != 0.42 || snap.Power != 5.1 {
		t.Errorf("cache = %+v, want on/0.42/5.1", snap)
	}
	if len(snaps) != 1 {
		t.Fatalf("sink received %d snapshots, want 1", len(snaps))
	}
	if snaps[0].Status != "on" || snaps[0].Current != 0.42 || snaps[0].Power != 5.1 {
		t.Errorf("persisted snapshot = %+v", snaps[0])
	}
}

func TestHandleStatusMalformedFieldKeepsOthers(t *testing.T) {
	var snaps []models.TelemetrySnapshot
	b := newTestBridge(func(s models.TelemetrySnapshot) { snaps = append(snaps, s) })

	b.handleMessage("/light/status", `{"state":"on","current":1.5,"power":2.0}`)
	snaps = snaps[:0]

	// A malformed power value must not reset state or current.
	b.handleMessage("/light/status", `{"state":"off","current":0.1,"power":"oops"}`)

	snap := b.LastSnapshot()
	if snap.Status != "off" {
		t.Errorf("status = %q, want off", snap.Status)
	}
	if snap.Current != 0.1 {
		t.Errorf("current = %v, want 0.1", snap.Current)
	}
	if snap.Power != 2.0 {
		t.Errorf("power = %v, want stale 2.0", snap.Power)
	}
	// The frame still has a state field, so it still persists.
	if len(snaps) != 1 {
		t.Errorf("sink received %d snapshots, want 1", len(snaps))
	}
}

func TestHandleStatusPartialFrameDoesNotPersist(t *testing.T) {
	var snaps []models.TelemetrySnapshot
	b := newTestBridge(func(s models.TelemetrySnapshot) { snaps = append(snaps, s) })

	b.handleMessage("/light/status", `{"current":0.9}`)

	if got := b.LastSnapshot().Current; got != 0.9 {
		t.Errorf("current = %v, want 0.9", got)
	}
	if len(snaps) != 0 {
		t.Errorf("sink received %d snapshots, want 0 for a frame without state", len(snaps))
	}
}

func TestHandleStatusRejectsUnknownState(t *testing.T) {
	b := newTestBridge(nil)

	b.handleMessage("/light/status", `{"state":"on"}`)
	b.handleMessage("/light/status", `{"state":"blinking"}`)

	if got := b.cache.Status(); got != "on" {
		t.Errorf("status = %q, want on after rejecting unknown state", got)
	}
}

func TestHandleStatusBareOnOff(t *testing.T) {
	b := newTestBridge(nil)

	b.handleMessage("/light/status", "on")
	if got := b.cache.Status(); got != "on" {
		t.Errorf("status = %q, want on", got)
	}

	b.handleMessage("/light/status", " off ")
	if got := b.cache.Status(); got != "off" {
		t.Errorf("status = %q, want off", got)
	}

	b.handleMessage("/light/status", "whatever")
	if got := b.cache.Status(); got != "off" {
		t.Errorf("status = %q, want unchanged off", got)
	}
}

func TestHandleMessageSensorChannels(t *testing.T) {
	b := newTestBridge(nil)

	b.handleMessage("/light/current", "0.33")
	b.handleMessage("/light/power", " 12.5 ")
	b.handleMessage("/light/power", "not a float")

	snap := b.LastSnapshot()
	if snap.Current != 0.33 {
		t.Errorf("current = %v, want 0.33", snap.Current)
	}
	if snap.Power != 12.5 {
		t.Errorf("power = %v, want 12.5 after ignoring the invalid payload", snap.Power)
	}
}

func TestHandleStatusPhysicalSwitch(t *testing.T) {
	var snaps []models.TelemetrySnapshot
	b := newTestBridge(func(s models.TelemetrySnapshot) { snaps = append(snaps, s) })

	b.handleMessage("/light/status", `{"state":"off","source":"physical_switch"}`)

	if got := b.cache.Status(); got != "off" {
		t.Errorf("status = %q, want off", got)
	}
	if len(snaps) != 1 {
		t.Errorf("sink received %d snapshots, want 1", len(snaps))
	}
}
