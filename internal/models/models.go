package models

import (
	"strconv"
	"strings"
	"time"
)

// Device represents a controllable device (light, fan, lamp, ...)
type Device struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	DeviceType string    `json:"device_type"`
	Image      string    `json:"image,omitempty"`
	IsOn       bool      `json:"is_on"`
	MQTTTopic  string    `json:"mqtt_topic"`
	SpaceID    int64     `json:"space_id"`
	RoomID     *int64    `json:"room_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TelemetrySnapshot is one parsed telemetry reading from the light controller.
// Snapshots are append-only; a new row is inserted whenever a full status
// frame arrives.
type TelemetrySnapshot struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"` // "on" or "off"
	Current   float64   `json:"current"` // amperes
	Power     float64   `json:"power"`   // watts
	Timestamp time.Time `json:"timestamp"`
}

// Scenario is a user-defined automation rule with on/off times and a
// recurrence pattern. Times are stored as "HH:mm" plus an AM/PM period marker.
type Scenario struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	TimeOn          string     `json:"time_on"`
	TimeOff         string     `json:"time_off"`
	TimeOnPeriod    string     `json:"time_on_period"`
	TimeOffPeriod   string     `json:"time_off_period"`
	ScheduleType    string     `json:"schedule_type"` // everyday, weekdays, custom
	SelectedDates   []int      `json:"selected_dates,omitempty"`
	SelectedMonth   *int       `json:"selected_month,omitempty"`
	SelectedYear    *int       `json:"selected_year,omitempty"`
	Active          bool       `json:"active"`
	ScheduleEnabled bool       `json:"schedule_enabled"`
	DeviceStatus    bool       `json:"device_status"`
	Volume          int        `json:"volume"`
	DeviceIDs       string     `json:"-"` // comma-delimited in storage
	RoomIDs         string     `json:"-"`
	UserID          int64      `json:"user_id"`
	SpaceID         *int64     `json:"space_id,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	LastExecutedOn  *time.Time `json:"last_executed_on,omitempty"`
	LastExecutedOff *time.Time `json:"last_executed_off,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DeviceIDList decodes the stored device id list.
func (s *Scenario) DeviceIDList() []int64 { return DecodeIDList(s.DeviceIDs) }

// RoomIDList decodes the stored room id list.
func (s *Scenario) RoomIDList() []int64 { return DecodeIDList(s.RoomIDs) }

// Space groups rooms and devices under one physical location.
type Space struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Room belongs to a space.
type Room struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SpaceID   int64     `json:"space_id"`
	CreatedAt time.Time `json:"created_at"`
}

// User is an account that owns spaces and scenarios.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// DecodeIDList parses a comma-delimited id list. An empty string decodes to
// an empty list; blank or non-numeric segments are skipped.
func DecodeIDList(s string) []int64 {
	ids := []int64{}
	if s == "" {
		return ids
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// EncodeIDList is the inverse of DecodeIDList. An empty or nil list encodes
// to the empty string, so Encode(Decode(x)) == x for well-formed x.
func EncodeIDList(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
