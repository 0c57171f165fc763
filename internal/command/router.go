// Package command maps a desired device state to the MQTT topic and payload
// that carry it.
package command

import (
	"fmt"
	"strings"
)

// ControlTopic is the canonical control topic for the light controller class.
const ControlTopic = "/light/control"

// Payload literals understood by the device firmware.
const (
	PayloadOn  = "1"
	PayloadOff = "0"

	// PayloadResetWifi tells the controller to drop its WiFi credentials and
	// re-enter provisioning mode.
	PayloadResetWifi = "reset_wifi"
)

// Resolve returns the topic and payload for setting a device to the desired
// state.
//
// Light-typed devices ("light" and the mobile-app "lamp" alias) are always
// routed to the canonical control topic, even when a different topic is
// stored for the device. This is intentional routing policy, not a fallback:
// the system was built against a single physical light controller that only
// listens on that topic. Other device types use their stored topic, with a
// per-device namespace path as the fallback.
func Resolve(deviceType, storedTopic string, deviceID int64, desiredOn bool) (topic, payload string) {
	payload = PayloadOff
	if desiredOn {
		payload = PayloadOn
	}

	switch strings.ToLower(deviceType) {
	case "light", "lamp":
		return ControlTopic, payload
	}

	if storedTopic != "" {
		return storedTopic, payload
	}
	return fmt.Sprintf("/device/%d", deviceID), payload
}
