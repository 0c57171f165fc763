package bridge

import (
	"encoding/json"
)

// statusFrame is the decoded form of a status payload. Every field is
// optional: a missing or malformed field leaves the corresponding cached
// value untouched instead of resetting it.
type statusFrame struct {
	State   *string
	Current *float64
	Power   *float64

	// PhysicalSwitch is set when the payload carries source=physical_switch,
	// meaning the state change came from hardware rather than a command.
	PhysicalSwitch bool

	// HasState reports whether the payload carried a state field at all,
	// valid or not. Its presence marks a full status frame.
	HasState bool
}

// fieldError describes one field that could not be decoded.
type fieldError struct {
	Field string
	Err   error
}

// decodeStatusFrame extracts state/current/power/source from a loosely
// structured status payload. The payload is not required to conform to a
// strict schema: each field is decoded independently, so one malformed
// numeric value does not abort the other extractions. Returns ok=false when
// the payload is not even a JSON object.
func decodeStatusFrame(payload []byte) (frame statusFrame, fieldErrs []fieldError, ok bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return statusFrame{}, nil, false
	}

	if rawState, present := raw["state"]; present {
		frame.HasState = true
		var state string
		if err := json.Unmarshal(rawState, &state); err != nil {
			fieldErrs = append(fieldErrs, fieldError{"state", err})
		} else if state == "on" || state == "off" {
			frame.State = &state
		}
	}

	for _, field := range []struct {
		name string
		dst  **float64
	}{{"current", &frame.Current}, {"power", &frame.Power}} {
		rawVal, present := raw[field.name]
		if !present {
			continue
		}
		var v float64
		if err := json.Unmarshal(rawVal, &v); err != nil {
			fieldErrs = append(fieldErrs, fieldError{field.name, err})
			continue
		}
		*field.dst = &v
	}

	if rawSource, present := raw["source"]; present {
		var source string
		if err := json.Unmarshal(rawSource, &source); err == nil && source == "physical_switch" {
			frame.PhysicalSwitch = true
		}
	}

	return frame, fieldErrs, true
}
