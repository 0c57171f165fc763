package bridge

import "testing"

func TestDecodeStatusFrame(t *testing.T) {
	t.Run("full frame", func(t *testing.T) {
		frame, fieldErrs, ok := decodeStatusFrame([]byte(`{"state":"on","current":0.5,"power":3.2}`))
		if !ok {
			t.Fatal("ok = false for valid JSON object")
		}
		if len(fieldErrs) != 0 {
			t.Errorf("fieldErrs = %v, want none", fieldErrs)
		}
		if !frame.HasState || frame.State == nil || *frame.State != "on" {
			t.Errorf("state = %+v, want on", frame.State)
		}
		if frame.Current == nil || *frame.Current != 0.5 {
			t.Errorf("current = %v, want 0.5", frame.Current)
		}
		if frame.Power == nil || *frame.Power != 3.2 {
			t.Errorf("power = %v, want 3.2", frame.Power)
		}
	})

	t.Run("not an object", func(t *testing.T) {
		if _, _, ok := decodeStatusFrame([]byte(`on`)); ok {
			t.Error("ok = true for a non-object payload")
		}
	})

	t.Run("malformed field reported, others decoded", func(t *testing.T) {
		frame, fieldErrs, ok := decodeStatusFrame([]byte(`{"state":"off","current":"bad","power":1.1}`))
		if !ok {
			t.Fatal("ok = false")
		}
		if len(fieldErrs) != 1 || fieldErrs[0].Field != "current" {
			t.Errorf("fieldErrs = %v, want one error on current", fieldErrs)
		}
		if frame.Current != nil {
			t.Errorf("current = %v, want nil", frame.Current)
		}
		if frame.State == nil || *frame.State != "off" {
			t.Errorf("state = %v, want off", frame.State)
		}
		if frame.Power == nil || *frame.Power != 1.1 {
			t.Errorf("power = %v, want 1.1", frame.Power)
		}
	})

	t.Run("unknown state value keeps HasState", func(t *testing.T) {
		frame, _, ok := decodeStatusFrame([]byte(`{"state":"dim"}`))
		if !ok {
			t.Fatal("ok = false")
		}
		if !frame.HasState {
			t.Error("HasState = false, want true")
		}
		if frame.State != nil {
			t.Errorf("state = %q, want nil for a value outside on/off", *frame.State)
		}
	})

	t.Run("physical switch source", func(t *testing.T) {
		frame, _, ok := decodeStatusFrame([]byte(`{"state":"on","source":"physical_switch"}`))
		if !ok || !frame.PhysicalSwitch {
			t.Errorf("PhysicalSwitch = %v, want true", frame.PhysicalSwitch)
		}

		frame, _, _ = decodeStatusFrame([]byte(`{"state":"on","source":"app"}`))
		if frame.PhysicalSwitch {
			t.Error("PhysicalSwitch = true for source app")
		}
	})
}
