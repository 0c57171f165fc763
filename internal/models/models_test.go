package models

import (
	"reflect"
	"testing"
)

func TestDecodeIDList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []int64
	}{
		{"empty string", "", []int64{}},
		{"single id", "7", []int64{7}},
		{"multiple ids", "1,2,3", []int64{1, 2, 3}},
		{"spaces trimmed", " 1 , 2 ", []int64{1, 2}},
		{"blank segments skipped", "1,,2,", []int64{1, 2}},
		{"non-numeric segments skipped", "1,abc,3", []int64{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeIDList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeIDList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeIDList(t *testing.T) {
	if got := EncodeIDList(nil); got != "" {
		t.Errorf("EncodeIDList(nil) = %q, want empty", got)
	}
	if got := EncodeIDList([]int64{4, 8, 15}); got != "4,8,15" {
		t.Errorf("EncodeIDList = %q, want %q", got, "4,8,15")
	}
}

func TestIDListRoundTrip(t *testing.T) {
	for _, s := range []string{"", "1", "10,20,30"} {
		if got := EncodeIDList(DecodeIDList(s)); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}

func TestScenarioIDListHelpers(t *testing.T) {
	sc := Scenario{DeviceIDs: "3,4", RoomIDs: ""}
	if got := sc.DeviceIDList(); !reflect.DeepEqual(got, []int64{3, 4}) {
		t.Errorf("DeviceIDList = %v, want [3 4]", got)
	}
	if got := sc.RoomIDList(); len(got) != 0 {
		t.Errorf("RoomIDList = %v, want empty", got)
	}
}
