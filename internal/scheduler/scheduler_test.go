package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"smartlight/internal/command"
	"smartlight/internal/models"
)

type fakeStore struct {
	scenarios []models.Scenario
	devices   map[int64]*models.Device

	listErr error

	recorded []recordedExecution
}

type recordedExecution struct {
	scenarioID int64
	deviceIDs  []int64
	on         bool
	at         time.Time
}

func (f *fakeStore) FindActiveEnabledScenarios(ctx context.Context) ([]models.Scenario, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.scenarios, nil
}

func (f *fakeStore) GetScenario(ctx context.Context, id int64) (*models.Scenario, error) {
	for i := range f.scenarios {
		if f.scenarios[i].ID == id {
			return &f.scenarios[i], nil
		}
	}
	return nil, errors.New("no rows")
}

func (f *fakeStore) GetDevice(ctx context.Context, id int64) (*models.Device, error) {
	dev, ok := f.devices[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return dev, nil
}

func (f *fakeStore) RecordExecution(ctx context.Context, scenarioID int64, deviceIDs []int64, on bool, executedAt time.Time) error {
	f.recorded = append(f.recorded, recordedExecution{scenarioID, deviceIDs, on, executedAt})
	return nil
}

type fakePublisher struct {
	published []publishedMessage
}

type publishedMessage struct {
	topic   string
	payload string
}

func (f *fakePublisher) Publish(topic, payload string) {
	f.published = append(f.published, publishedMessage{topic, payload})
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestScheduler(store *fakeStore, pub *fakePublisher, now time.Time) *Scheduler {
	return New(store, pub, fixedClock(now), zap.NewNop().Sugar())
}

func TestTickFiresOnActionAtExactMinute(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{
		scenarios: []models.Scenario{{
			ID: 1, Name: "morning",
			TimeOn: "08:00", TimeOnPeriod: "AM",
			TimeOff: "10:00", TimeOffPeriod: "PM",
			ScheduleType: "everyday",
		}},
	}
	pub := &fakePublisher{}

	s := newTestScheduler(store, pub, now)
	s.tick()

	if len(pub.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.published))
	}
	if pub.published[0].topic != command.ControlTopic {
		t.Errorf("topic = %q, want %q", pub.published[0].topic, command.ControlTopic)
	}
	if pub.published[0].payload != command.PayloadOn {
		t.Errorf("payload = %q, want %q", pub.published[0].payload, command.PayloadOn)
	}
	if len(store.recorded) != 1 {
		t.Fatalf("recorded %d executions, want 1", len(store.recorded))
	}
	rec := store.recorded[0]
	if rec.scenarioID != 1 || !rec.on || !rec.at.Equal(now) {
		t.Errorf("recorded = %+v, want scenario 1 on at %v", rec, now)
	}
}

func TestTickSkipsWhenAlreadyExecutedToday(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 30, 0, time.UTC)
	earlier := time.Date(2025, 6, 2, 8, 0, 2, 0, time.UTC)
	store := &fakeStore{
		scenarios: []models.Scenario{{
			ID: 1, Name: "morning",
			TimeOn: "08:00", TimeOnPeriod: "AM",
			TimeOff: "10:00", TimeOffPeriod: "PM",
			ScheduleType:   "everyday",
			LastExecutedOn: &earlier,
		}},
	}
	pub := &fakePublisher{}

	newTestScheduler(store, pub, now).tick()

	if len(pub.published) != 0 {
		t.Errorf("published %d messages, want 0", len(pub.published))
	}
	if len(store.recorded) != 0 {
		t.Errorf("recorded %d executions, want 0", len(store.recorded))
	}
}

func TestTickRefiresNextDay(t *testing.T) {
	now := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{
		scenarios: []models.Scenario{{
			ID: 1, Name: "morning",
			TimeOn: "08:00", TimeOnPeriod: "AM",
			TimeOff: "10:00", TimeOffPeriod: "PM",
			ScheduleType:   "everyday",
			LastExecutedOn: &yesterday,
		}},
	}
	pub := &fakePublisher{}

	newTestScheduler(store, pub, now).tick()

	if len(pub.published) != 1 {
		t.Errorf("published %d messages, want 1", len(pub.published))
	}
}

func TestTickSkipsScenarioWithUnparsableTime(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	store := &fakeStore{
		scenarios: []models.Scenario{{
			ID: 1, Name: "broken",
			TimeOn: "08:00", TimeOnPeriod: "AM",
			TimeOff: "not a time", TimeOffPeriod: "PM",
			ScheduleType: "everyday",
		}},
	}
	pub := &fakePublisher{}

	// The on time matches but the off time fails to parse; the whole
	// scenario is skipped for the tick.
	newTestScheduler(store, pub, now).tick()

	if len(pub.published) != 0 {
		t.Errorf("published %d messages, want 0", len(pub.published))
	}
}

func TestTickRoutesPerTargetDevice(t *testing.T) {
	now := time.Date(2025, 6, 2, 20, 15, 0, 0, time.UTC)
	store := &fakeStore{
		scenarios: []models.Scenario{{
			ID: 7, Name: "evening",
			TimeOn: "08:15", TimeOnPeriod: "PM",
			TimeOff: "11:00", TimeOffPeriod: "PM",
			ScheduleType: "everyday",
			DeviceIDs:    "3,4,5",
		}},
		devices: map[int64]*models.Device{
			3: {ID: 3, DeviceType: "light", MQTTTopic: "/custom/ignored"},
			5: {ID: 5, DeviceType: "fan", MQTTTopic: "/fan/5"},
		},
	}
	pub := &fakePublisher{}

	// Device 4 does not exist; it is skipped and the others still fire.
	newTestScheduler(store, pub, now).tick()

	if len(pub.published) != 2 {
		t.Fatalf("published %d messages, want 2", len(pub.published))
	}
	if pub.published[0].topic != command.ControlTopic {
		t.Errorf("light topic = %q, want %q", pub.published[0].topic, command.ControlTopic)
	}
	if pub.published[1].topic != "/fan/5" {
		t.Errorf("fan topic = %q, want %q", pub.published[1].topic, "/fan/5")
	}

	if len(store.recorded) != 1 {
		t.Fatalf("recorded %d executions, want 1", len(store.recorded))
	}
	got := store.recorded[0].deviceIDs
	if len(got) != 2 || got[0] != 3 || got[1] != 5 {
		t.Errorf("recorded device ids = %v, want [3 5]", got)
	}
}

func TestTickScenarioErrorDoesNotHaltBatch(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	store := &failingRecordStore{
		fakeStore: fakeStore{
			scenarios: []models.Scenario{
				{ID: 1, Name: "first", TimeOn: "09:00", TimeOnPeriod: "AM", TimeOff: "10:00", TimeOffPeriod: "PM", ScheduleType: "everyday"},
				{ID: 2, Name: "second", TimeOn: "09:00", TimeOnPeriod: "AM", TimeOff: "10:00", TimeOffPeriod: "PM", ScheduleType: "everyday"},
			},
		},
		failFor: 1,
	}
	pub := &fakePublisher{}

	New(store, pub, fixedClock(now), zap.NewNop().Sugar()).tick()

	// Both scenarios publish; the first one's record failure is logged
	// and the second is still evaluated.
	if len(pub.published) != 2 {
		t.Errorf("published %d messages, want 2", len(pub.published))
	}
}

type failingRecordStore struct {
	fakeStore
	failFor int64
}

func (f *failingRecordStore) RecordExecution(ctx context.Context, scenarioID int64, deviceIDs []int64, on bool, executedAt time.Time) error {
	if scenarioID == f.failFor {
		return errors.New("write failed")
	}
	return f.fakeStore.RecordExecution(ctx, scenarioID, deviceIDs, on, executedAt)
}

func TestTriggerBypassesSchedule(t *testing.T) {
	now := time.Date(2025, 6, 7, 3, 33, 0, 0, time.UTC)
	store := &fakeStore{
		scenarios: []models.Scenario{{
			ID: 9, Name: "weekdays only",
			TimeOn: "08:00", TimeOnPeriod: "AM",
			TimeOff: "10:00", TimeOffPeriod: "PM",
			ScheduleType: "weekdays",
		}},
	}
	pub := &fakePublisher{}
	s := newTestScheduler(store, pub, now)

	if err := s.Trigger(context.Background(), 9, false); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.published))
	}
	if pub.published[0].payload != command.PayloadOff {
		t.Errorf("payload = %q, want %q", pub.published[0].payload, command.PayloadOff)
	}
	if len(store.recorded) != 1 || store.recorded[0].on {
		t.Errorf("recorded = %+v, want one OFF execution", store.recorded)
	}
}

func TestTriggerUnknownScenario(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	s := newTestScheduler(store, pub, time.Now())

	if err := s.Trigger(context.Background(), 404, true); err == nil {
		t.Fatal("Trigger with unknown id returned nil error")
	}
	if len(pub.published) != 0 {
		t.Errorf("published %d messages, want 0", len(pub.published))
	}
}
