// Package scheduler evaluates automation scenarios once a minute and fires
// their on/off actions through the command router and the MQTT bridge.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"smartlight/internal/command"
	"smartlight/internal/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Store is the persistence surface the scheduler consumes.
type Store interface {
	FindActiveEnabledScenarios(ctx context.Context) ([]models.Scenario, error)
	GetScenario(ctx context.Context, id int64) (*models.Scenario, error)
	GetDevice(ctx context.Context, id int64) (*models.Device, error)
	// RecordExecution persists one firing atomically: the devices' stored
	// on/off state plus the scenario's lastExecuted timestamp.
	RecordExecution(ctx context.Context, scenarioID int64, deviceIDs []int64, on bool, executedAt time.Time) error
}

// Publisher sends a payload to an MQTT topic, fire-and-forget.
type Publisher interface {
	Publish(topic, payload string)
}

// Clock supplies "now"; injectable for deterministic tests.
type Clock func() time.Time

// Scheduler runs a fixed one-minute tick over the active scenarios.
type Scheduler struct {
	cron  *cron.Cron
	store Store
	pub   Publisher
	now   Clock
	log   *zap.SugaredLogger
}

// New creates a scheduler. A nil clock defaults to time.Now.
func New(store Store, pub Publisher, clock Clock, log *zap.SugaredLogger) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{
		store: store,
		pub:   pub,
		now:   clock,
		log:   log,
	}
}

// Start begins the minute tick. A tick that overruns into the next minute is
// skipped rather than run concurrently.
func (s *Scheduler) Start() error {
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := s.cron.AddFunc("* * * * *", s.tick); err != nil {
		return fmt.Errorf("schedule tick: %w", err)
	}
	s.cron.Start()
	s.log.Info("scenario scheduler started")
	return nil
}

// Stop halts the tick and waits for a running evaluation to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info("scenario scheduler stopped")
}

// tick evaluates every active, schedule-enabled scenario. Each scenario has
// its own error boundary so one failure cannot halt the batch.
func (s *Scheduler) tick() {
	ctx := context.Background()
	now := s.now()
	s.log.Debugw("checking scenarios", "now", now)

	scenarios, err := s.store.FindActiveEnabledScenarios(ctx)
	if err != nil {
		s.log.Errorw("failed to load scenarios", "error", err)
		return
	}
	s.log.Debugw("loaded active scenarios", "count", len(scenarios))

	for i := range scenarios {
		sc := &scenarios[i]
		if err := s.checkScenario(ctx, sc, now); err != nil {
			s.log.Errorw("error checking scenario", "scenario", sc.Name, "error", err)
		}
	}
}

func (s *Scheduler) checkScenario(ctx context.Context, sc *models.Scenario, now time.Time) error {
	if !shouldRunToday(sc, now) {
		return nil
	}

	timeOn := parseTime(sc.TimeOn, sc.TimeOnPeriod)
	timeOff := parseTime(sc.TimeOff, sc.TimeOffPeriod)
	if timeOn == nil || timeOff == nil {
		s.log.Warnw("invalid time configuration, skipping scenario", "scenario", sc.Name,
			"time_on", sc.TimeOn, "time_off", sc.TimeOff)
		return nil
	}

	if isTimeToExecute(now, *timeOn, sc.LastExecutedOn) {
		s.log.Infow("executing scenario ON action", "scenario", sc.Name, "at", now)
		if err := s.execute(ctx, sc, true, now); err != nil {
			return err
		}
	}

	if isTimeToExecute(now, *timeOff, sc.LastExecutedOff) {
		s.log.Infow("executing scenario OFF action", "scenario", sc.Name, "at", now)
		if err := s.execute(ctx, sc, false, now); err != nil {
			return err
		}
	}
	return nil
}

// execute publishes the action for every target device and records the
// firing. A missing device is logged and skipped; the remaining targets still
// receive the update.
func (s *Scheduler) execute(ctx context.Context, sc *models.Scenario, on bool, now time.Time) error {
	deviceIDs := sc.DeviceIDList()

	if len(deviceIDs) == 0 {
		_, payload := command.Resolve("light", "", 0, on)
		s.pub.Publish(command.ControlTopic, payload)
		return s.store.RecordExecution(ctx, sc.ID, nil, on, now)
	}

	applied := make([]int64, 0, len(deviceIDs))
	for _, id := range deviceIDs {
		dev, err := s.store.GetDevice(ctx, id)
		if err != nil {
			s.log.Warnw("target device not found, skipping", "scenario", sc.Name, "device_id", id, "error", err)
			continue
		}
		topic, payload := command.Resolve(dev.DeviceType, dev.MQTTTopic, dev.ID, on)
		s.pub.Publish(topic, payload)
		applied = append(applied, id)
	}

	return s.store.RecordExecution(ctx, sc.ID, applied, on, now)
}

// Trigger fires a scenario's action immediately, bypassing the recurrence
// and minute matching but sharing the execution path and the lastExecuted
// bookkeeping. A lookup failure is returned to the caller.
func (s *Scheduler) Trigger(ctx context.Context, scenarioID int64, turnOn bool) error {
	sc, err := s.store.GetScenario(ctx, scenarioID)
	if err != nil {
		return fmt.Errorf("scenario %d not found: %w", scenarioID, err)
	}
	s.log.Infow("manually triggering scenario", "scenario", sc.Name, "on", turnOn)
	return s.execute(ctx, sc, turnOn, s.now())
}
