package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartlight/internal/db"
	"smartlight/internal/mailer"
	"smartlight/internal/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Task type names.
const (
	TypePersistTelemetry = "telemetry:persist"
	TypeSendResetCode    = "email:send_reset_code"
)

// Global instances - initialized by the main application before StartWorkers.
var (
	dbConn *db.DB
	mail   *mailer.Mailer
	log    *zap.SugaredLogger
)

// SetGlobalInstances sets the database, mailer and logger used by task
// handlers.
func SetGlobalInstances(database *db.DB, m *mailer.Mailer, logger *zap.SugaredLogger) {
	dbConn = database
	mail = m
	log = logger
}

// resetCodePayload carries one reset-code mail job.
type resetCodePayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// EnqueuePersistTelemetry queues one snapshot for persistence. It matches the
// bridge.SnapshotSink signature so the bridge can hand snapshots off without
// blocking on the database.
func EnqueuePersistTelemetry(snap models.TelemetrySnapshot) {
	if asynqClient == nil {
		log.Warn("task queue not started, dropping telemetry snapshot")
		return
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		log.Errorw("failed to marshal telemetry snapshot", "error", err)
		return
	}
	task := asynq.NewTask(TypePersistTelemetry, payload)
	if _, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(10*time.Second)); err != nil {
		log.Errorw("failed to enqueue telemetry persist task", "error", err)
	}
}

// EnqueueResetCodeEmail queues a password-reset mail.
func EnqueueResetCodeEmail(email, code string) error {
	if asynqClient == nil {
		return fmt.Errorf("task queue not started")
	}
	payload, err := json.Marshal(resetCodePayload{Email: email, Code: code})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeSendResetCode, payload)
	if _, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
		return fmt.Errorf("enqueue reset code email: %w", err)
	}
	return nil
}

func persistTelemetryTask(ctx context.Context, t *asynq.Task) error {
	var snap models.TelemetrySnapshot
	if err := json.Unmarshal(t.Payload(), &snap); err != nil {
		return fmt.Errorf("unmarshal telemetry payload: %w", err)
	}
	if err := dbConn.InsertTelemetrySnapshot(ctx, snap); err != nil {
		return fmt.Errorf("persist telemetry snapshot: %w", err)
	}
	log.Infow("saved telemetry snapshot", "status", snap.Status, "current", snap.Current, "power", snap.Power)
	return nil
}

func sendResetCodeTask(ctx context.Context, t *asynq.Task) error {
	var p resetCodePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal reset code payload: %w", err)
	}
	if err := mail.SendResetCode(p.Email, p.Code); err != nil {
		return err
	}
	log.Infow("sent password reset code", "email", p.Email)
	return nil
}
