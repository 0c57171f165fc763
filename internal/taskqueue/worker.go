package taskqueue

import (
	"github.com/hibiken/asynq"
)

var (
	asynqClient *asynq.Client
	asynqMux    = asynq.NewServeMux()
	asynqSrv    *asynq.Server
)

// StartWorkers starts the Asynq client and worker pool. Blocks until the
// server stops.
func StartWorkers(redisAddr string) {
	log.Infow("starting task workers", "redis", redisAddr)
	asynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	asynqMux.HandleFunc(TypePersistTelemetry, persistTelemetryTask)
	asynqMux.HandleFunc(TypeSendResetCode, sendResetCodeTask)
	asynqSrv = asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 10})
	if err := asynqSrv.Run(asynqMux); err != nil {
		log.Fatalw("failed to start task workers", "error", err)
	}
}

// StopWorkers stops the worker pool and closes the client.
func StopWorkers() {
	if asynqSrv != nil {
		asynqSrv.Stop()
	}
	if asynqClient != nil {
		asynqClient.Close()
	}
	log.Info("task workers stopped")
}
