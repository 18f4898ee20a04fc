package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Worker consumes queued tasks. Handlers are registered per task type before
// Run is called; Run blocks until Shutdown.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *slog.Logger
}

// NewWorker builds a worker draining the given queues with the given
// priority weights.
func NewWorker(redisOpt asynq.RedisConnOpt, queues map[string]int, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Queues:      queues,
		Concurrency: 10,
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			log.Error("task failed",
				slog.String("task_type", task.Type()),
				slog.Any("error", err),
			)
		}),
	})

	return &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		log:    log,
	}
}

func (w *Worker) RegisterHandler(taskType string, handler asynq.Handler) {
	w.mux.Handle(taskType, handler)
}

func (w *Worker) Run() error {
	w.log.Info("job worker started")
	return w.server.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.log.Info("job worker stopping")
	w.server.Shutdown()
}
