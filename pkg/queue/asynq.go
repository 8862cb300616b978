package queue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hibiken/asynq"

	ie "github.com/voidshard/platen/pkg/errors"
)

const (
	asynqWorkQueue = "platen:work"
	asynqTaskRun   = "platen:run"
)

// Asynq dispatches job ids through redis. Workers run in this process, so
// Workers bounds concurrent execution just as the Pool does.
//
// Job state lives with the process that created the job, so each instance
// consumes only its own queue (platen:work:<instance>).
type Asynq struct {
	opts *Options

	cli *asynq.Client

	// if register is called we're intended to start a server
	lock sync.Mutex
	mux  *asynq.ServeMux
	srv  *asynq.Server
}

func NewAsynqQueue(opts *Options) (*Asynq, error) {
	opts.SetDefaults()
	redisOpt, err := redisConnOpt(opts)
	if err != nil {
		return nil, err
	}
	return &Asynq{
		opts: opts,
		cli:  asynq.NewClient(redisOpt),
	}, nil
}

func redisConnOpt(opts *Options) (asynq.RedisClientOpt, error) {
	parsed, err := asynq.ParseRedisURI(opts.URL)
	if err != nil {
		// a bare host:port
		return asynq.RedisClientOpt{Addr: opts.URL, TLSConfig: opts.TLSConfig}, nil
	}
	clientOpt, ok := parsed.(asynq.RedisClientOpt)
	if !ok {
		return asynq.RedisClientOpt{}, fmt.Errorf("%w redis url %s", ie.ErrNotSupported, opts.URL)
	}
	if opts.TLSConfig != nil {
		clientOpt.TLSConfig = opts.TLSConfig
	}
	return clientOpt, nil
}

func (a *Asynq) Close() error {
	a.lock.Lock()
	srv := a.srv
	a.lock.Unlock()

	if srv != nil {
		srv.Stop()
		srv.Shutdown()
	}
	return a.cli.Close()
}

// Register starts an in process asynq server handing tasks to handler.
func (a *Asynq) Register(handler Handler) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.srv != nil {
		return fmt.Errorf("%w handler already registered", ie.ErrInvalidState)
	}

	redisOpt, err := redisConnOpt(a.opts)
	if err != nil {
		return err
	}

	cfg := asynq.Config{
		Concurrency: a.opts.Workers,
		Queues:      map[string]int{a.queueName(): 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Println("[Queue] task", task.Type(), string(task.Payload()), "failed:", err)
		}),
	}
	if a.opts.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = a.opts.ShutdownTimeout
	}

	a.mux = asynq.NewServeMux()
	a.mux.HandleFunc(asynqTaskRun, func(ctx context.Context, t *asynq.Task) error {
		return handleTask(ctx, t, handler)
	})

	a.srv = asynq.NewServer(redisOpt, cfg)
	log.Println("[Queue] starting asynq server on", a.queueName(), "with", a.opts.Workers, "workers")
	return a.srv.Start(a.mux)
}

// Enqueue sends the job id to redis; a job id already waiting is rejected.
func (a *Asynq) Enqueue(jobID string) error {
	_, err := a.cli.Enqueue(
		asynq.NewTask(asynqTaskRun, []byte(jobID)),
		asynq.Queue(a.queueName()),
		asynq.MaxRetry(0),
		asynq.TaskID(jobID),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("%w job %s already queued", ie.ErrInvalidState, jobID)
	}
	return err
}

func (a *Asynq) queueName() string {
	return asynqWorkQueue + ":" + a.opts.Instance
}

func handleTask(ctx context.Context, t *asynq.Task, handler Handler) (err error) {
	id := string(t.Payload())
	if id == "" {
		return fmt.Errorf("%w task %s has no job id: %w", ie.ErrValidation, t.Type(), asynq.SkipRetry)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered from panic running %s: %v: %w", id, r, asynq.SkipRetry)
		}
	}()

	err = handler(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	return nil
}
