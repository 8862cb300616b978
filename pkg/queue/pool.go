package queue

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	ie "github.com/voidshard/platen/pkg/errors"
)

// Pool runs jobs on a fixed number of goroutines, in the order they were queued.
type Pool struct {
	opts *Options

	lock    sync.Mutex
	cond    *sync.Cond
	pending []string
	handler Handler
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPool(opts *Options) *Pool {
	opts.SetDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		opts:    opts,
		pending: []string{},
		ctx:     ctx,
		cancel:  cancel,
	}
	p.cond = sync.NewCond(&p.lock)
	return p
}

// Register sets the handler & starts the workers.
func (p *Pool) Register(handler Handler) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.closed {
		return fmt.Errorf("%w queue is closed", ie.ErrInvalidState)
	}
	if p.handler != nil {
		return fmt.Errorf("%w handler already registered", ie.ErrInvalidState)
	}
	p.handler = handler

	log.Println("[Queue] starting", p.opts.Workers, "workers")
	for i := 0; i < p.opts.Workers; i++ {
		p.wg.Add(1)
		go p.work(i)
	}
	return nil
}

// Enqueue adds a job id to the back of the queue.
func (p *Pool) Enqueue(jobID string) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.closed {
		return fmt.Errorf("%w queue is closed", ie.ErrInvalidState)
	}
	p.pending = append(p.pending, jobID)
	p.cond.Signal()
	log.Println("[Queue] queued", jobID, "with", len(p.pending), "waiting")
	return nil
}

// Close stops intake & waits for queued work to finish.
func (p *Pool) Close() error {
	p.lock.Lock()
	if p.closed {
		p.lock.Unlock()
		return nil
	}
	p.closed = true
	started := p.handler != nil
	dropped := len(p.pending)
	if !started {
		p.pending = nil
	}
	p.cond.Broadcast()
	p.lock.Unlock()

	if !started && dropped > 0 {
		log.Println("[Queue] closed with no handler, dropping", dropped, "queued jobs")
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	if p.opts.ShutdownTimeout > 0 {
		select {
		case <-done:
		case <-time.After(p.opts.ShutdownTimeout):
			log.Println("[Queue] shutdown timed out, cancelling running jobs")
			p.cancel()
			<-done
		}
	} else {
		<-done
	}

	p.cancel()
	return nil
}

// next blocks until there is a job or the pool is closed & drained.
func (p *Pool) next() (string, bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	for len(p.pending) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.pending) == 0 {
		return "", false
	}

	id := p.pending[0]
	p.pending = p.pending[1:]
	return id, true
}

func (p *Pool) work(worker int) {
	defer p.wg.Done()
	for {
		id, ok := p.next()
		if !ok {
			return
		}
		p.run(worker, id)
	}
}

func (p *Pool) run(worker int, id string) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("[Queue] worker", worker, "recovered from panic running", id, r, string(debug.Stack()))
		}
	}()
	err := p.handler(p.ctx, id)
	if err != nil {
		log.Println("[Queue] worker", worker, "could not run", id, err)
	}
}
