package runner

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

//go:generate mockgen -source=runner.go -destination=runner_mock.go -package=runner

// Worker defines something that runs until its context is done.
type Worker interface {
	Start(ctx context.Context) error
}

// HTTPServer defines HTTP server interface.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// DefaultShutdownTimeout bounds graceful shutdown of HTTP servers.
const DefaultShutdownTimeout = 5 * time.Second

// Opt configures a Runner.
type Opt func(*Runner)

// WithShutdownTimeout sets how long HTTP servers get to drain in-flight
// requests. Non-positive values keep the default.
func WithShutdownTimeout(timeout time.Duration) Opt {
	return func(r *Runner) {
		if timeout > 0 {
			r.shutdownTimeout = timeout
		}
	}
}

// OnShutdown registers fn to run once before servers start shutting down.
func OnShutdown(fn func()) Opt {
	return func(r *Runner) {
		r.hooks = append(r.hooks, fn)
	}
}

// Runner coordinates running goroutines and error handling.
type Runner struct {
	mu              sync.Mutex
	workers         []Worker
	servers         []HTTPServer
	hooks           []func()
	shutdownTimeout time.Duration
	wg              sync.WaitGroup
	errCh           chan error
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Opt) *Runner {
	r := &Runner{
		shutdownTimeout: DefaultShutdownTimeout,
		errCh:           make(chan error, 1), // first error wins
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddWorker adds a Worker to be run later.
func (r *Runner) AddWorker(worker Worker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers = append(r.workers, worker)
}

// AddHTTPServer adds an HTTPServer to be run later.
func (r *Runner) AddHTTPServer(srv HTTPServer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.servers = append(r.servers, srv)
}

// Run starts all added workers and HTTP servers and blocks until ctx is
// done, one of them fails, or all of them return. On the way out the
// shutdown hooks run, servers are shut down gracefully and Run waits for
// every goroutine before returning the first error seen.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	workers := append([]Worker(nil), r.workers...)
	servers := append([]HTTPServer(nil), r.servers...)
	hooks := append([]func(){}, r.hooks...)
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	drain := make(chan struct{})

	for _, w := range workers {
		r.runWorker(ctx, w)
	}
	for _, srv := range servers {
		r.runHTTPServer(drain, srv)
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-r.errCh:
	case <-done:
	}

	for _, hook := range hooks {
		hook()
	}
	close(drain)
	cancel()
	<-done

	if err == nil {
		select {
		case err = <-r.errCh:
		default:
		}
	}
	return err
}

// runWorker runs a single Worker in a goroutine.
func (r *Runner) runWorker(ctx context.Context, worker Worker) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := worker.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.sendError(err)
		}
	}()
}

// runHTTPServer runs a single HTTPServer in a goroutine and shuts it down
// once drain is closed.
func (r *Runner) runHTTPServer(drain <-chan struct{}, srv HTTPServer) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		serverErrCh := make(chan error, 1)
		go func() {
			serverErrCh <- srv.ListenAndServe()
		}()

		select {
		case <-drain:
			shutdownCtx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				r.sendError(err)
			}
			<-serverErrCh
		case err := <-serverErrCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				r.sendError(err)
			}
		}
	}()
}

// sendError tries to send the first encountered error to errCh.
func (r *Runner) sendError(err error) {
	select {
	case r.errCh <- err:
	default:
	}
}
