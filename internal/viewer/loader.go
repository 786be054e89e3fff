package viewer

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/assets"
	"github.com/Faultbox/gltf-viewer/internal/logger"
)

// LoadFunc reads and imports the model at path.
type LoadFunc func(ctx context.Context, path string) (*assets.Asset, error)

// Result is the outcome of one load request.
type Result struct {
	RequestID string
	Path      string
	Asset     *assets.Asset
	Err       error

	gen uint64
}

// Loader runs model loads on worker goroutines. Each new request cancels the
// one in flight; Poll only hands back the result of the newest request.
type Loader struct {
	load    LoadFunc
	results chan Result
	done    chan struct{}
	log     *zap.Logger

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	pending bool
	wg      sync.WaitGroup
	closed  bool
}

// NewLoader returns a loader running load for every request.
func NewLoader(load LoadFunc) *Loader {
	return &Loader{
		load:    load,
		results: make(chan Result, 8),
		done:    make(chan struct{}),
		log:     logger.Named("loader"),
	}
}

// Request starts loading path. An unsupported extension is rejected here,
// before anything in flight is cancelled.
func (l *Loader) Request(path string) error {
	if _, err := assets.DetectKind(path); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return errors.New("loader closed")
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.pending = true

	r := Result{RequestID: uuid.NewString(), Path: path, gen: l.gen}
	l.log.Debug("load requested", zap.String("request_id", r.RequestID), zap.String("path", path))

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		r.Asset, r.Err = l.load(ctx, path)
		select {
		case l.results <- r:
		case <-l.done:
			r.Asset.Dispose()
		}
	}()
	return nil
}

// Pending reports whether the newest request has not been delivered yet.
func (l *Loader) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Poll returns the newest request's result if it is ready. Results of
// superseded requests are dropped and their assets released. It never blocks.
func (l *Loader) Poll() (Result, bool) {
	for {
		select {
		case r := <-l.results:
			l.mu.Lock()
			current := r.gen == l.gen
			if current {
				l.pending = false
			}
			l.mu.Unlock()
			if !current {
				l.log.Debug("stale load discarded", zap.String("request_id", r.RequestID), zap.String("path", r.Path))
				r.Asset.Dispose()
				continue
			}
			return r, true
		default:
			return Result{}, false
		}
	}
}

// Close cancels any in-flight load and waits for the workers to exit.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	close(l.done)
	l.mu.Unlock()

	l.wg.Wait()
	for {
		select {
		case r := <-l.results:
			r.Asset.Dispose()
		default:
			return
		}
	}
}

// Apply installs a load result into the viewer. It returns the message to
// alert the user with, or "" when nothing needs to be shown.
func (v *Viewer) Apply(r Result) string {
	if r.Err != nil {
		if errors.Is(r.Err, context.Canceled) {
			return ""
		}
		v.log.Warn("model load failed", zap.String("path", r.Path), zap.Error(r.Err))
		return assets.UserMessage(r.Err)
	}
	// An invalid root is logged by Load and not alerted.
	_ = v.Load(r.Asset)
	return ""
}
