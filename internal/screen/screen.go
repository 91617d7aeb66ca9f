// Package screen holds the per-visitor strain screen state machine.
//
// A screen is Loading from the moment it is navigated until all three strain
// requests settle, then Loaded or Failed. Each navigation, reload and unmount
// bumps a generation counter. A finished load commits only while its
// generation is current and the screen is mounted, so a late result for an
// old route or an unmounted screen is dropped.
package screen

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/strain-screen/internal/entities"
	"github.com/KirkDiggler/strain-screen/internal/errors"
	"github.com/KirkDiggler/strain-screen/internal/orchestrators/strain"
)

// DefaultLoadTimeout bounds one load when Config.LoadTimeout is zero
const DefaultLoadTimeout = 30 * time.Second

// Config holds the dependencies for a screen
type Config struct {
	Loader      strain.Service
	LoadTimeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Loader == nil {
		vb.RequiredField("Loader")
	}
	if c.LoadTimeout < 0 {
		vb.InvalidField("LoadTimeout", "cannot be negative")
	}

	return vb.Build()
}

// Snapshot is an immutable copy of a screen's state. View is non-nil only
// when Status is StatusLoaded.
type Snapshot struct {
	Params       entities.RouteParams
	Mounted      bool
	Status       Status
	View         *entities.StrainView
	FromCache    bool
	ErrorCode    errors.Code
	ErrorMessage string
	Generation   uint64
}

// Screen is one visitor's strain screen
type Screen struct {
	loader      strain.Service
	loadTimeout time.Duration

	mu         sync.Mutex
	params     entities.RouteParams
	mounted    bool
	status     Status
	view       *entities.StrainView
	fromCache  bool
	err        error
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
}

// New creates an unmounted screen
func New(cfg *Config) (*Screen, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timeout := cfg.LoadTimeout
	if timeout == 0 {
		timeout = DefaultLoadTimeout
	}

	settled := make(chan struct{})
	close(settled)

	return &Screen{
		loader:      cfg.Loader,
		loadTimeout: timeout,
		done:        settled,
	}, nil
}

// Navigate mounts the screen on params. Navigating a mounted screen to the
// params it already shows is a no-op; anything else starts a new load.
func (s *Screen) Navigate(params entities.RouteParams) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mounted && s.params == params {
		return s.snapshotLocked()
	}

	s.params = params
	s.mounted = true
	s.startLoadLocked(false)

	return s.snapshotLocked()
}

// Reload re-runs the load for the current params, bypassing the view cache.
// Returns errors.FailedPrecondition when the screen is not mounted.
func (s *Screen) Reload() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted {
		return s.snapshotLocked(), errors.FailedPrecondition("screen is not mounted")
	}

	s.startLoadLocked(true)

	return s.snapshotLocked(), nil
}

// Unmount stops the screen. An in-flight load is cancelled and its result
// is never committed. Unmounting twice is a no-op.
func (s *Screen) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted {
		return
	}

	s.mounted = false
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Snapshot returns a copy of the current state
func (s *Screen) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Wait blocks until the current load settles or ctx is done, and returns the
// state at that point
func (s *Screen) Wait(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		return s.Snapshot(), nil
	case <-ctx.Done():
		code := errors.CodeDeadlineExceeded
		if ctx.Err() == context.Canceled {
			code = errors.CodeCanceled
		}
		return s.Snapshot(), errors.WrapWithCode(ctx.Err(), code, "wait for screen load")
	}
}

// startLoadLocked resets the screen to Loading and starts a fetch for the
// current params. Callers hold s.mu.
func (s *Screen) startLoadLocked(skipCache bool) {
	if s.cancel != nil {
		s.cancel()
	}

	s.generation++
	s.status = StatusLoading
	s.view = nil
	s.fromCache = false
	s.err = nil

	ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.load(ctx, cancel, done, s.generation, s.params.ID, skipCache)
}

func (s *Screen) load(ctx context.Context, cancel context.CancelFunc, done chan struct{}, gen uint64, strainID string, skipCache bool) {
	defer close(done)
	defer cancel()

	out, err := s.loader.LoadStrain(ctx, &strain.LoadStrainInput{
		StrainID:  strainID,
		SkipCache: skipCache,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || !s.mounted {
		slog.Debug("discarding stale strain load",
			"strain_id", strainID,
			"generation", gen,
			"current_generation", s.generation,
			"mounted", s.mounted,
		)
		return
	}

	s.cancel = nil

	if err != nil {
		s.status = StatusFailed
		s.err = err
		return
	}

	s.status = StatusLoaded
	s.view = out.View
	s.fromCache = out.FromCache
}

func (s *Screen) snapshotLocked() Snapshot {
	snap := Snapshot{
		Params:     s.params,
		Mounted:    s.mounted,
		Status:     s.status,
		FromCache:  s.fromCache,
		Generation: s.generation,
	}

	if s.status == StatusLoaded {
		snap.View = s.view.Clone()
	}

	if s.status == StatusFailed && s.err != nil {
		snap.ErrorCode = errors.GetCode(s.err)
		snap.ErrorMessage = errors.GetMessage(s.err)
	}

	return snap
}
