package screens

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/strain-screen/internal/errors"
	"github.com/KirkDiggler/strain-screen/internal/pkg/clock"
	"github.com/KirkDiggler/strain-screen/internal/screen"
)

const (
	// DefaultIdleTTL drops a screen nobody has asked for in this long
	DefaultIdleTTL = 10 * time.Minute

	// DefaultMaxScreens caps the registry; the least recently used screen
	// makes room for a new one
	DefaultMaxScreens = 10000
)

// InMemoryConfig configures the in-memory repository. Zero values take the
// defaults.
type InMemoryConfig struct {
	Clock      clock.Clock
	IdleTTL    time.Duration
	MaxScreens int
}

// Validate rejects negative limits
func (c *InMemoryConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.IdleTTL < 0 {
		vb.InvalidField("IdleTTL", "cannot be negative")
	}
	if c.MaxScreens < 0 {
		vb.InvalidField("MaxScreens", "cannot be negative")
	}

	return vb.Build()
}

type entry struct {
	screen     *screen.Screen
	lastAccess time.Time
}

// InMemoryRepository implements Repository using in-memory storage.
// Screens idle for longer than the TTL are unmounted and dropped.
type InMemoryRepository struct {
	clock      clock.Clock
	idleTTL    time.Duration
	maxScreens int

	mu    sync.RWMutex
	store map[string]*entry
}

// NewInMemory creates a new in-memory repository
func NewInMemory(cfg *InMemoryConfig) (*InMemoryRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &InMemoryRepository{
		clock:      cfg.Clock,
		idleTTL:    cfg.IdleTTL,
		maxScreens: cfg.MaxScreens,
		store:      make(map[string]*entry),
	}
	if r.clock == nil {
		r.clock = clock.New()
	}
	if r.idleTTL == 0 {
		r.idleTTL = DefaultIdleTTL
	}
	if r.maxScreens == 0 {
		r.maxScreens = DefaultMaxScreens
	}

	return r, nil
}

// GetOrCreate returns the stored screen or stores a new one. Creating a
// screen first drops idle ones and, at capacity, the least recently used.
func (r *InMemoryRepository) GetOrCreate(_ context.Context, input *GetOrCreateInput) (*GetOrCreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.New == nil {
		return nil, errors.InvalidArgument("screen constructor is required")
	}

	now := r.clock.Now()

	r.mu.Lock()
	if e, exists := r.store[input.SessionID]; exists && !r.expired(e, now) {
		e.lastAccess = now
		r.mu.Unlock()
		return &GetOrCreateOutput{Screen: e.screen}, nil
	}

	scr, err := input.New()
	if err != nil {
		r.mu.Unlock()
		return nil, errors.Wrapf(err, "failed to create screen for session %s", input.SessionID)
	}

	evicted := r.evictIdleLocked(now)
	if len(r.store) >= r.maxScreens {
		evicted = append(evicted, r.evictOldestLocked())
	}
	r.store[input.SessionID] = &entry{screen: scr, lastAccess: now}
	r.mu.Unlock()

	unmount(evicted)

	return &GetOrCreateOutput{Screen: scr, Created: true}, nil
}

// Get retrieves a screen by session ID. An idle screen is dropped and
// reported as not found.
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	now := r.clock.Now()

	r.mu.Lock()
	e, exists := r.store[input.SessionID]
	if !exists {
		r.mu.Unlock()
		return nil, errors.NotFound("screen not found")
	}
	if r.expired(e, now) {
		delete(r.store, input.SessionID)
		r.mu.Unlock()
		e.screen.Unmount()
		return nil, errors.NotFound("screen expired")
	}
	e.lastAccess = now
	r.mu.Unlock()

	return &GetOutput{Screen: e.screen}, nil
}

// Delete removes a screen and returns it so the caller can unmount it
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.store[input.SessionID]
	if !exists {
		return nil, errors.NotFound("screen not found")
	}

	delete(r.store, input.SessionID)

	return &DeleteOutput{Screen: e.screen}, nil
}

// Count returns the number of stored screens
func (r *InMemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.store), nil
}

// EvictIdle unmounts and drops every idle screen and returns how many went
func (r *InMemoryRepository) EvictIdle(ctx context.Context) int {
	r.mu.Lock()
	evicted := r.evictIdleLocked(r.clock.Now())
	r.mu.Unlock()

	unmount(evicted)

	if len(evicted) > 0 {
		slog.DebugContext(ctx, "evicted idle screens", "count", len(evicted))
	}
	return len(evicted)
}

// RunEviction calls EvictIdle every interval until ctx is done
func (r *InMemoryRepository) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle(ctx)
		}
	}
}

func (r *InMemoryRepository) expired(e *entry, now time.Time) bool {
	return now.Sub(e.lastAccess) >= r.idleTTL
}

func (r *InMemoryRepository) evictIdleLocked(now time.Time) []*screen.Screen {
	var evicted []*screen.Screen
	for id, e := range r.store {
		if r.expired(e, now) {
			delete(r.store, id)
			evicted = append(evicted, e.screen)
		}
	}
	return evicted
}

func (r *InMemoryRepository) evictOldestLocked() *screen.Screen {
	var oldestID string
	var oldest *entry
	for id, e := range r.store {
		if oldest == nil || e.lastAccess.Before(oldest.lastAccess) {
			oldestID, oldest = id, e
		}
	}
	if oldest == nil {
		return nil
	}

	delete(r.store, oldestID)
	return oldest.screen
}

func unmount(screens []*screen.Screen) {
	for _, scr := range screens {
		if scr != nil {
			scr.Unmount()
		}
	}
}
