// Package viewer drives each visitor session's strain screen
package viewer

//go:generate mockgen -destination=mock/mock_service.go -package=viewermock github.com/KirkDiggler/strain-screen/internal/orchestrators/viewer Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/strain-screen/internal/errors"
	"github.com/KirkDiggler/strain-screen/internal/orchestrators/strain"
	"github.com/KirkDiggler/strain-screen/internal/repositories/screens"
	"github.com/KirkDiggler/strain-screen/internal/screen"
)

// Service defines the session-level screen operations
type Service interface {
	// Show mounts or re-navigates the session's screen and returns its state
	Show(ctx context.Context, input *ShowInput) (*ShowOutput, error)

	// Retry reloads the session's screen.
	// Returns errors.NotFound when the session has no screen.
	Retry(ctx context.Context, input *RetryInput) (*RetryOutput, error)

	// Leave unmounts and forgets the session's screen. It is idempotent.
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)
}

// Config holds the dependencies for the viewer orchestrator
type Config struct {
	Screens     screens.Repository
	Loader      strain.Service
	LoadTimeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Screens == nil {
		vb.RequiredField("Screens")
	}
	if c.Loader == nil {
		vb.RequiredField("Loader")
	}
	if c.LoadTimeout < 0 {
		vb.InvalidField("LoadTimeout", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	screens     screens.Repository
	loader      strain.Service
	loadTimeout time.Duration
}

// NewOrchestrator creates a new viewer orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		screens:     cfg.Screens,
		loader:      cfg.Loader,
		loadTimeout: cfg.LoadTimeout,
	}, nil
}

func (o *orchestrator) newScreen() (*screen.Screen, error) {
	return screen.New(&screen.Config{
		Loader:      o.loader,
		LoadTimeout: o.loadTimeout,
	})
}

// Show implements Service
func (o *orchestrator) Show(ctx context.Context, input *ShowInput) (*ShowOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("SessionID", input.SessionID, vb)
	errors.ValidateRequired("Params.ID", input.Params.ID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.screens.GetOrCreate(ctx, &screens.GetOrCreateInput{
		SessionID: input.SessionID,
		New:       o.newScreen,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get screen")
	}

	snap := out.Screen.Navigate(input.Params)
	slog.DebugContext(ctx, "strain screen shown",
		"session_id", input.SessionID,
		"strain_id", input.Params.ID,
		"status", snap.Status.String(),
		"generation", snap.Generation,
	)

	if snap.Status == screen.StatusLoading {
		snap = settle(ctx, out.Screen, input.WaitFor, snap)
	}

	return &ShowOutput{
		Snapshot: snap,
		Created:  out.Created,
	}, nil
}

// Retry implements Service
func (o *orchestrator) Retry(ctx context.Context, input *RetryInput) (*RetryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.screens.Get(ctx, &screens.GetInput{SessionID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get screen")
	}

	snap, err := out.Screen.Reload()
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload screen")
	}

	slog.InfoContext(ctx, "strain screen reloaded",
		"session_id", input.SessionID,
		"strain_id", snap.Params.ID,
		"generation", snap.Generation,
	)

	return &RetryOutput{
		Snapshot: settle(ctx, out.Screen, input.WaitFor, snap),
	}, nil
}

// Leave implements Service
func (o *orchestrator) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return &LeaveOutput{}, nil
	}

	out, err := o.screens.Delete(ctx, &screens.DeleteInput{SessionID: input.SessionID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &LeaveOutput{}, nil
		}
		return nil, errors.Wrap(err, "failed to delete screen")
	}

	out.Screen.Unmount()

	return &LeaveOutput{Left: true}, nil
}

// settle waits up to d for the current load. A load still running after d
// is reported as loading.
func settle(ctx context.Context, scr *screen.Screen, d time.Duration, fallback screen.Snapshot) screen.Snapshot {
	if d <= 0 {
		return fallback
	}

	waitCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	// a timed-out wait still carries the latest state
	snap, _ := scr.Wait(waitCtx) // nolint:errcheck
	return snap
}
