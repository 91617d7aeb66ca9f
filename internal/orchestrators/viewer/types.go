package viewer

import (
	"time"

	"github.com/KirkDiggler/strain-screen/internal/entities"
	"github.com/KirkDiggler/strain-screen/internal/screen"
)

// ShowInput defines the request for showing a strain screen
type ShowInput struct {
	SessionID string
	Params    entities.RouteParams
	// WaitFor lets a fast load settle before the snapshot is taken. Zero
	// returns immediately.
	WaitFor time.Duration
}

// ShowOutput defines the response for showing a strain screen
type ShowOutput struct {
	Snapshot screen.Snapshot
	// Created is true when this session had no screen yet
	Created bool
}

// RetryInput defines the request for reloading a session's screen
type RetryInput struct {
	SessionID string
	WaitFor   time.Duration
}

// RetryOutput defines the response for reloading a session's screen
type RetryOutput struct {
	Snapshot screen.Snapshot
}

// LeaveInput defines the request for leaving the strain screen
type LeaveInput struct {
	SessionID string
}

// LeaveOutput defines the response for leaving the strain screen
type LeaveOutput struct {
	// Left is false when the session had no screen
	Left bool
}
