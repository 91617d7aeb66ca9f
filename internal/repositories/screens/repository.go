// Package screens stores each visitor session's strain screen
package screens

//go:generate mockgen -destination=mock/mock_repository.go -package=screensmock github.com/KirkDiggler/strain-screen/internal/repositories/screens Repository

import (
	"context"

	"github.com/KirkDiggler/strain-screen/internal/screen"
)

// Repository defines the storage interface for session screens
type Repository interface {
	// GetOrCreate returns the session's screen, building it with New when absent
	GetOrCreate(ctx context.Context, input *GetOrCreateInput) (*GetOrCreateOutput, error)

	// Get retrieves a screen by session ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a screen
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// Count returns the number of stored screens
	Count(ctx context.Context) (int, error)
}

// GetOrCreateInput defines the input for GetOrCreate
type GetOrCreateInput struct {
	SessionID string
	New       func() (*screen.Screen, error)
}

// GetOrCreateOutput defines the output for GetOrCreate
type GetOrCreateOutput struct {
	Screen  *screen.Screen
	Created bool
}

// GetInput defines the input for Get
type GetInput struct {
	SessionID string
}

// GetOutput defines the output for Get
type GetOutput struct {
	Screen *screen.Screen
}

// DeleteInput defines the input for Delete
type DeleteInput struct {
	SessionID string
}

// DeleteOutput defines the output for Delete
type DeleteOutput struct {
	Screen *screen.Screen
}
