// Package strainview provides the cache interface for merged strain views
package strainview

//go:generate mockgen -destination=mock/mock_repository.go -package=strainviewmock github.com/KirkDiggler/strain-screen/internal/repositories/strain_view Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/strain-screen/internal/entities"
)

// Repository caches merged strain views
type Repository interface {
	// Get returns a cached view
	// Returns errors.InvalidArgument for an empty strain ID
	// Returns errors.NotFound on a cache miss or expired entry
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put stores a view for TTL
	// Returns errors.InvalidArgument for a nil view, empty ID or non-positive TTL
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Delete evicts a view; deleting a missing entry is not an error
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for reading a cached view
type GetInput struct {
	StrainID string
}

// GetOutput defines the output for reading a cached view
type GetOutput struct {
	View     *entities.StrainView
	CachedAt time.Time
}

// PutInput defines the input for caching a view
type PutInput struct {
	View *entities.StrainView
	TTL  time.Duration
}

// PutOutput defines the output for caching a view
type PutOutput struct {
	CachedAt  time.Time
	ExpiresAt time.Time
}

// DeleteInput defines the input for evicting a view
type DeleteInput struct {
	StrainID string
}

// DeleteOutput defines the output for evicting a view
type DeleteOutput struct {
	Deleted bool
}
