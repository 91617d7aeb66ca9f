package strain

import (
	"time"

	"github.com/KirkDiggler/strain-screen/internal/entities"
)

// LoadStrainInput defines the request for loading a strain view
type LoadStrainInput struct {
	StrainID string
	// SkipCache forces all three endpoints to be fetched even when a cached view exists
	SkipCache bool
}

// LoadStrainOutput defines the response for loading a strain view
type LoadStrainOutput struct {
	View      *entities.StrainView
	FromCache bool
	// CachedAt is set when FromCache is true
	CachedAt time.Time
}

// InvalidateStrainInput defines the request for evicting a cached view
type InvalidateStrainInput struct {
	StrainID string
}

// InvalidateStrainOutput defines the response for evicting a cached view
type InvalidateStrainOutput struct {
	Evicted bool
}
