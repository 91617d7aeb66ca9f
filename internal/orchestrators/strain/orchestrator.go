// Package strain loads merged strain views from the strain API
package strain

//go:generate mockgen -destination=mock/mock_service.go -package=strainmock github.com/KirkDiggler/strain-screen/internal/orchestrators/strain Service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/strain-screen/internal/clients/strainapi"
	"github.com/KirkDiggler/strain-screen/internal/entities"
	"github.com/KirkDiggler/strain-screen/internal/errors"
	strainview "github.com/KirkDiggler/strain-screen/internal/repositories/strain_view"
)

// DefaultCacheTTL is used when a cache is configured without a TTL
const DefaultCacheTTL = 5 * time.Minute

// Service loads strain views
type Service interface {
	// LoadStrain fetches effects, description and flavors concurrently and
	// merges them. Any single failure fails the whole load and cancels the
	// other requests.
	LoadStrain(ctx context.Context, input *LoadStrainInput) (*LoadStrainOutput, error)

	// InvalidateStrain evicts a cached view. It is a no-op without a cache.
	InvalidateStrain(ctx context.Context, input *InvalidateStrainInput) (*InvalidateStrainOutput, error)
}

// Config holds the dependencies for the strain orchestrator
type Config struct {
	Client strainapi.Client
	// Cache is optional; nil disables caching
	Cache    strainview.Repository
	CacheTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.CacheTTL < 0 {
		vb.InvalidField("CacheTTL", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	client   strainapi.Client
	cache    strainview.Repository
	cacheTTL time.Duration
}

// NewOrchestrator creates a new strain orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}

	return &orchestrator{
		client:   cfg.Client,
		cache:    cfg.Cache,
		cacheTTL: ttl,
	}, nil
}

// LoadStrain implements Service
func (o *orchestrator) LoadStrain(ctx context.Context, input *LoadStrainInput) (*LoadStrainOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.StrainID == "" {
		return nil, errors.InvalidArgument("strain ID is required")
	}

	if o.cache != nil && !input.SkipCache {
		cached, err := o.cache.Get(ctx, strainview.GetInput{StrainID: input.StrainID})
		switch {
		case err == nil:
			slog.DebugContext(ctx, "strain view served from cache",
				"strain_id", input.StrainID,
				"cached_at", cached.CachedAt,
			)
			return &LoadStrainOutput{
				View:      cached.View,
				FromCache: true,
				CachedAt:  cached.CachedAt,
			}, nil
		case errors.IsNotFound(err):
		default:
			slog.WarnContext(ctx, "strain view cache read failed",
				"strain_id", input.StrainID,
				"error", err,
			)
		}
	}

	view, err := o.fetch(ctx, input.StrainID)
	if err != nil {
		return nil, err
	}

	if o.cache != nil {
		if _, err := o.cache.Put(ctx, strainview.PutInput{View: view, TTL: o.cacheTTL}); err != nil {
			slog.WarnContext(ctx, "strain view cache write failed",
				"strain_id", input.StrainID,
				"error", err,
			)
		}
	}

	return &LoadStrainOutput{View: view}, nil
}

func (o *orchestrator) fetch(ctx context.Context, strainID string) (*entities.StrainView, error) {
	var (
		effects *entities.Effects
		desc    entities.Description
		flavors []string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		effects, err = o.client.GetEffects(gctx, strainID)
		if err != nil {
			return errors.Wrapf(err, "failed to load effects for strain %s", strainID)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		desc, err = o.client.GetDescription(gctx, strainID)
		if err != nil {
			return errors.Wrapf(err, "failed to load description for strain %s", strainID)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		flavors, err = o.client.GetFlavors(gctx, strainID)
		if err != nil {
			return errors.Wrapf(err, "failed to load flavors for strain %s", strainID)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.WarnContext(ctx, "strain load failed",
			"strain_id", strainID,
			"code", errors.GetCode(err).String(),
			"error", err,
		)
		return nil, err
	}

	return entities.MergeStrainView(strainID, effects, desc, flavors), nil
}

// InvalidateStrain implements Service
func (o *orchestrator) InvalidateStrain(ctx context.Context, input *InvalidateStrainInput) (*InvalidateStrainOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.StrainID == "" {
		return nil, errors.InvalidArgument("strain ID is required")
	}
	if o.cache == nil {
		return &InvalidateStrainOutput{}, nil
	}

	out, err := o.cache.Delete(ctx, strainview.DeleteInput{StrainID: input.StrainID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to invalidate strain %s", input.StrainID)
	}

	return &InvalidateStrainOutput{Evicted: out.Deleted}, nil
}
