// Package strainapi is the client for the strain API proxy
package strainapi

//go:generate mockgen -destination=mock/mock_client.go -package=strainapimock github.com/KirkDiggler/strain-screen/internal/clients/strainapi Client

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/strain-screen/internal/entities"
	"github.com/KirkDiggler/strain-screen/internal/errors"
)

const (
	// DefaultBaseURL is the public strain API proxy
	DefaultBaseURL = "https://strain-api-proxy.herokuapp.com"

	// DefaultHTTPTimeout bounds each request
	DefaultHTTPTimeout = 10 * time.Second

	effectsPath     = "/api/v1/strain-effects/"
	descriptionPath = "/api/v1/strain-description/"
	flavorsPath     = "/api/v1/strain-flavors/"

	// maxBodyBytes caps how much of a response body is read
	maxBodyBytes = 1 << 20
)

// Client defines the strain API calls
type Client interface {
	// GetEffects fetches the medical, positive and negative effect lists
	GetEffects(ctx context.Context, strainID string) (*entities.Effects, error)

	// GetDescription fetches the description payload with all of its fields
	GetDescription(ctx context.Context, strainID string) (entities.Description, error)

	// GetFlavors fetches the flavor list
	GetFlavors(ctx context.Context, strainID string) ([]string, error)
}

// Config contains configuration options for the strain API client.
type Config struct {
	// BaseURL of the proxy (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPTimeout for each request (optional, defaults to DefaultHTTPTimeout)
	HTTPTimeout time.Duration
	// HTTPClient overrides the client built from HTTPTimeout (optional)
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateHTTPURL("BaseURL", cfg.BaseURL, vb)
	errors.ValidatePositiveDuration("HTTPTimeout", cfg.HTTPTimeout, vb)
	return vb.Build()
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new strain API client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.HTTPTimeout,
		}
	}

	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

func (c *client) GetEffects(ctx context.Context, strainID string) (*entities.Effects, error) {
	var effects entities.Effects
	if err := c.getJSON(ctx, effectsPath, strainID, &effects); err != nil {
		return nil, err
	}

	// a missing list is as unusable as a malformed body
	missing := make([]string, 0, 3)
	if effects.Medical == nil {
		missing = append(missing, "medical")
	}
	if effects.Positive == nil {
		missing = append(missing, "positive")
	}
	if effects.Negative == nil {
		missing = append(missing, "negative")
	}
	if len(missing) > 0 {
		return nil, errors.DataLossf("effects for strain %s missing %s", strainID, strings.Join(missing, ", ")).
			WithMeta("strain_id", strainID)
	}

	return &effects, nil
}

func (c *client) GetDescription(ctx context.Context, strainID string) (entities.Description, error) {
	var desc entities.Description
	if err := c.getJSON(ctx, descriptionPath, strainID, &desc); err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, errors.DataLossf("description for strain %s is null", strainID).
			WithMeta("strain_id", strainID)
	}

	if raw, ok := desc["desc"]; ok && raw != nil {
		if _, isString := raw.(string); !isString {
			return nil, errors.DataLossf("description for strain %s has non-string desc", strainID).
				WithMeta("strain_id", strainID)
		}
	}

	return desc, nil
}

func (c *client) GetFlavors(ctx context.Context, strainID string) ([]string, error) {
	var flavors []string
	if err := c.getJSON(ctx, flavorsPath, strainID, &flavors); err != nil {
		return nil, err
	}
	if flavors == nil {
		return nil, errors.DataLossf("flavors for strain %s is null", strainID).
			WithMeta("strain_id", strainID)
	}

	return flavors, nil
}

// getJSON performs GET {base}{path}{id} and decodes the body into out
func (c *client) getJSON(ctx context.Context, path, strainID string, out interface{}) error {
	if strainID == "" {
		return errors.InvalidArgument("strain ID cannot be empty")
	}

	endpoint := c.baseURL + path + url.PathEscape(strainID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %s", endpoint)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(ctx, err, endpoint)
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // body fully read or abandoned
	}()

	slog.DebugContext(ctx, "strain api response",
		"url", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusNotFound {
		return errors.NotFoundf("strain %s not found at %s", strainID, path).
			WithMeta("strain_id", strainID)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Unavailablef("strain api returned %d for %s", resp.StatusCode, endpoint).
			WithMeta("status", resp.StatusCode).
			WithMeta("strain_id", strainID)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportError(ctx, err, endpoint)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.WrapWithCodef(err, errors.CodeDataLoss, "malformed response from %s", endpoint).
			WithMeta("strain_id", strainID)
	}

	return nil
}

func transportError(ctx context.Context, err error, endpoint string) error {
	switch {
	case stderrors.Is(ctx.Err(), context.Canceled):
		return errors.WrapWithCodef(err, errors.CodeCanceled, "request to %s canceled", endpoint)
	case stderrors.Is(ctx.Err(), context.DeadlineExceeded), isTimeout(err):
		return errors.WrapWithCodef(err, errors.CodeDeadlineExceeded, "request to %s timed out", endpoint)
	default:
		return errors.WrapWithCode(err, errors.CodeUnavailable, fmt.Sprintf("strain api unreachable at %s", endpoint))
	}
}

func isTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	return stderrors.As(err, &timeout) && timeout.Timeout()
}
