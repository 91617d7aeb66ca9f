// Package config resolves server configuration from defaults, the
// environment, an optional .env file and command-line flags, in that order
// of increasing precedence.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/KirkDiggler/strain-screen/internal/errors"
)

// EnvPrefix prefixes every environment variable the server reads
const EnvPrefix = "STRAIN_"

// Log formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config holds the server configuration
type Config struct {
	Port       int
	HealthPort int

	StrainAPIURL    string
	HTTPTimeout     time.Duration
	LoadTimeout     time.Duration
	RefreshInterval time.Duration
	SettleTime      time.Duration

	// ScreenIdleTTL and MaxScreens bound the per-session screen registry
	ScreenIdleTTL time.Duration
	MaxScreens    int

	// RedisAddr enables the strain view cache when set
	RedisAddr string
	RedisTLS  bool
	CacheTTL  time.Duration

	LogLevel  string
	LogFormat string
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		Port:            8080,
		StrainAPIURL:    "https://strain-api-proxy.herokuapp.com",
		HTTPTimeout:     10 * time.Second,
		LoadTimeout:     30 * time.Second,
		RefreshInterval: 2 * time.Second,
		SettleTime:      300 * time.Millisecond,
		ScreenIdleTTL:   10 * time.Minute,
		MaxScreens:      10000,
		CacheTTL:        5 * time.Minute,
		LogLevel:        "info",
		LogFormat:       LogFormatJSON,
	}
}

// Validate checks every field
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("Port", c.Port, 1, 65535, vb)
	if c.HealthPort != 0 {
		errors.ValidateRange("HealthPort", c.HealthPort, 1, 65535, vb)
		if c.HealthPort == c.Port {
			vb.InvalidField("HealthPort", "must differ from Port")
		}
	}
	errors.ValidateHTTPURL("StrainAPIURL", c.StrainAPIURL, vb)
	errors.ValidatePositiveDuration("HTTPTimeout", c.HTTPTimeout, vb)
	errors.ValidatePositiveDuration("LoadTimeout", c.LoadTimeout, vb)
	errors.ValidatePositiveDuration("RefreshInterval", c.RefreshInterval, vb)
	if c.SettleTime < 0 {
		vb.InvalidField("SettleTime", "cannot be negative")
	}
	errors.ValidatePositiveDuration("ScreenIdleTTL", c.ScreenIdleTTL, vb)
	if c.MaxScreens < 1 {
		vb.InvalidField("MaxScreens", "must be at least 1")
	}
	if c.RedisAddr != "" {
		errors.ValidatePositiveDuration("CacheTTL", c.CacheTTL, vb)
	}
	errors.ValidateEnum("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("LogFormat", c.LogFormat, []string{LogFormatJSON, LogFormatText}, vb)

	return vb.Build()
}

// CacheEnabled reports whether the strain view cache is configured
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// SlogLevel converts LogLevel for slog
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// LookupFunc reads one environment variable
type LookupFunc func(key string) (string, bool)

type field struct {
	flag string
	// register adds the flag with its default
	register func(fs *pflag.FlagSet, d *Config)
	// set parses a raw value into the config
	set func(c *Config, raw string) error
}

func (f field) env() string {
	return EnvPrefix + envName(f.flag)
}

var fields = []field{
	{
		flag:     "port",
		register: func(fs *pflag.FlagSet, d *Config) { fs.Int("port", d.Port, "HTTP server port") },
		set:      func(c *Config, raw string) (err error) { c.Port, err = strconv.Atoi(raw); return err },
	},
	{
		flag:     "health-port",
		register: func(fs *pflag.FlagSet, d *Config) { fs.Int("health-port", d.HealthPort, "gRPC health server port, 0 disables it") },
		set:      func(c *Config, raw string) (err error) { c.HealthPort, err = strconv.Atoi(raw); return err },
	},
	{
		flag:     "api-url",
		register: func(fs *pflag.FlagSet, d *Config) { fs.String("api-url", d.StrainAPIURL, "strain API base URL") },
		set:      func(c *Config, raw string) error { c.StrainAPIURL = raw; return nil },
	},
	{
		flag:     "http-timeout",
		register: func(fs *pflag.FlagSet, d *Config) { fs.Duration("http-timeout", d.HTTPTimeout, "timeout per strain API request") },
		set:      func(c *Config, raw string) (err error) { c.HTTPTimeout, err = time.ParseDuration(raw); return err },
	},
	{
		flag:     "load-timeout",
		register: func(fs *pflag.FlagSet, d *Config) { fs.Duration("load-timeout", d.LoadTimeout, "timeout for loading one strain screen") },
		set:      func(c *Config, raw string) (err error) { c.LoadTimeout, err = time.ParseDuration(raw); return err },
	},
	{
		flag:     "refresh-interval",
		register: func(fs *pflag.FlagSet, d *Config) { fs.Duration("refresh-interval", d.RefreshInterval, "reload interval of a loading page") },
		set:      func(c *Config, raw string) (err error) { c.RefreshInterval, err = time.ParseDuration(raw); return err },
	},
	{
		flag:     "settle-time",
		register: func(fs *pflag.FlagSet, d *Config) { fs.Duration("settle-time", d.SettleTime, "wait for a fast load before rendering the loading page") },
		set:      func(c *Config, raw string) (err error) { c.SettleTime, err = time.ParseDuration(raw); return err },
	},
	{
		flag:     "screen-idle-ttl",
		register: func(fs *pflag.FlagSet, d *Config) { fs.Duration("screen-idle-ttl", d.ScreenIdleTTL, "drop a visitor's screen after this long without a request") },
		set:      func(c *Config, raw string) (err error) { c.ScreenIdleTTL, err = time.ParseDuration(raw); return err },
	},
	{
		flag:     "max-screens",
		register: func(fs *pflag.FlagSet, d *Config) { fs.Int("max-screens", d.MaxScreens, "screens kept in memory before the least recently used is dropped") },
		set:      func(c *Config, raw string) (err error) { c.MaxScreens, err = strconv.Atoi(raw); return err },
	},
	{
		flag:     "redis-addr",
		register: func(fs *pflag.FlagSet, d *Config) { fs.String("redis-addr", d.RedisAddr, "redis address for the strain view cache, empty disables it") },
		set:      func(c *Config, raw string) error { c.RedisAddr = raw; return nil },
	},
	{
		flag:     "redis-tls",
		register: func(fs *pflag.FlagSet, d *Config) { fs.Bool("redis-tls", d.RedisTLS, "connect to redis over TLS") },
		set:      func(c *Config, raw string) (err error) { c.RedisTLS, err = strconv.ParseBool(raw); return err },
	},
	{
		flag:     "cache-ttl",
		register: func(fs *pflag.FlagSet, d *Config) { fs.Duration("cache-ttl", d.CacheTTL, "lifetime of a cached strain view") },
		set:      func(c *Config, raw string) (err error) { c.CacheTTL, err = time.ParseDuration(raw); return err },
	},
	{
		flag:     "log-level",
		register: func(fs *pflag.FlagSet, d *Config) { fs.String("log-level", d.LogLevel, "debug, info, warn or error") },
		set:      func(c *Config, raw string) error { c.LogLevel = raw; return nil },
	},
	{
		flag:     "log-format",
		register: func(fs *pflag.FlagSet, d *Config) { fs.String("log-format", d.LogFormat, "json or text") },
		set:      func(c *Config, raw string) error { c.LogFormat = raw; return nil },
	},
}

// RegisterFlags adds every setting to fs
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	for _, f := range fields {
		f.register(fs, d)
	}
}

// Load resolves the configuration. lookup defaults to os.LookupEnv. Values
// from envFiles fill in variables the environment does not set; missing
// files are skipped. Only flags set explicitly on fs override the rest.
func Load(fs *pflag.FlagSet, lookup LookupFunc, envFiles ...string) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	fileEnv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	vb := errors.NewValidationBuilder()

	for _, f := range fields {
		raw, ok := lookup(f.env())
		if !ok {
			raw, ok = fileEnv[f.env()]
		}
		if ok {
			if err := f.set(cfg, raw); err != nil {
				vb.Fieldf(f.env(), "cannot parse %q: %v", raw, err)
			}
		}

		if fs != nil && fs.Changed(f.flag) {
			raw := fs.Lookup(f.flag).Value.String()
			if err := f.set(cfg, raw); err != nil {
				vb.Fieldf("--"+f.flag, "cannot parse %q: %v", raw, err)
			}
		}
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readEnvFiles(paths []string) (map[string]string, error) {
	merged := make(map[string]string)

	// earlier files win, as with godotenv.Load
	for i := len(paths) - 1; i >= 0; i-- {
		if _, err := os.Stat(paths[i]); os.IsNotExist(err) {
			continue
		}

		values, err := godotenv.Read(paths[i])
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read env file %s", paths[i])
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	return merged, nil
}

func envName(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
