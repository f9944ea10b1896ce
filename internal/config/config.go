package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Device-error policies. Propagate surfaces the failure as a typed error from
// the top-level run; fatal reproduces the reference behavior of terminating
// the process as soon as the accelerator faults.
const (
	DeviceErrorPropagate = "propagate"
	DeviceErrorFatal     = "fatal"
)

const (
	defaultArraySize = 16
	defaultRatio     = 0.5
	defaultAlpha     = 0.5
	defaultDevice    = "auto"

	envArraySize     = "OFFLOAD_ARRAY_SIZE"
	envRatio         = "OFFLOAD_RATIO"
	envAlpha         = "OFFLOAD_ALPHA"
	envWorkers       = "OFFLOAD_WORKERS"
	envDevice        = "OFFLOAD_DEVICE"
	envOnDeviceError = "OFFLOAD_ON_DEVICE_ERROR"
	envListenAddr    = "OFFLOAD_LISTEN_ADDR"
	envLogLevel      = "OFFLOAD_LOG_LEVEL"
	envVerbose       = "OFFLOAD_VERBOSE"
)

// ConfigError describes a configuration value rejected at startup, before any
// graph activation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// Config holds application configuration loaded from environment variables.
type Config struct {
	// ArraySize is the number of elements N in each of the three arrays.
	ArraySize int
	// Ratio is the fraction of N assigned to the accelerator path.
	Ratio float64
	// Alpha is the triad coefficient in c[i] = a[i] + alpha*b[i].
	Alpha float64
	// Workers is the CPU worker's parallelism. One extra thread is reserved
	// for the async bridge's dedicated submission goroutine.
	Workers int
	// Device names the executor to resolve from the registry; "auto" picks
	// the registered default.
	Device string
	// OnDeviceError selects the accelerator fault policy.
	OnDeviceError string
	// ListenAddr enables the diagnostics HTTP server when non-empty. The
	// default is empty: a plain run has no network surface.
	ListenAddr string
	LogLevel   slog.Level
	// Verbose dumps the full output and reference arrays after the verdict.
	Verbose bool
}

// Load reads configuration from environment variables with sensible defaults.
// Call Validate before handing the result to the engine.
func Load() Config {
	cfg := Config{
		ArraySize:     defaultArraySize,
		Ratio:         defaultRatio,
		Alpha:         defaultAlpha,
		Workers:       runtime.GOMAXPROCS(0),
		Device:        defaultDevice,
		OnDeviceError: DeviceErrorPropagate,
		LogLevel:      slog.LevelInfo,
	}

	if v := os.Getenv(envArraySize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ArraySize = n
		}
	}
	if v := os.Getenv(envRatio); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Ratio = f
		}
	}
	if v := os.Getenv(envAlpha); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Alpha = f
		}
	}
	if v := os.Getenv(envWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv(envDevice); v != "" {
		cfg.Device = v
	}
	if v := os.Getenv(envOnDeviceError); v != "" {
		cfg.OnDeviceError = strings.ToLower(v)
	}
	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	if v := os.Getenv(envVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		cfg.Verbose = err == nil && b
	}

	return cfg
}

// Validate checks every field the graph depends on. It returns a *ConfigError
// for the first violation found, so misconfiguration never reaches a running
// activation.
func (c Config) Validate() error {
	if c.ArraySize <= 0 {
		return &ConfigError{Field: "array_size", Reason: fmt.Sprintf("must be positive, got %d", c.ArraySize)}
	}
	if c.Ratio < 0 || c.Ratio > 1 {
		return &ConfigError{Field: "ratio", Reason: fmt.Sprintf("must be in [0,1], got %v", c.Ratio)}
	}
	if c.Workers <= 0 {
		return &ConfigError{Field: "workers", Reason: fmt.Sprintf("must be positive, got %d", c.Workers)}
	}
	if c.Device == "" {
		return &ConfigError{Field: "device", Reason: "must not be empty"}
	}
	switch c.OnDeviceError {
	case DeviceErrorPropagate, DeviceErrorFatal:
	default:
		return &ConfigError{Field: "on_device_error", Reason: fmt.Sprintf("must be %q or %q, got %q", DeviceErrorPropagate, DeviceErrorFatal, c.OnDeviceError)}
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
