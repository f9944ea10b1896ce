package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"runtime"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		envArraySize, envRatio, envAlpha, envWorkers, envDevice,
		envOnDeviceError, envListenAddr, envLogLevel, envVerbose,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.ArraySize != defaultArraySize {
		t.Errorf("ArraySize = %d, want %d", cfg.ArraySize, defaultArraySize)
	}
	if cfg.Ratio != defaultRatio {
		t.Errorf("Ratio = %v, want %v", cfg.Ratio, defaultRatio)
	}
	if cfg.Alpha != defaultAlpha {
		t.Errorf("Alpha = %v, want %v", cfg.Alpha, defaultAlpha)
	}
	if cfg.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.GOMAXPROCS(0))
	}
	if cfg.Device != defaultDevice {
		t.Errorf("Device = %q, want %q", cfg.Device, defaultDevice)
	}
	if cfg.OnDeviceError != DeviceErrorPropagate {
		t.Errorf("OnDeviceError = %q, want %q", cfg.OnDeviceError, DeviceErrorPropagate)
	}
	if cfg.ListenAddr != "" {
		t.Errorf("ListenAddr = %q, want empty", cfg.ListenAddr)
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(envArraySize, "1024")
	t.Setenv(envRatio, "0.25")
	t.Setenv(envAlpha, "2.0")
	t.Setenv(envWorkers, "3")
	t.Setenv(envDevice, "sim")
	t.Setenv(envOnDeviceError, "FATAL")
	t.Setenv(envListenAddr, ":9090")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envVerbose, "true")

	cfg := Load()

	if cfg.ArraySize != 1024 {
		t.Errorf("ArraySize = %d, want 1024", cfg.ArraySize)
	}
	if cfg.Ratio != 0.25 {
		t.Errorf("Ratio = %v, want 0.25", cfg.Ratio)
	}
	if cfg.Alpha != 2.0 {
		t.Errorf("Alpha = %v, want 2.0", cfg.Alpha)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Device != "sim" {
		t.Errorf("Device = %q, want %q", cfg.Device, "sim")
	}
	if cfg.OnDeviceError != DeviceErrorFatal {
		t.Errorf("OnDeviceError = %q, want %q", cfg.OnDeviceError, DeviceErrorFatal)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9090")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		ArraySize:     16,
		Ratio:         0.5,
		Workers:       4,
		Device:        "sim",
		OnDeviceError: DeviceErrorPropagate,
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"zero array size", func(c *Config) { c.ArraySize = 0 }, "array_size"},
		{"negative array size", func(c *Config) { c.ArraySize = -4 }, "array_size"},
		{"ratio below zero", func(c *Config) { c.Ratio = -0.1 }, "ratio"},
		{"ratio above one", func(c *Config) { c.Ratio = 1.5 }, "ratio"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"empty device", func(c *Config) { c.Device = "" }, "device"},
		{"bad policy", func(c *Config) { c.OnDeviceError = "retry" }, "on_device_error"},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config failed validation: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() returned %T, want *ConfigError", err)
			}
			if cerr.Field != tt.wantField {
				t.Errorf("ConfigError.Field = %q, want %q", cerr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateRatioBoundaries(t *testing.T) {
	cfg := Config{ArraySize: 16, Workers: 1, Device: "sim", OnDeviceError: DeviceErrorPropagate}
	for _, ratio := range []float64{0, 1} {
		cfg.Ratio = ratio
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with ratio %v = %v, want nil", ratio, err)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		got := parseLogLevel(tt.input)
		if got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLoggerOutputsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Info("test message", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("logger output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if entry["msg"] != "test message" {
		t.Errorf("msg = %v, want %q", entry["msg"], "test message")
	}
}
