package observability

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config selects which instrumentation to enable.
type Config struct {
	// Metrics enables the OTel metrics recorder.
	Metrics bool `yaml:"metrics"`
	// Tracing enables creation spans.
	Tracing bool `yaml:"tracing"`
	// LogLevel enables slog output at the given level
	// ("debug", "info", "warn", "error"). Empty disables logging.
	LogLevel string `yaml:"log_level"`
}

// ConfigFromFile loads a Config from a YAML file.
// Supported extensions: .yaml, .yml
func ConfigFromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return ConfigFromYAML(data)
}

// ConfigFromYAML parses YAML data into a Config.
func ConfigFromYAML(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return c, nil
}

// NewRecorder returns the metrics recorder selected by the config.
func (c Config) NewRecorder() MetricsRecorder {
	if !c.Metrics {
		return NoopMetrics{}
	}
	return NewMetricsRecorder()
}

// NewSpanManager returns the span manager selected by the config.
func (c Config) NewSpanManager() SpanManager {
	if !c.Tracing {
		return NoopSpanManager{}
	}
	return NewSpanManager()
}

// NewLogger returns a stderr slog logger at the configured level, or nil
// when logging is disabled.
func (c Config) NewLogger() *slog.Logger {
	if c.LogLevel == "" {
		return nil
	}
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
