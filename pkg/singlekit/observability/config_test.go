package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromYAML(t *testing.T) {
	data := []byte("metrics: true\ntracing: true\nlog_level: debug\n")

	c, err := ConfigFromYAML(data)
	require.NoError(t, err)

	assert.True(t, c.Metrics)
	assert.True(t, c.Tracing)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestConfigFromYAMLDefaults(t *testing.T) {
	c, err := ConfigFromYAML([]byte("{}"))
	require.NoError(t, err)

	assert.False(t, c.Metrics)
	assert.False(t, c.Tracing)
	assert.Empty(t, c.LogLevel)
}

func TestConfigFromYAMLInvalid(t *testing.T) {
	_, err := ConfigFromYAML([]byte("metrics: [unclosed"))
	assert.Error(t, err)
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metrics: true\n"), 0o644))

	c, err := ConfigFromFile(path)
	require.NoError(t, err)
	assert.True(t, c.Metrics)
}

func TestConfigFromFileMissing(t *testing.T) {
	_, err := ConfigFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfigFromFileUnsupportedExtension(t *testing.T) {
	_, err := ConfigFromFile("obs.toml")
	assert.ErrorContains(t, err, "unsupported config file extension")
}

func TestConfigNewRecorderDisabled(t *testing.T) {
	c := Config{Metrics: false}

	_, isNoop := c.NewRecorder().(NoopMetrics)
	assert.True(t, isNoop)
}

func TestConfigNewSpanManagerDisabled(t *testing.T) {
	c := Config{Tracing: false}

	_, isNoop := c.NewSpanManager().(NoopSpanManager)
	assert.True(t, isNoop)
}

func TestConfigNewSpanManagerEnabled(t *testing.T) {
	c := Config{Tracing: true}

	_, isNoop := c.NewSpanManager().(NoopSpanManager)
	assert.False(t, isNoop)
}

func TestConfigNewLogger(t *testing.T) {
	assert.Nil(t, Config{}.NewLogger())
	assert.NotNil(t, Config{LogLevel: "debug"}.NewLogger())
	assert.NotNil(t, Config{LogLevel: "unknown"}.NewLogger())
}
