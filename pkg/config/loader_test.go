package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/bookingkit/pkg/config"
)

type testConfig struct {
	Name    string        `env:"BOOKINGKIT_TEST_NAME" envDefault:"engine"`
	Window  time.Duration `env:"BOOKINGKIT_TEST_WINDOW" envDefault:"60s"`
	Retries int           `env:"BOOKINGKIT_TEST_RETRIES" envDefault:"5"`
}

type requiredConfig struct {
	Token string `env:"BOOKINGKIT_TEST_REQUIRED_TOKEN,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "engine", cfg.Name)
	assert.Equal(t, 60*time.Second, cfg.Window)
	assert.Equal(t, 5, cfg.Retries)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("BOOKINGKIT_TEST_NAME", "custom")
	t.Setenv("BOOKINGKIT_TEST_WINDOW", "90s")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "custom", cfg.Name)
	assert.Equal(t, 90*time.Second, cfg.Window)
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_MissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
