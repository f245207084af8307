package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exosplatform/platformkit/pkg/config"
)

type testConfig struct {
	Name  string `env:"LOADER_TEST_NAME" envDefault:"fallback"`
	Count int    `env:"LOADER_TEST_COUNT" envDefault:"3"`
}

type requiredConfig struct {
	Secret string `env:"LOADER_TEST_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("parses env into struct and caches per type", func(t *testing.T) {
		t.Setenv("LOADER_TEST_NAME", "from-env")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Name)
		assert.Equal(t, 3, cfg.Count)

		// A changed environment does not affect the cached copy.
		t.Setenv("LOADER_TEST_NAME", "changed")
		var again testConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "from-env", again.Name)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics when a required variable is missing", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})
}
