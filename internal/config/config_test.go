package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "all", cfg.Iface)
	assert.Equal(t, ModeDashboard, cfg.Mode)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 0, cfg.Count)
	assert.True(t, cfg.UseEMA)
	assert.Equal(t, 0.2, cfg.Alpha)
	assert.Equal(t, "both", cfg.View)
}

func TestFromFlags(t *testing.T) {
	t.Run("PlainMode", func(t *testing.T) {
		cfg, err := FromFlags([]string{"-plain", "-iface", "eth0"})
		require.NoError(t, err)
		assert.Equal(t, ModeText, cfg.Mode)
		assert.Equal(t, "eth0", cfg.Iface)
	})

	t.Run("RecordMode", func(t *testing.T) {
		cfg, err := FromFlags([]string{"-json"})
		require.NoError(t, err)
		assert.Equal(t, ModeRecord, cfg.Mode)
	})

	t.Run("PlainAndJSONConflict", func(t *testing.T) {
		_, err := FromFlags([]string{"-plain", "-json"})
		assert.Error(t, err)
	})

	t.Run("OnceSetsCount", func(t *testing.T) {
		cfg, err := FromFlags([]string{"-once"})
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Count)
	})

	t.Run("NoEMA", func(t *testing.T) {
		cfg, err := FromFlags([]string{"-no-ema"})
		require.NoError(t, err)
		assert.False(t, cfg.UseEMA)
	})

	t.Run("EnvOverridesIface", func(t *testing.T) {
		t.Setenv("NTM_IFACE", "wlan0")
		cfg, err := FromFlags(nil)
		require.NoError(t, err)
		assert.Equal(t, "wlan0", cfg.Iface)
	})

	t.Run("EnvIntervalBareSeconds", func(t *testing.T) {
		t.Setenv("NTM_INTERVAL", "2")
		cfg, err := FromFlags(nil)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, cfg.Interval)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"Defaults", func(*Config) {}, true},
		{"AlphaZero", func(c *Config) { c.Alpha = 0 }, false},
		{"AlphaOne", func(c *Config) { c.Alpha = 1 }, true},
		{"AlphaAboveOne", func(c *Config) { c.Alpha = 1.5 }, false},
		{"AlphaNegative", func(c *Config) { c.Alpha = -0.2 }, false},
		{"ZeroInterval", func(c *Config) { c.Interval = 0 }, false},
		{"NegativeCount", func(c *Config) { c.Count = -1 }, false},
		{"BadView", func(c *Config) { c.View = "fancy" }, false},
		{"EmptyIface", func(c *Config) { c.Iface = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
