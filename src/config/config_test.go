package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "FillData", cfg.FillDataDir)
		assert.Equal(t, "TCA", cfg.TCADir)
		assert.Equal(t, 3, cfg.BrokerLookaheadDays)
		assert.Equal(t, 3307, cfg.Database.Port)
		assert.Equal(t, "America/Chicago", cfg.Timezones.Venue)
		assert.Equal(t, "America/New_York", cfg.Timezones.Local)
	})

	t.Run("file overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		contents := "fill_data_dir: /data/fills\n" +
			"database:\n" +
			"  host: sr.example.com\n" +
			"  user: desk\n"
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "/data/fills", cfg.FillDataDir)
		assert.Equal(t, "sr.example.com", cfg.Database.Host)
		// Untouched keys keep their defaults.
		assert.Equal(t, "TCA", cfg.TCADir)
		assert.Equal(t, 3307, cfg.Database.Port)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fill_data_dir: [unclosed"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	db := Database{Host: "sr.example.com", Port: 3307, User: "desk"}
	assert.Equal(t, "desk:hunter2@tcp(sr.example.com:3307)/", db.DSN("hunter2"))
}
