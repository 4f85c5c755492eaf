package muxconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/logmux"
	"go.jacobcolvin.com/logmux/muxconfig"
	"go.jacobcolvin.com/logmux/stringtest"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expectError bool
		check       func(*testing.T, *muxconfig.Config)
	}{
		"full config": {
			input: stringtest.JoinLF(
				"channels:",
				"  - name: api",
				"    level: info",
				"  - name: db",
				"outputs:",
				"  - name: errors",
				"    path: errors.log",
				"    level: error",
				"    format: logfmt",
				"    channels: [api]",
			),
			check: func(t *testing.T, cfg *muxconfig.Config) {
				t.Helper()

				require.Len(t, cfg.Channels, 2)
				assert.Equal(t, "api", cfg.Channels[0].Name)
				assert.Equal(t, "info", cfg.Channels[0].Level)
				assert.Empty(t, cfg.Channels[1].Level)

				require.Len(t, cfg.Outputs, 1)
				assert.Equal(t, []string{"api"}, cfg.Outputs[0].Channels)
			},
		},
		"empty config": {
			input: "",
			check: func(t *testing.T, cfg *muxconfig.Config) {
				t.Helper()

				assert.Empty(t, cfg.Channels)
				assert.Empty(t, cfg.Outputs)
			},
		},
		"malformed yaml": {
			input:       "channels: [",
			expectError: true,
		},
		"channel without name": {
			input: stringtest.JoinLF(
				"channels:",
				"  - level: info",
			),
			expectError: true,
		},
		"duplicate channel name": {
			input: stringtest.JoinLF(
				"channels:",
				"  - name: api",
				"  - name: api",
			),
			expectError: true,
		},
		"unknown channel level": {
			input: stringtest.JoinLF(
				"channels:",
				"  - name: api",
				"    level: loud",
			),
			expectError: true,
		},
		"duplicate output name": {
			input: stringtest.JoinLF(
				"outputs:",
				"  - name: sink",
				"  - name: sink",
			),
			expectError: true,
		},
		"unknown output format": {
			input: stringtest.JoinLF(
				"outputs:",
				"  - name: sink",
				"    format: json",
			),
			expectError: true,
		},
		"output references unknown channel": {
			input: stringtest.JoinLF(
				"channels:",
				"  - name: api",
				"outputs:",
				"  - name: sink",
				"    channels: [db]",
			),
			expectError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := muxconfig.Load([]byte(tc.input))
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, muxconfig.ErrInvalidConfig)

				return
			}

			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestConfigBuild(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	apiPath := filepath.Join(dir, "api.log")
	errPath := filepath.Join(dir, "errors.log")

	cfg, err := muxconfig.Load([]byte(stringtest.JoinLF(
		"channels:",
		"  - name: api",
		"    level: info",
		"  - name: db",
		"outputs:",
		"  - name: api",
		"    path: "+apiPath,
		"    channels: [api]",
		"  - name: errors",
		"    path: "+errPath,
		"    level: error",
	)))
	require.NoError(t, err)

	r, closer, err := cfg.Build()
	require.NoError(t, err)

	defer func() {
		require.NoError(t, closer.Close())
	}()

	assert.Equal(t, []string{"api", "db"}, r.ChannelNames())

	// Channel level from the config: api filters debug, db passes it.
	assert.False(t, r.WouldLog(logmux.LevelDebug, logmux.To("api")))
	assert.True(t, r.WouldLog(logmux.LevelDebug, logmux.To("db")))

	require.NoError(t, r.Log(logmux.All, logmux.LevelInfo, "hello"))
	require.NoError(t, r.Log(logmux.To("api"), logmux.LevelError, "bad"))

	apiOut, err := os.ReadFile(apiPath)
	require.NoError(t, err)
	assert.Equal(t, stringtest.JoinLF(
		"[info] hello",
		"[error] bad",
		"",
	), string(apiOut))

	// The error-gated output is attached to both channels, so the info
	// line is dropped twice and only the error line lands.
	errOut, err := os.ReadFile(errPath)
	require.NoError(t, err)
	assert.Equal(t, "[error] bad\n", string(errOut))
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := muxconfig.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, muxconfig.ErrInvalidConfig)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "logmux.yaml")
		require.NoError(t, os.WriteFile(path, []byte("channels:\n  - name: api\n"), 0o600))

		cfg, err := muxconfig.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, cfg.Channels, 1)
		assert.Equal(t, "api", cfg.Channels[0].Name)
	})
}

func TestLoaderFlags(t *testing.T) {
	t.Parallel()

	loader := muxconfig.NewLoader()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	loader.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"--config", "custom.yaml"}))
	assert.Equal(t, "custom.yaml", loader.Path)
}
