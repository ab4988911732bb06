package config

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile marshals v into a temp JSON file and returns its path.
func writeConfigFile(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "payroll.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestConfigBuilder_StartsEmpty(t *testing.T) {
	b := newConfigBuilder()

	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_EarlierSourceWins(t *testing.T) {
	// The merge order mirrors GetStructuredConfig: env, then flags, then the
	// JSON file. A later source only fills fields still at their zero value.
	env := &StructuredConfig{
		Engine: Engine{InputKey: "engine-key-from-env"},
	}
	flags := &StructuredConfig{
		Engine:  Engine{InputKey: "engine-key-from-flags"},
		Gateway: Gateway{SharedSecret: "gateway-secret"},
	}
	file := &StructuredConfig{
		Gateway: Gateway{SharedSecret: "ignored", KeySalt: "salt-from-file"},
		Payroll: Payroll{RunFrequency: 720 * time.Hour},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, env, flags, file)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "engine-key-from-env", cfg.Engine.InputKey)
	assert.Equal(t, "gateway-secret", cfg.Gateway.SharedSecret)
	assert.Equal(t, "salt-from-file", cfg.Gateway.KeySalt)
	assert.Equal(t, 720*time.Hour, cfg.Payroll.RunFrequency)
}

func TestBuild_ReportsDeferredError(t *testing.T) {
	// Source loaders record failures on the builder instead of aborting, so
	// build is where a bad JSON file or env value finally surfaces.
	b := newConfigBuilder()
	b.err = assert.AnError
	b.configs = append(b.configs, &StructuredConfig{App: App{Version: "1.0.0"}})

	cfg, err := b.build()

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWithEnv_AppendsEnvironmentConfig(t *testing.T) {
	t.Setenv("APP_VERSION", "1.4.0")
	t.Setenv("ENGINE_INPUT_KEY", "engine-key-from-env")
	t.Setenv("GATEWAY_DEFAULT_DEADLINE", "5m")

	b := newConfigBuilder()
	require.Same(t, b, b.withEnv())
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)

	got := b.configs[0]
	assert.Equal(t, "1.4.0", got.App.Version)
	assert.Equal(t, "engine-key-from-env", got.Engine.InputKey)
	assert.Equal(t, 5*time.Minute, got.Gateway.DefaultDeadline)
}

func TestWithEnv_EmptyEnvironmentIsNotAnError(t *testing.T) {
	b := newConfigBuilder().withEnv()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithFlags_AppendsCommandLineConfig(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(io.Discard)

	oldArgs := os.Args
	os.Args = []string{"blind-payroll", "-engine-key", "engine-key-from-flags"}
	t.Cleanup(func() { os.Args = oldArgs })

	b := newConfigBuilder()
	require.Same(t, b, b.withFlags())
	require.Len(t, b.configs, 1)
	assert.Equal(t, "engine-key-from-flags", b.configs[0].Engine.InputKey)
}

func TestWithJSON_LoadsFileNamedByEarlierSource(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "1.4.0"
	payload.Gateway.DefaultDeadline = Duration(5 * time.Minute)
	payload.Payroll.RunFrequency = Duration(720 * time.Hour)
	path := writeConfigFile(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	require.Same(t, b, b.withJSON())

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)

	got := b.configs[1]
	assert.Equal(t, "1.4.0", got.App.Version)
	assert.Equal(t, 5*time.Minute, got.Gateway.DefaultDeadline)
	assert.Equal(t, 720*time.Hour, got.Payroll.RunFrequency)
}

func TestWithJSON_LastPathWins(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "from-second-path"
	path := writeConfigFile(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: ""},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "from-second-path", b.configs[2].App.Version)
}

func TestWithJSON_NoPathIsANoOp(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_RecordsLoadFailures(t *testing.T) {
	brokenFile := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(brokenFile, []byte("{run_frequency:"), 0o600))

	tests := []struct {
		name string
		path string
	}{
		{name: "file does not exist", path: filepath.Join(t.TempDir(), "missing.json")},
		{name: "file is not valid json", path: brokenFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			b.configs = append(b.configs, &StructuredConfig{JSONFilePath: tt.path})
			b.withJSON()

			assert.Error(t, b.err)
			assert.Len(t, b.configs, 1, "a failed load must not append a config")
		})
	}
}

func TestWithJSON_KeepsEarlierError(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "loaded-anyway"
	path := writeConfigFile(t, payload)

	b := newConfigBuilder()
	b.err = assert.AnError
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	// The load itself succeeds and appends; the earlier failure still fails
	// the eventual build.
	assert.ErrorIs(t, b.err, assert.AnError)
	assert.Len(t, b.configs, 2)
}
