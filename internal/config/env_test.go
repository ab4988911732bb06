// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Obscura Labs

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// payrollEnvKeys lists every variable parseEnv reads. Tests clear them all so
// values leaking in from the CI environment cannot flip an assertion.
var payrollEnvKeys = []string{
	"CONFIG",

	"APP_PASSWORD_HASH_KEY",
	"APP_TOKEN_SIGN_KEY",
	"APP_TOKEN_ISSUER",
	"APP_TOKEN_DURATION",
	"APP_HASH_KEY",
	"APP_VERSION",

	"SERVER_ADDRESS",
	"SERVER_GRPC_ADDRESS",
	"SERVER_REQUEST_TIMEOUT",

	"ENGINE_INPUT_KEY",

	"GATEWAY_SHARED_SECRET",
	"GATEWAY_KEY_SALT",
	"GATEWAY_DEFAULT_DEADLINE",

	"PAYROLL_RUN_FREQUENCY",

	"ADAPTER_ADDRESS",
	"ADAPTER_GRPC_ADDRESS",
	"ADAPTER_REQUEST_TIMEOUT",

	"WORKERS_SWEEP_INTERVAL",
	"WORKERS_DUE_CHECK_INTERVAL",
	"WORKERS_REFRESH_INTERVAL",

	"STORAGE_DB_DATABASE_URI",
	"STORAGE_FILES_AUDIT_DIR",
}

// setPayrollEnv empties the process environment of every config variable and
// then applies vars for the duration of the test. t.Setenv registers the
// restore before os.Unsetenv removes the variable, so the original
// environment survives the test either way.
func setPayrollEnv(t *testing.T, vars map[string]string) {
	t.Helper()

	for _, k := range payrollEnvKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_FullDeployment(t *testing.T) {
	setPayrollEnv(t, map[string]string{
		"CONFIG": "/etc/payroll/config.json",

		"APP_PASSWORD_HASH_KEY": "pepper",
		"APP_TOKEN_SIGN_KEY":    "sign-secret",
		"APP_TOKEN_ISSUER":      "blind-payroll",
		"APP_TOKEN_DURATION":    "1h",
		"APP_HASH_KEY":          "integrity",
		"APP_VERSION":           "1.4.0",

		"SERVER_ADDRESS":         "0.0.0.0:8080",
		"SERVER_GRPC_ADDRESS":    "0.0.0.0:9090",
		"SERVER_REQUEST_TIMEOUT": "30s",

		"ENGINE_INPUT_KEY": "engine-secret",

		"GATEWAY_SHARED_SECRET":    "gw-secret",
		"GATEWAY_KEY_SALT":         "gw-salt",
		"GATEWAY_DEFAULT_DEADLINE": "5m",

		"PAYROLL_RUN_FREQUENCY": "720h",

		"WORKERS_SWEEP_INTERVAL":     "30s",
		"WORKERS_DUE_CHECK_INTERVAL": "1m",
		"WORKERS_REFRESH_INTERVAL":   "10s",

		"STORAGE_DB_DATABASE_URI": "postgres://payroll:pw@localhost/payroll",
		"STORAGE_FILES_AUDIT_DIR": "/var/lib/payroll/audit",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	want := &StructuredConfig{
		App: App{
			PasswordHashKey: "pepper",
			TokenSignKey:    "sign-secret",
			TokenIssuer:     "blind-payroll",
			TokenDuration:   time.Hour,
			HashKey:         "integrity",
			Version:         "1.4.0",
		},
		Storage: Storage{
			DB:    DB{DSN: "postgres://payroll:pw@localhost/payroll"},
			Files: Files{AuditDir: "/var/lib/payroll/audit"},
		},
		Server: Server{
			HTTPAddress:    "0.0.0.0:8080",
			GRPCAddress:    "0.0.0.0:9090",
			RequestTimeout: 30 * time.Second,
		},
		Engine: Engine{InputKey: "engine-secret"},
		Gateway: Gateway{
			SharedSecret:    "gw-secret",
			KeySalt:         "gw-salt",
			DefaultDeadline: 5 * time.Minute,
		},
		Payroll: Payroll{RunFrequency: 720 * time.Hour},
		Workers: Workers{
			SweepInterval:    30 * time.Second,
			DueCheckInterval: time.Minute,
			RefreshInterval:  10 * time.Second,
		},
		JSONFilePath: "/etc/payroll/config.json",
	}
	assert.Equal(t, want, cfg)
}

func TestParseEnv_UnsetVariablesStayZero(t *testing.T) {
	// The nested prefixes compose: STORAGE_ + DB_ + DATABASE_URI. Variables
	// that are not set leave their fields at zero for the merge step to fill.
	setPayrollEnv(t, map[string]string{
		"APP_TOKEN_SIGN_KEY":      "sign-secret",
		"STORAGE_DB_DATABASE_URI": "postgres://localhost/payroll",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	want := &StructuredConfig{
		App:     App{TokenSignKey: "sign-secret"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/payroll"}},
	}
	assert.Equal(t, want, cfg)
}

func TestParseEnv_EmptyEnvironment(t *testing.T) {
	setPayrollEnv(t, nil)

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_BadDuration(t *testing.T) {
	setPayrollEnv(t, map[string]string{
		"PAYROLL_RUN_FREQUENCY": "once a month",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_RunFrequencyFormats(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "monthly cycle", value: "720h", want: 720 * time.Hour},
		{name: "weekly cycle", value: "168h", want: 168 * time.Hour},
		{name: "daily cycle", value: "24h", want: 24 * time.Hour},
		{name: "mixed units", value: "1h30m", want: 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setPayrollEnv(t, map[string]string{"PAYROLL_RUN_FREQUENCY": tt.value})

			cfg := &StructuredConfig{}
			require.NoError(t, parseEnv(cfg))
			assert.Equal(t, tt.want, cfg.Payroll.RunFrequency)
		})
	}
}
