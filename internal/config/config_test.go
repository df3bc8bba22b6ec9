package config_test

import (
	"testing"

	"github.com/smonzon/registration-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.DBHostEnv, "localhost")
	t.Setenv(config.DBUserEnv, "user")
	t.Setenv(config.DBPassEnv, "pass")
	t.Setenv(config.DBNameEnv, "testdb")
	t.Setenv(config.DBPortEnv, "5432")
	t.Setenv(config.HTTPServerPortEnv, "8080")
	t.Setenv(config.MetricsServerPortEnv, "9090")
	t.Setenv(config.AWSRegionEnv, "us-east-1")
	t.Setenv(config.SQSQueueURLEnv, "https://sqs.us-east-1.amazonaws.com/123456789/user-changes")
}

func TestLoadFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(config.DebugModeEnv, "true")

	conf, err := config.LoadFromEnv()
	require.NoError(t, err, "loading config should not return error")

	assert.True(t, conf.DebugMode, "DebugMode should be true")
	assert.Equal(t, "localhost", conf.Database.Host)
	assert.Equal(t, "user", conf.Database.User)
	assert.Equal(t, "pass", conf.Database.Password)
	assert.Equal(t, "testdb", conf.Database.Name)
	assert.Equal(t, "5432", conf.Database.Port)
	assert.Equal(t, "8080", conf.HTTPServer.Port)
	assert.Equal(t, "9090", conf.MetricsServer.Port)
	assert.Equal(t, "us-east-1", conf.AWS.Region)
	assert.Equal(t, "https://sqs.us-east-1.amazonaws.com/123456789/user-changes", conf.AWS.SQSQueueURL)
}

func TestLoadFromEnv_MissingQueueURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(config.SQSQueueURLEnv, "")

	_, err := config.LoadFromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingConfig)
}

func TestLoadFromEnv_MissingDBHost(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(config.DBHostEnv, "")

	_, err := config.LoadFromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingConfig)
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"GetEnvAsBool_True", "true", false, true},
		{"GetEnvAsBool_False", "false", true, false},
		{"GetEnvAsBool_Invalid", "invalid", true, true},
		{"GetEnvAsBool_Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV", tt.envValue)
			got := config.GetEnvAsBool("TEST_ENV", tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllNumbers(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr bool
	}{
		{"AllNumbers_Valid", map[string]string{"key1": "123", "key2": "456", "key3": "789"}, false},
		{"AllNumbers_Invalid", map[string]string{"key1": "123", "key2": "abc", "key3": "789"}, true},
		{"AllNumbers_EmptyString", map[string]string{"key1": "123", "key2": "", "key3": "789"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.AllNumbers(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllNonEmpty(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr bool
	}{
		{"AllNonEmpty_Valid", map[string]string{"key1": "a", "key2": "b"}, false},
		{"AllNonEmpty_OneEmpty", map[string]string{"key1": "a", "key2": ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.AllNonEmpty(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
