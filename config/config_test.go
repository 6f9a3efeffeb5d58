package config_test

import (
	"github.com/alexandre-normand/cookiebot/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestNewWithDefault(t *testing.T) {
	v := config.NewViperWithDefaults()

	assert.Equal(t, false, v.GetBool(config.DebugKey), "%s should be %t", config.DebugKey, false)
	assert.Equal(t, ":3000", v.GetString(config.ListenAddressKey), "%s should be %s", config.ListenAddressKey, ":3000")
	assert.Equal(t, 500, v.GetInt(config.UserInfoCacheSizeKey), "%s should be %d", config.UserInfoCacheSizeKey, 500)
	assert.Equal(t, "", v.GetString(config.TokenKey))
}

func TestLayerConfigWithDefaults(t *testing.T) {
	v := viper.New()

	for key := range config.NewViperWithDefaults().AllSettings() {
		assert.Nil(t, v.Get(key))
	}

	v = config.LayerConfigWithDefaults(v)
	for key, expectedVal := range config.NewViperWithDefaults().AllSettings() {
		assert.Equal(t, expectedVal, v.Get(key), "%s should be %v", key, expectedVal)
	}
}

func TestLayeredConfigWithDefaultsAndOverrides(t *testing.T) {
	v := viper.New()
	v.Set(config.ListenAddressKey, ":8080")

	v = config.LayerConfigWithDefaults(v)

	assert.Equal(t, ":8080", v.GetString(config.ListenAddressKey))
	assert.Equal(t, 500, v.GetInt(config.UserInfoCacheSizeKey))
}

func TestBindEnv(t *testing.T) {
	t.Setenv(config.TokenEnv, "xoxb-token")
	t.Setenv(config.DatabaseURLEnv, "memory://")
	t.Setenv(config.DebugEnv, "true")

	v := config.NewViperWithDefaults()
	require.NoError(t, config.BindEnv(v))

	assert.Equal(t, "xoxb-token", v.GetString(config.TokenKey))
	assert.Equal(t, "memory://", v.GetString(config.DatabaseURLKey))
	assert.True(t, v.GetBool(config.DebugKey))
	assert.Equal(t, ":3000", v.GetString(config.ListenAddressKey))
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookiebot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: xoxb-file\nlistenAddress: \":9000\"\n"), 0600))

	v := config.NewViperWithDefaults()
	require.NoError(t, config.ReadConfigFile(v, path))

	assert.Equal(t, "xoxb-file", v.GetString(config.TokenKey))
	assert.Equal(t, ":9000", v.GetString(config.ListenAddressKey))
}

func TestReadMissingConfigFile(t *testing.T) {
	v := config.NewViperWithDefaults()

	err := config.ReadConfigFile(v, filepath.Join(t.TempDir(), "missing.yaml"))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "failed to read configuration file")
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		values   map[string]interface{}
		expected string
	}{
		{"missingToken", map[string]interface{}{config.DatabaseURLKey: "memory://"}, "missing required configuration [token]: set the SLACK_TOKEN environment variable"},
		{"missingDatabaseURL", map[string]interface{}{config.TokenKey: "xoxb"}, "missing required configuration [databaseURL]: set the DATABASE_URL environment variable"},
		{"negativeCacheSize", map[string]interface{}{config.TokenKey: "xoxb", config.DatabaseURLKey: "memory://", config.UserInfoCacheSizeKey: -1}, "invalid configuration [userInfoCacheSize]: -1 is negative"},
		{"emptyListenAddress", map[string]interface{}{config.TokenKey: "xoxb", config.DatabaseURLKey: "memory://", config.ListenAddressKey: ""}, "invalid configuration [listenAddress]: must not be empty"},
		{"valid", map[string]interface{}{config.TokenKey: "xoxb", config.DatabaseURLKey: "memory://"}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := config.NewViperWithDefaults()
			for k, val := range tc.values {
				v.Set(k, val)
			}

			err := config.Validate(v)
			if tc.expected == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.expected)
			}
		})
	}
}
