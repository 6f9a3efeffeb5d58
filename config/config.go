// Package config provides the configuration keys, defaults and validation for a cookiebot
// instance. Configuration is held in a viper instance layered from defaults, an optional
// config file and environment variables
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	TokenKey                 = "token"                 // Slack bot token, string value
	DatabaseURLKey           = "databaseURL"           // Storage backend url (datastore://, postgres://, leveldb://, memory://), string value
	SigningSecretKey         = "signingSecret"         // Slack signing secret used to verify slash commands, string value. The slash command endpoint is disabled when empty
	ListenAddressKey         = "listenAddress"         // Address the http server listens on, string value
	DebugKey                 = "debug"                 // Debug mode, boolean value
	UserInfoCacheSizeKey     = "userInfoCacheSize"     // The number of entries to keep in the user info cache, int value. 0 disables caching
	GCloudCredentialsFileKey = "gcloudCredentialsFile" // Path to a gcloud service account json file, string value
)

const (
	TokenEnv                 = "SLACK_TOKEN"
	DatabaseURLEnv           = "DATABASE_URL"
	SigningSecretEnv         = "SLACK_SIGNING_SECRET"
	ListenAddressEnv         = "COOKIEBOT_LISTEN_ADDRESS"
	DebugEnv                 = "COOKIEBOT_DEBUG"
	GCloudCredentialsFileEnv = "GOOGLE_APPLICATION_CREDENTIALS"
)

const (
	defaultListenAddress     = ":3000"
	defaultUserInfoCacheSize = 500
)

// envBinding maps a configuration key to the environment variable it is read from
type envBinding struct {
	key string
	env string
}

var envBindings = []envBinding{
	{TokenKey, TokenEnv},
	{DatabaseURLKey, DatabaseURLEnv},
	{SigningSecretKey, SigningSecretEnv},
	{ListenAddressKey, ListenAddressEnv},
	{DebugKey, DebugEnv},
	{GCloudCredentialsFileKey, GCloudCredentialsFileEnv},
}

// requiredKeys are the keys that must have a non-empty value for Validate to succeed
var requiredKeys = []envBinding{
	{TokenKey, TokenEnv},
	{DatabaseURLKey, DatabaseURLEnv},
}

// NewViperWithDefaults creates a new viper instance with defaults values set for all
// configuration keys that have one
func NewViperWithDefaults() (v *viper.Viper) {
	return LayerConfigWithDefaults(viper.New())
}

// LayerConfigWithDefaults sets the default values on an existing viper instance. Values
// that are already set remain untouched
func LayerConfigWithDefaults(v *viper.Viper) *viper.Viper {
	v.SetDefault(DebugKey, false)
	v.SetDefault(ListenAddressKey, defaultListenAddress)
	v.SetDefault(UserInfoCacheSizeKey, defaultUserInfoCacheSize)

	return v
}

// BindEnv binds every configuration key to its environment variable
func BindEnv(v *viper.Viper) (err error) {
	for _, b := range envBindings {
		if err = v.BindEnv(b.key, b.env); err != nil {
			return errors.Wrapf(err, "failed to bind [%s] to environment variable [%s]", b.key, b.env)
		}
	}

	return nil
}

// ReadConfigFile reads configuration values from the file at path. The file format
// is inferred from its extension
func ReadConfigFile(v *viper.Viper, path string) (err error) {
	v.SetConfigFile(path)

	if err = v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read configuration file [%s]", path)
	}

	return nil
}

// Validate returns an error naming the first required value that is missing
// or the first value that is invalid
func Validate(v *viper.Viper) (err error) {
	for _, r := range requiredKeys {
		if v.GetString(r.key) == "" {
			return errors.Errorf("missing required configuration [%s]: set the %s environment variable", r.key, r.env)
		}
	}

	if v.GetInt(UserInfoCacheSizeKey) < 0 {
		return errors.Errorf("invalid configuration [%s]: %d is negative", UserInfoCacheSizeKey, v.GetInt(UserInfoCacheSizeKey))
	}

	if v.GetString(ListenAddressKey) == "" {
		return errors.Errorf("invalid configuration [%s]: must not be empty", ListenAddressKey)
	}

	return nil
}
