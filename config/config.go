package config

import (
	goconfig "github.com/robfig/config"
)

// DefaultFilePath is the path to the config file read when no flag overrides
// it
const DefaultFilePath string = "/etc/catalogue/api.conf"

// APISection is the [api] section of the config file
const APISection string = "api"

// Config file keys
const (
	Environment = "environment"

	DatabaseHost     = "database_host"
	DatabasePort     = "database_port"
	DatabaseName     = "database_database"
	DatabaseUsername = "database_username"
	DatabasePassword = "database_password"

	ListenPort = "listen_port"

	MemcachedHost = "memcached_host"
	MemcachedPort = "memcached_port"
)

var configRequiredStrings = []string{
	DatabaseHost,
	DatabaseName,
	Environment,
	MemcachedHost,
}

var configRequiredInt64s = []string{
	DatabasePort,
	ListenPort,
	MemcachedPort,
}

// Credentials may legitimately be empty in dev environments
var configOptionalStrings = []string{
	DatabaseUsername,
	DatabasePassword,
}

// ConfigStrings contains the string values for the given config keys
var ConfigStrings = map[string]string{}

// ConfigInt64s contains the int64 values for the given config keys
var ConfigInt64s = map[string]int64{}

// Load reads the config file at the given path and populates ConfigStrings
// and ConfigInt64s. Missing required keys are an error, the caller decides
// whether that is fatal.
func Load(path string) error {
	c, err := goconfig.ReadDefault(path)
	if err != nil {
		return err
	}

	for _, key := range configRequiredStrings {
		s, err := c.String(APISection, key)
		if err != nil {
			return err
		}
		ConfigStrings[key] = s
	}

	for _, key := range configOptionalStrings {
		s, err := c.String(APISection, key)
		if err != nil {
			s = ""
		}
		ConfigStrings[key] = s
	}

	for _, key := range configRequiredInt64s {
		ii, err := c.Int(APISection, key)
		if err != nil {
			return err
		}
		ConfigInt64s[key] = int64(ii)
	}

	return nil
}
