package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Sonchiik/Workout-Traker/internal/flagx"
	"github.com/Sonchiik/Workout-Traker/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept "20m"
// or integer nanoseconds. Absent keys keep the values already in Config.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	RedisAddr                   string         `json:"redis_addr"`
	CatalogCacheTTL             timex.Duration `json:"catalog_cache_ttl"`
	LogFormat                   string         `json:"log_format"`
	Environment                 string         `json:"environment"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
	RejectInactiveLogins        *bool          `json:"reject_inactive_logins"`
}

// parseJson loads the file given with -c/-config, if any, into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.Environment, c.Environment)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.CatalogCacheTTL.Duration != 0 {
		config.CatalogCacheTTL = c.CatalogCacheTTL.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.RejectInactiveLogins != nil {
		config.RejectInactiveLogins = *c.RejectInactiveLogins
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
