package ciutil

import (
	"os"
	"strconv"

	"github.com/yodaslang/yodas-api/internal/config"
)

// ExternalDatabase returns the configuration of the external test database
// and whether one is configured. Pool settings are fixed for tests.
func ExternalDatabase() (config.DatabaseConfig, bool) {
	url := GetEnvWithFallbacks([]string{EnvTestDBURL}, "")
	if url == "" {
		return config.DatabaseConfig{}, false
	}

	return config.DatabaseConfig{
		Driver:       GetEnvWithFallbacks([]string{EnvTestDBDriver}, "pgx"),
		URL:          url,
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}, true
}

// RequireExternalDatabase reports whether tests needing an external
// database must fail rather than skip when none is configured. It is set
// explicitly, or implied on CI when a driver is named without a URL.
func RequireExternalDatabase() bool {
	if v := os.Getenv(EnvRequireExternalDB); v != "" {
		required, err := strconv.ParseBool(v)
		return err == nil && required
	}
	return IsCI() && os.Getenv(EnvTestDBDriver) != ""
}
