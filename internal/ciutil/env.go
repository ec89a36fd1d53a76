package ciutil

import (
	"os"
	"strings"
)

// Environment variables consulted by this package.
const (
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	// EnvTestDBDriver names the database/sql driver of the external test
	// database: pgx, mysql or sqlite3.
	EnvTestDBDriver = "YODAS_TEST_DB_DRIVER"
	// EnvTestDBURL is the DSN of the external test database.
	EnvTestDBURL = "YODAS_TEST_DB_URL"
	// EnvRequireExternalDB turns a missing external database into a test
	// failure instead of a skip.
	EnvRequireExternalDB = "YODAS_REQUIRE_EXTERNAL_DB"
)

// IsCI returns true if the current environment is a CI environment.
func IsCI() bool {
	for _, name := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the first non-empty variable of names, or
// defaultValue.
func GetEnvWithFallbacks(names []string, defaultValue string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return defaultValue
}
