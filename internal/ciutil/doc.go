// Package ciutil detects the execution environment and reads the
// environment variables that point tests at an external database.
package ciutil
