package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// isTestEnvironment detects if we're running under go test.
func isTestEnvironment() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, ".test") {
			return true
		}
	}
	return os.Getenv("GO_TEST") == "true" || os.Getenv("TEST_MODE") == "true"
}

// EnvDuration returns the duration configured in envVar, or the
// production default, shortened to the test default under go test.
func EnvDuration(envVar string, prodDefault, testDefault time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil {
			return duration
		}
	}
	if isTestEnvironment() {
		return testDefault
	}
	return prodDefault
}

// EnvInt returns the integer configured in envVar, or the production
// default, lowered to the test default under go test.
func EnvInt(envVar string, prodDefault, testDefault int) int {
	if env := os.Getenv(envVar); env != "" {
		if value, err := strconv.Atoi(env); err == nil {
			return value
		}
	}
	if isTestEnvironment() {
		return testDefault
	}
	return prodDefault
}
