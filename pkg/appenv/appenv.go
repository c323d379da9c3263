package appenv

import (
	"os"
	"strings"
)

// Env is the application runtime environment, read from APP_ENV.
type Env string

const (
	Production Env = "production"
	Test       Env = "test"
)

// Current returns the effective environment. Anything that is not an exact
// known value behaves as production, so a deployment typo cannot relax the
// CORS posture.
func Current() Env {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) {
	case string(Test):
		return Test
	default:
		return Production
	}
}

func IsProduction() bool { return Current() == Production }
func IsTest() bool       { return Current() == Test }
