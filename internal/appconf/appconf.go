// Package appconf holds the process configuration: built-in defaults, an
// optional YAML file and command-line overrides.
package appconf

import (
	"strings"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (env Environment) String() string {
	switch env {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag value to an Environment. Unknown
// values select Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// CanonicalEnvName normalises an -env flag value without choosing a default:
// "prod" becomes "production" and anything unrecognised is returned as given
// so that validation can reject it.
func CanonicalEnvName(env string) string {
	name := strings.ToLower(strings.TrimSpace(env))
	switch name {
	case "development", "test", "production":
		return name
	case "prod":
		return Production.String()
	default:
		return env
	}
}
