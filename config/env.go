package config

import "os"

// Environment names the runtime environment, resolved from ENV with CI
// detected from the conventional CI variable.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the current environment. Unknown or unset ENV
// values fall back to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsProduction reports whether the service runs with production settings.
// Config validation is stricter in production.
func IsProduction() bool {
	return GetEnvironment() == Production
}
