// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. It also resolves the immutable client
// configuration record (backend URL, upload limits, default test duration)
// from the production/development mode chosen at startup.
package config
