// Package config handles configuration loading, parsing, and validation
// from environment variables and optional config files. It gives the rest
// of the application type-safe access to settings while keeping the
// details of where they came from out of business logic.
package config
