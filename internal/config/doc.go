// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file, DRILL_ environment variables and
// command-line flags. Later sources take precedence over earlier ones.
package config
