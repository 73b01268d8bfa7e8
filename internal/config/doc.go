// Package config handles configuration loading, parsing, and validation
// from a YAML file and TRACKER_-prefixed environment variables. It provides
// type-safe access to settings for the server, database and event publishing.
package config
