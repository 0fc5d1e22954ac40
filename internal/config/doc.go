// Package config loads and validates application configuration from
// environment variables (MINDMEND_ prefix) and an optional config.yaml file.
// Environment variables take precedence over file values.
package config
