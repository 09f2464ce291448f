// Package config loads server settings from an optional yaml file and
// SIGNAL_* environment variables.
package config
