// Package config loads the application configuration from YAML.
//
// Struct tags drive validation. The Maps API key may come from the file, the
// environment or a .env file, and the environment wins.
package config
