// Package config loads the optional TOML settings file of archive-name.
package config
