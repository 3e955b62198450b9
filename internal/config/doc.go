// Package config loads, normalizes, and validates delugekit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DELUGEKIT_CARD. The Config type centralizes the card location, kit naming
// defaults, extraction concurrency, and logging knobs the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
