// Package config loads, normalizes, and validates originx configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies the ORIGINX_VAULT_BACKEND,
// ORIGINX_REDIS_ADDR and ORIGINX_REDIS_PASSWORD overrides, each of which wins
// over the file when set and not blank. The Config type centralizes every knob the CLI needs,
// so the vault backend, its slot location, the corruption policy, and log
// output are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical backend names, and clear validation errors.
package config
