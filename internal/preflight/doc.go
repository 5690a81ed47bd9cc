// Package preflight provides readiness checks for the pieces originx depends
// on: the SHA-256 provider, the directories backing the vault and log file,
// and the configured vault backend itself.
//
// The CLI "originx status" command runs RunAll and renders each Result.
// Checks never modify the vault.
package preflight
