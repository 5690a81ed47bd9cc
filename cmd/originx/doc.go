// Package main hosts the originx CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into proof workflows:
// fingerprinting text, files, or stdin, registering proofs in the configured
// vault, verifying content against stored proofs, and listing the vault. It
// centralizes configuration resolution, logging setup, and vault opening so
// subcommands only deal with input and presentation.
//
// Exit status is 0 on success, 1 on error, and 2 when verify finds no
// matching proof.
package main
