// Package logging provides a structured logging system for chirp with unified
// log handling and level filtering.
//
// This package implements a thin layer over Go's standard slog package. Every
// log entry carries a subsystem identifier so log output can be filtered and
// attributed: Bootstrap, Config, Auth, TokenStore, Bot, Poster, Content.
//
// # Usage
//
//	import "chirp/pkg/logging"
//
//	// Initialize with Info level logging to stdout
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//
//	// Log messages
//	logging.Info("Bootstrap", "Application starting up")
//	logging.Debug("Config", "Loaded configuration from %s", configPath)
//	logging.Warn("Bot", "Posting cycle failed, continuing")
//	logging.Error("TokenStore", err, "Failed to persist token set")
//
// The CLI handler is lmittmann/tint, which renders slog records as compact,
// optionally colorized lines. Level filtering happens at the handler so
// suppressed messages cost no formatting work.
//
// Token and credential values are never passed to this package; callers log
// file paths, endpoints, and expiry timestamps only.
package logging
