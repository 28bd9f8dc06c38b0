// Package config provides configuration management for chirp.
//
// Configuration is loaded from a single directory containing config.yaml.
// The default directory is ~/.config/chirp; commands accept --config-path
// to point somewhere else. A missing file is not an error, every key has
// a default.
//
// After the file is read, CHIRP_* environment variables override
// individual keys so credentials can stay out of files on shared
// machines:
//
//	CHIRP_API_KEY, CHIRP_API_SECRET, CHIRP_ACCESS_TOKEN,
//	CHIRP_ACCESS_TOKEN_SECRET, CHIRP_CLIENT_ID, CHIRP_REDIRECT_URI,
//	CHIRP_SCOPES (space separated), CHIRP_POST_EVERY_HOURS
//
// The loaded Config is plain data. Deciding what the values mean, such
// as picking the authorization mode from the credential fields, happens
// in the packages that consume it.
package config
