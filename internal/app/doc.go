// Package app bootstraps and runs chirp.
//
// It follows a two-phase initialization pattern:
//  1. Bootstrap phase: initialize logging, load configuration, wire services
//  2. Execution phase: Run the posting loop, or PostOnce for a single post
//
// The bootstrap refuses to finish without a usable way to authorize API
// requests, so a misconfigured installation fails before anything is posted.
// The auth subcommands, which exist to create that configuration, skip the
// full bootstrap and use LoadChirpConfig and NewTokenStore directly.
package app
