// Package bot runs the scheduled posting loop.
//
// A cycle generates post text through the content provider and publishes it.
// Cycle failures are logged and the loop keeps going; only context
// cancellation stops the scheduler. The cadence comes from configuration and
// is floored at one minute.
package bot
