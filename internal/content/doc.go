// Package content produces the text for each post.
//
// Core Components:
//   - Provider: the single-method contract the posting loop consumes
//   - ChatProvider: one-shot call to an OpenAI-compatible chat completions endpoint
//   - StaticProvider: rotation over a fixed set of built-in sentences
//   - Fallback: primary/standby pair so generation failures never skip a cycle
//
// Providers return the post text only; trimming to the platform's length limit
// is the caller's concern.
package content
