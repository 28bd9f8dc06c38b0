package content

import (
	"context"
	"math/rand"

	"chirp/pkg/logging"
)

// Provider generates the text for one post.
type Provider interface {
	Generate(ctx context.Context) (string, error)
}

// builtinSentences is the rotation used when no chat endpoint is configured.
var builtinSentences = []string{
	"Testing automated post 1: Hello from my hourly bot!",
	"Testing automated post 2: This is a scheduled tweet.",
	"Testing automated post 3: Verifying OAuth refresh works.",
	"Testing automated post 4: Rotating through messages.",
	"Testing automated post 5: Everything looks good so far!",
}

// StaticProvider serves a random sentence from a fixed set. It never fails.
type StaticProvider struct {
	sentences []string
}

// NewStaticProvider creates a provider over the given sentences, or over the
// built-in set when none are given.
func NewStaticProvider(sentences ...string) *StaticProvider {
	if len(sentences) == 0 {
		sentences = builtinSentences
	}
	return &StaticProvider{sentences: sentences}
}

// Generate picks one sentence at random.
func (p *StaticProvider) Generate(ctx context.Context) (string, error) {
	return p.sentences[rand.Intn(len(p.sentences))], nil
}

// Fallback tries Primary and falls back to Standby when it fails. Text
// generation failing must not skip a posting cycle.
type Fallback struct {
	Primary Provider
	Standby Provider
}

// Generate returns the primary provider's text, or the standby's after the
// primary fails.
func (f *Fallback) Generate(ctx context.Context) (string, error) {
	text, err := f.Primary.Generate(ctx)
	if err != nil {
		logging.Warn("Content", "Primary content provider failed, using standby: %s", err)
		return f.Standby.Generate(ctx)
	}
	return text, nil
}
