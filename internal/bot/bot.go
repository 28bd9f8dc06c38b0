package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"chirp/internal/content"
	"chirp/internal/poster"
	"chirp/pkg/logging"
	pkgstrings "chirp/pkg/strings"
)

const (
	// MinInterval is the floor for the posting cadence.
	MinInterval = time.Minute

	// maxPostRunes is the platform's character limit. Generated text is
	// clamped to it; text given explicitly on the command line is not,
	// the platform's own rejection is more useful there.
	maxPostRunes = 280

	postJobTag = "post"
)

// Publisher publishes one post. *poster.Poster satisfies it.
type Publisher interface {
	Post(ctx context.Context, text string) (*poster.PostResult, error)
}

// Config configures the posting loop.
type Config struct {
	// PostEveryHours is the cadence between posts. Fractions are allowed.
	PostEveryHours float64
	// Provider generates each post's text.
	Provider content.Provider
	// Publisher publishes the text.
	Publisher Publisher
}

// Interval converts a cadence in hours to the scheduler interval,
// floored at MinInterval.
func Interval(postEveryHours float64) time.Duration {
	interval := time.Duration(postEveryHours * float64(time.Hour))
	if interval < MinInterval {
		return MinInterval
	}
	return interval
}

// Bot posts on a fixed cadence until its context is cancelled.
type Bot struct {
	interval  time.Duration
	provider  content.Provider
	publisher Publisher
	scheduler *gocron.Scheduler
}

// New creates the posting loop.
func New(cfg Config) (*Bot, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("content provider is required")
	}
	if cfg.Publisher == nil {
		return nil, fmt.Errorf("publisher is required")
	}

	return &Bot{
		interval:  Interval(cfg.PostEveryHours),
		provider:  cfg.Provider,
		publisher: cfg.Publisher,
		scheduler: gocron.NewScheduler(time.UTC),
	}, nil
}

// PostOnce runs one generate-and-post cycle.
func (b *Bot) PostOnce(ctx context.Context) (*poster.PostResult, error) {
	text, err := b.provider.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate post text: %w", err)
	}
	text = pkgstrings.TruncatePost(text, maxPostRunes)

	logging.Info("Bot", "Posting: %s", text)
	result, err := b.publisher.Post(ctx, text)
	if err != nil {
		return nil, err
	}
	logging.Info("Bot", "Posted, id %s", result.Data.ID)
	return result, nil
}

// Run posts immediately, then on every interval tick, until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	logging.Info("Bot", "Posting every %s, first post now", b.interval)

	_, err := b.scheduler.
		Every(b.interval).
		Tag(postJobTag).
		StartImmediately().
		Do(b.cycle)
	if err != nil {
		return fmt.Errorf("could not schedule posting job: %w", err)
	}
	b.scheduler.StartAsync()

	<-ctx.Done()
	b.scheduler.Stop()
	logging.Info("Bot", "Posting loop stopped")
	return nil
}

// cycle is one scheduler tick. A started cycle always runs to completion;
// cancellation only stops future ticks. The HTTP client timeouts bound each
// call.
func (b *Bot) cycle() {
	if _, err := b.PostOnce(context.Background()); err != nil {
		logging.Error("Bot", err, "Posting cycle failed")
	}
}
