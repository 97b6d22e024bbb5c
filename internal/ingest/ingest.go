// Package ingest runs the loader's validation and insertion pass. Every
// record is handled on its own: a bad record yields a failed Result and the
// pass moves on to the next one.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/bilgisen/newsseed/internal/cache"
	"github.com/bilgisen/newsseed/internal/logger"
	"github.com/bilgisen/newsseed/internal/models"
	"github.com/bilgisen/newsseed/internal/store"
)

// Loader inserts articles that are not yet stored
type Loader struct {
	store     store.Store
	validator *models.Validator
	seen      cache.SeenCache
	seenTTL   time.Duration
	out       io.Writer
	log       *zerolog.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithSeenCache consults c before the store and marks ids known to exist
func WithSeenCache(c cache.SeenCache, ttl time.Duration) Option {
	return func(l *Loader) {
		l.seen = c
		l.seenTTL = ttl
	}
}

// WithOutput writes one status line per record to w
func WithOutput(w io.Writer) Option {
	return func(l *Loader) { l.out = w }
}

// WithLogger replaces the global logger
func WithLogger(log *zerolog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

func New(s store.Store, opts ...Option) *Loader {
	l := &Loader{
		store:     s,
		validator: models.NewValidator(),
		out:       io.Discard,
		log:       logger.Get(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes items in order and returns one Result per processed item.
// It stops early only when ctx is cancelled.
func (l *Loader) Run(ctx context.Context, items []any) []Result {
	start := time.Now()
	results := make([]Result, 0, len(items))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			l.log.Warn().
				Err(err).
				Int("processed", i).
				Int("total", len(items)).
				Msg("Loader cancelled")
			break
		}

		res := l.Process(ctx, i, item)
		results = append(results, res)
		fmt.Fprintln(l.out, res.Line())

		event := l.log.Debug()
		if res.Status == StatusFailed {
			event = l.log.Error().Err(res.Err)
		}
		event.
			Int("index", res.Index).
			Str("id", res.ID).
			Str("status", res.Status.String()).
			Msg("Processed article")
	}

	s := Summarize(results)
	l.log.Info().
		Int("total", len(items)).
		Int("added", s.Added).
		Int("duplicate", s.Duplicate).
		Int("missing_fields", s.MissingFields).
		Int("failed", s.Failed).
		Dur("duration", time.Since(start)).
		Msg("Finished loading articles")

	return results
}

// Process validates, normalizes and conditionally inserts one record
func (l *Loader) Process(ctx context.Context, index int, item any) Result {
	res := Result{Index: index, ID: "unknown"}

	article, err := models.FromValue(item)
	if err != nil {
		return res.fail(err)
	}
	res.ID = article.Label()

	if err := l.validator.Validate(article); err != nil {
		res.Status = StatusMissingFields
		res.Err = err
		return res
	}
	res.Headline = article.Headline()

	if _, ok := article[models.FieldLikes]; !ok {
		article[models.FieldLikes] = int64(0)
	}

	if raw, ok := article[models.FieldTime]; ok && models.Truthy(raw) {
		value, isString := raw.(string)
		if !isString {
			return res.fail(fmt.Errorf("%w: %v", ErrInvalidTime, raw))
		}
		t, err := ParseTime(value)
		if err != nil {
			return res.fail(err)
		}
		article[models.FieldTime] = t
	}

	id, ok := article.ID()
	if !ok {
		return res.fail(ErrMissingID)
	}

	if l.isSeen(ctx, id) {
		res.Status = StatusDuplicate
		return res
	}

	exists, err := l.store.Exists(ctx, id)
	if err != nil {
		return res.fail(fmt.Errorf("existence check failed: %w", err))
	}
	if exists {
		l.markSeen(ctx, id)
		res.Status = StatusDuplicate
		return res
	}

	if err := l.store.Create(ctx, id, article); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.markSeen(ctx, id)
			res.Status = StatusDuplicate
			return res
		}
		return res.fail(fmt.Errorf("create failed: %w", err))
	}

	l.markSeen(ctx, id)
	res.Status = StatusAdded
	return res
}

func (r Result) fail(err error) Result {
	r.Status = StatusFailed
	r.Err = err
	return r
}

func (l *Loader) isSeen(ctx context.Context, id string) bool {
	if l.seen == nil {
		return false
	}
	seen, err := l.seen.IsProcessed(ctx, id)
	if err != nil {
		l.log.Warn().Err(err).Str("id", id).Msg("Seen-id cache lookup failed, checking store")
		return false
	}
	return seen
}

func (l *Loader) markSeen(ctx context.Context, id string) {
	if l.seen == nil {
		return
	}
	if err := l.seen.MarkProcessed(ctx, id, l.seenTTL); err != nil {
		l.log.Warn().Err(err).Str("id", id).Msg("Failed to mark id in seen-id cache")
	}
}
