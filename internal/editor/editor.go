// Package editor implements the interactive console editor for a single
// stored article.
package editor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bilgisen/newsseed/internal/logger"
	"github.com/bilgisen/newsseed/internal/store"
)

// DoneKeyword ends the field prompt loop, compared case-insensitively
const DoneKeyword = "done"

// ErrInputClosed is returned when the console input ends before "done"
var ErrInputClosed = errors.New("input closed before edit was finished")

// Outcome is how an edit session ended
type Outcome int

const (
	OutcomeUpdated Outcome = iota
	OutcomeNotFound
	OutcomeNoChanges
	OutcomeFailed
)

// Snapshotter keeps a copy of a document before it is changed
type Snapshotter interface {
	Snapshot(ctx context.Context, id string, doc map[string]any) (string, error)
}

// Editor prompts on out, reads answers from in and applies them to store
type Editor struct {
	store   store.Store
	in      *bufio.Scanner
	out     io.Writer
	archive Snapshotter
	log     *zerolog.Logger
}

// Option configures an Editor
type Option func(*Editor)

// WithSnapshotter stores the current document before every update
func WithSnapshotter(s Snapshotter) Option {
	return func(e *Editor) { e.archive = s }
}

// WithLogger replaces the global logger
func WithLogger(log *zerolog.Logger) Option {
	return func(e *Editor) { e.log = log }
}

func New(s store.Store, in io.Reader, out io.Writer, opts ...Option) *Editor {
	e := &Editor{
		store: s,
		in:    bufio.NewScanner(in),
		out:   out,
		log:   logger.Get(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run performs one edit session. Errors are printed to the console as well
// as returned.
func (e *Editor) Run(ctx context.Context) (Outcome, error) {
	outcome, err := e.run(ctx)
	if err != nil {
		fmt.Fprintf(e.out, "Error editing document: %v\n", err)
	}
	return outcome, err
}

func (e *Editor) run(ctx context.Context) (Outcome, error) {
	// ids and field names are used exactly as typed
	id, err := e.prompt("Enter the ID of the news to edit: ")
	if err != nil {
		return OutcomeFailed, err
	}
	if id == "" {
		fmt.Fprintf(e.out, "Document with ID '%s' does not exist.\n", id)
		return OutcomeNotFound, nil
	}

	doc, err := e.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(e.out, "Document with ID '%s' does not exist.\n", id)
		return OutcomeNotFound, nil
	}
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to fetch document %s: %w", id, err)
	}

	fmt.Fprintln(e.out, "Existing Data:")
	for _, line := range formatDoc(doc) {
		fmt.Fprintln(e.out, "  "+line)
	}

	updates, err := e.collectUpdates()
	if err != nil {
		return OutcomeFailed, err
	}
	if len(updates) == 0 {
		fmt.Fprintf(e.out, "No updates for document with ID '%s'.\n", id)
		return OutcomeNoChanges, nil
	}

	if e.archive != nil {
		if location, err := e.archive.Snapshot(ctx, id, doc); err != nil {
			e.log.Warn().Err(err).Str("id", id).Msg("Failed to snapshot document before update")
		} else {
			e.log.Debug().Str("id", id).Str("location", location).Msg("Saved document snapshot")
		}
	}

	if err := e.store.Update(ctx, id, updates); err != nil {
		return OutcomeFailed, fmt.Errorf("failed to update document %s: %w", id, err)
	}

	e.log.Info().
		Str("id", id).
		Strs("fields", sortedKeys(updates)).
		Msg("Updated document")
	fmt.Fprintf(e.out, "Updated document with ID '%s'.\n", id)
	return OutcomeUpdated, nil
}

// collectUpdates stages field/value pairs until the done keyword. A field
// entered twice keeps its last value.
func (e *Editor) collectUpdates() (map[string]any, error) {
	updates := make(map[string]any)
	for {
		field, err := e.prompt("Enter the field to update (or 'done' to finish): ")
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(field, DoneKeyword) {
			return updates, nil
		}
		if field == "" {
			continue
		}

		value, err := e.prompt(fmt.Sprintf("Enter the new value for '%s': ", field))
		if err != nil {
			return nil, err
		}
		updates[field] = value
	}
}

func (e *Editor) prompt(text string) (string, error) {
	fmt.Fprint(e.out, text)
	if !e.in.Scan() {
		if err := e.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSuffix(e.in.Text(), "\r"), nil
}

func formatDoc(doc map[string]any) []string {
	lines := make([]string, 0, len(doc))
	for _, k := range sortedKeys(doc) {
		lines = append(lines, fmt.Sprintf("%s: %v", k, doc[k]))
	}
	return lines
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
