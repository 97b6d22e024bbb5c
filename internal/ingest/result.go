package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingID is returned for records without a usable string id
	ErrMissingID = errors.New("missing or invalid id")

	// ErrInvalidTime is returned when Time does not match TimeLayout
	ErrInvalidTime = errors.New("invalid time format")
)

// Status is the outcome of ingesting one record
type Status int

const (
	StatusAdded Status = iota
	StatusDuplicate
	StatusMissingFields
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDuplicate:
		return "duplicate"
	case StatusMissingFields:
		return "missing_fields"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result describes what happened to one input record
type Result struct {
	Index    int
	ID       string
	Headline string
	Status   Status
	Err      error
}

// Line renders the console status line for the record
func (r Result) Line() string {
	switch r.Status {
	case StatusAdded:
		return "Added: " + r.Headline
	case StatusDuplicate:
		return "Skipped (Duplicate): " + r.Headline
	case StatusMissingFields:
		return "Skipped (Missing Critical Fields): " + r.ID
	default:
		return fmt.Sprintf("Error processing article %s: %v", r.ID, r.Err)
	}
}

// Summary counts results by status
type Summary struct {
	Added         int
	Duplicate     int
	MissingFields int
	Failed        int
}

func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusAdded:
			s.Added++
		case StatusDuplicate:
			s.Duplicate++
		case StatusMissingFields:
			s.MissingFields++
		default:
			s.Failed++
		}
	}
	return s
}
