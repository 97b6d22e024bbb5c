package ingest

import (
	"fmt"
	"regexp"
	"time"
)

// TimeLayout is the accepted Time format: seconds followed by a fraction of
// one to six digits and a literal Z.
const TimeLayout = "2006-01-02T15:04:05.999999Z"

var timePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{1,6}Z$`)

// ParseTime converts an article Time value to a UTC timestamp. time.Parse
// alone would also accept a missing fraction, hence the pattern check.
func ParseTime(value string) (time.Time, error) {
	if !timePattern.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTime, value)
	}
	t, err := time.ParseInLocation(TimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTime, value)
	}
	return t, nil
}
