package models

import (
	"encoding/json"
	"fmt"
)

// Article field names as they appear in the source JSON and in the store
const (
	FieldID       = "id"
	FieldHeadline = "headline"
	FieldImageURL = "imageUrl"
	FieldContent  = "content"
	FieldCategory = "category"
	FieldLikes    = "likes"
	FieldTime     = "Time"
)

// CriticalFields must be present and non-empty before an article is written
var CriticalFields = []string{FieldHeadline, FieldImageURL, FieldContent, FieldCategory}

// Article is a news article record. It stays a plain map so that attributes
// outside the known schema are written through unchanged.
type Article map[string]any

// FromValue converts one decoded JSON element into an Article
func FromValue(v any) (Article, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, v)
	}
	return Article(m), nil
}

// ID returns the document key and whether it is a usable non-empty string
func (a Article) ID() (string, bool) {
	id, ok := a[FieldID].(string)
	return id, ok && id != ""
}

// Label identifies the article in log lines, falling back to "unknown"
func (a Article) Label() string {
	if v, ok := a[FieldID]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return "unknown"
}

// Headline returns the headline as printed in status lines
func (a Article) Headline() string {
	return fmt.Sprint(a[FieldHeadline])
}

// Normalize converts json.Number values (from a decoder using UseNumber)
// to int64 when integral and float64 otherwise, recursing into nested
// objects and arrays.
func Normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, val := range t {
			t[k] = Normalize(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = Normalize(val)
		}
		return t
	default:
		return v
	}
}

// Truthy reports whether a decoded JSON value counts as set: null, false,
// zero, "" and empty arrays or objects do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
