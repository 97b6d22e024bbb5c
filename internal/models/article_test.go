package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validArticle() Article {
	return Article{
		FieldID:       "a1",
		FieldHeadline: "H",
		FieldImageURL: "u",
		FieldContent:  "c",
		FieldCategory: "news",
	}
}

func TestValidatorAcceptsCompleteArticle(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(validArticle()); err != nil {
		t.Fatalf("Expected valid article, got %v", err)
	}
}

func TestValidatorRejectsMissingOrEmptyFields(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		mutate func(Article)
		want   []string
	}{
		{"missing headline", func(a Article) { delete(a, FieldHeadline) }, []string{FieldHeadline}},
		{"empty imageUrl", func(a Article) { a[FieldImageURL] = "" }, []string{FieldImageURL}},
		{"null content", func(a Article) { a[FieldContent] = nil }, []string{FieldContent}},
		{"zero category", func(a Article) { a[FieldCategory] = int64(0) }, []string{FieldCategory}},
		{"empty array headline", func(a Article) { a[FieldHeadline] = []any{} }, []string{FieldHeadline}},
		{"empty object imageUrl", func(a Article) { a[FieldImageURL] = map[string]any{} }, []string{FieldImageURL}},
		{"several", func(a Article) {
			delete(a, FieldContent)
			a[FieldHeadline] = ""
		}, []string{FieldContent, FieldHeadline}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArticle()
			tt.mutate(a)

			err := v.Validate(a)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %v", err)
			}
			if diff := cmp.Diff(tt.want, verr.Fields); diff != "" {
				t.Errorf("Unexpected failing fields (-want +got):\n%s", diff)
			}
			if !strings.Contains(err.Error(), "missing critical fields") {
				t.Errorf("Unexpected error message %q", err.Error())
			}
		})
	}
}

func TestFromValue(t *testing.T) {
	if _, err := FromValue("not an object"); !errors.Is(err, ErrNotObject) {
		t.Errorf("Expected ErrNotObject, got %v", err)
	}

	a, err := FromValue(map[string]any{"id": "x"})
	if err != nil {
		t.Fatalf("FromValue returned error: %v", err)
	}
	if id, ok := a.ID(); !ok || id != "x" {
		t.Errorf("Expected id 'x', got %q (ok=%v)", id, ok)
	}
}

func TestLabel(t *testing.T) {
	if got := (Article{}).Label(); got != "unknown" {
		t.Errorf("Expected 'unknown', got %q", got)
	}
	if got := (Article{FieldID: nil}).Label(); got != "unknown" {
		t.Errorf("Expected 'unknown' for null id, got %q", got)
	}
	if got := (Article{FieldID: int64(7)}).Label(); got != "7" {
		t.Errorf("Expected '7', got %q", got)
	}
	if _, ok := (Article{FieldID: int64(7)}).ID(); ok {
		t.Error("Expected non-string id to be unusable")
	}
}

func TestNormalizeKeepsIntegerFloatDistinction(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(`{"likes": 5, "score": 5.5, "tags": [1, {"n": 2}]}`))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	got := Normalize(v)
	want := map[string]any{
		"likes": int64(5),
		"score": 5.5,
		"tags":  []any{int64(1), map[string]any{"n": int64(2)}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestTruthy(t *testing.T) {
	falsy := []any{nil, "", false, int64(0), float64(0), []any{}, map[string]any{}}
	for _, v := range falsy {
		if Truthy(v) {
			t.Errorf("Expected %#v to be falsy", v)
		}
	}

	truthy := []any{"x", true, int64(1), 0.5, []any{"a"}, map[string]any{"k": "v"}}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Errorf("Expected %#v to be truthy", v)
		}
	}
}
