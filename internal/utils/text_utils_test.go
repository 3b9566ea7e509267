package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	if got := tp.TruncateText("short", 100); got != "short" {
		t.Fatalf("text within limit was changed: %q", got)
	}
	if got := tp.TruncateText("anything", 0); got != "anything" {
		t.Fatalf("zero limit must disable truncation, got %q", got)
	}

	long := strings.Repeat("a", 50)
	got := tp.TruncateText(long, 10)
	if len(got) != 10 {
		t.Fatalf("truncated to %d bytes, want 10", len(got))
	}
}

func TestTruncateTextKeepsValidUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// "héllo" truncated mid-rune must drop the partial sequence.
	text := "héllo"
	got := tp.TruncateText(text, 2)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if got != "h" {
		t.Fatalf("got %q, want %q", got, "h")
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	if got := tp.SanitizeUTF8("clean text"); got != "clean text" {
		t.Fatalf("valid text was changed: %q", got)
	}

	dirty := "ab\xffcd"
	got := tp.SanitizeUTF8(dirty)
	if !utf8.ValidString(got) {
		t.Fatalf("sanitized text still invalid: %q", got)
	}
	if got != "abcd" {
		t.Fatalf("got %q, want %q", got, "abcd")
	}
}

func TestProcessText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	got := tp.ProcessText("ab\xffcd"+strings.Repeat("x", 50), 6)
	if !utf8.ValidString(got) {
		t.Fatalf("processed text invalid: %q", got)
	}
	if len(got) > 6 {
		t.Fatalf("processed text exceeds limit: %q", got)
	}
}
