package render

import (
	"strings"
	"testing"
)

func TestMarkdownRendersContent(t *testing.T) {
	out, err := Markdown("# Title\n\nSome *emphasis* here.", DefaultOptions().WithStyle("notty"))
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("output missing heading text: %q", out)
	}
	if !strings.Contains(out, "emphasis") {
		t.Errorf("output missing body text: %q", out)
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	long := strings.Repeat("word ", 40)
	out, err := MarkdownWithWidth(long, 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth: %v", err)
	}
	for _, line := range strings.Split(out, "\n") {
		// Allow slack for ANSI sequences; the plain word content must wrap
		plain := len(stripANSI(line))
		if plain > 45 {
			t.Errorf("line exceeds width: %d chars", plain)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestPoolReusesConfigurations(t *testing.T) {
	ClearCache()

	opts := DefaultOptions().WithStyle("notty")
	if _, err := Markdown("one", opts); err != nil {
		t.Fatal(err)
	}
	if _, err := Markdown("two", opts); err != nil {
		t.Fatal(err)
	}
	if got := CacheSize(); got != 1 {
		t.Errorf("CacheSize = %d, want 1", got)
	}

	if _, err := Markdown("three", opts.WithWidth(40)); err != nil {
		t.Fatal(err)
	}
	if got := CacheSize(); got != 2 {
		t.Errorf("CacheSize = %d, want 2", got)
	}
}

func TestConcurrentRendering(t *testing.T) {
	opts := DefaultOptions().WithStyle("notty")
	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := Markdown("## concurrent\n\ntext", opts)
			done <- err
		}()
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent render: %v", err)
		}
	}
}
