package utils

import (
	"strings"
	"testing"
)

const djangoErrorPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <title>ParserError
          at /api/upload/</title>
  <style>body { color: red; }</style>
  <script>var x = 1;</script>
</head>
<body>
  <h1>ParserError at /api/upload/</h1>
  <p>Error tokenizing data.</p>
</body>
</html>`

func TestStripHTMLTags(t *testing.T) {
	got := StripHTMLTags([]byte(djangoErrorPage))
	if got != "ParserError at /api/upload/ Error tokenizing data." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTitle(t *testing.T) {
	if got := ExtractTitle([]byte(djangoErrorPage)); got != "ParserError at /api/upload/" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := ExtractTitle([]byte("<p>no title</p>")); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}

func TestSummarizeHTML_FallsBackToBody(t *testing.T) {
	got := SummarizeHTML([]byte("<html><body><h1>Bad Gateway</h1></body></html>"), 100)
	if got != "Bad Gateway" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		contentType string
		body        string
		want        bool
	}{
		{"text/html; charset=utf-8", "whatever", true},
		{"", "  <!DOCTYPE html><html></html>", true},
		{"", "<html><body>x</body></html>", true},
		{"application/json", `{"error":"x"}`, false},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := LooksLikeHTML(tt.contentType, []byte(tt.body)); got != tt.want {
			t.Errorf("LooksLikeHTML(%q, %q) = %v, want %v", tt.contentType, tt.body, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("unexpected: %q", got)
	}
	got := Truncate(strings.Repeat("a", 20), 10)
	if got != "aaaaaaa..." {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Truncate("héllo wörld", 4); got != "h..." {
		t.Fatalf("unexpected: %q", got)
	}
}
