package utils

import (
	"bytes"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var skippedTags = []string{"script", "style", "head", "noscript"}

// StripHTMLTags returns the visible text of an HTML document with runs of
// whitespace collapsed.
func StripHTMLTags(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return stripHTMLTagsSimple(content)
	}

	var result strings.Builder
	extractHTMLText(doc, &result)

	return strings.Join(strings.Fields(result.String()), " ")
}

func extractHTMLText(n *html.Node, result *strings.Builder) {
	if n.Type == html.ElementNode && slices.Contains(skippedTags, n.Data) {
		return
	}
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
		result.WriteString(" ")
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractHTMLText(c, result)
	}
}

func stripHTMLTagsSimple(content []byte) string {
	var result strings.Builder
	inTag := false

	for _, char := range content {
		if char == '<' {
			inTag = true
		} else if char == '>' {
			inTag = false
		} else if !inTag {
			result.WriteByte(char)
		}
	}

	return strings.Join(strings.Fields(result.String()), " ")
}

// ExtractTitle returns the text of the <title> element, or "".
func ExtractTitle(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(findTitle(doc)), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var result strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				result.WriteString(c.Data)
			}
		}
		return result.String()
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

// LooksLikeHTML reports whether a response body is an HTML page rather than
// JSON or plain text.
func LooksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(string(body[:min(len(body), 64)])))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// SummarizeHTML condenses an error page to a single line: its title when it
// has one, its text otherwise, cut to maxLen runes.
func SummarizeHTML(content []byte, maxLen int) string {
	text := ExtractTitle(content)
	if text == "" {
		text = StripHTMLTags(content)
	}
	return Truncate(text, maxLen)
}

// Truncate cuts s to maxLen runes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
