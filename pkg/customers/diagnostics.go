package customers

import (
	"bytes"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const maxDetailBytes = 512

// describeBody summarises an error response for StatusError.Detail.
// HTML error pages are reduced to their title and headline.
func describeBody(header http.Header, body []byte) string {
	if isHTML(header, body) {
		if summary := summarizeHTML(body); summary != "" {
			return summary
		}
	}
	return snippet(body)
}

func isHTML(header http.Header, body []byte) bool {
	if strings.Contains(strings.ToLower(header.Get("Content-Type")), "text/html") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(string(prefix(body, 64))))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

func summarizeHTML(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var parts []string
	add := func(s string) {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			return
		}
		for _, p := range parts {
			if p == s {
				return
			}
		}
		parts = append(parts, s)
	}

	add(doc.Find("title").First().Text())
	add(doc.Find("h1").First().Text())
	doc.Find("body div, body p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := sel.Text(); strings.Contains(text, "status=") {
			add(text)
			return false
		}
		return true
	})

	return snippet([]byte(strings.Join(parts, " - ")))
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(prefix(body, maxDetailBytes)))
	if len(body) > maxDetailBytes {
		s += "..."
	}
	return s
}

// prefix cuts b to at most n bytes without splitting a UTF-8 sequence.
func prefix(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return b[:n]
}
