package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var htmlTag = regexp.MustCompile(`(?i)<\s*/?\s*(?:html|body|p|div|br|li|ul|ol|table|tr|td|th|span|strong|em|b|i|h[1-6])\b[^>]*>`)

// clean prepares a raw answer for the strategies: code fence lines are
// removed and HTML answers are reduced to their text, one block per line.
func clean(raw string) string {
	s := stripFences(raw)
	if htmlTag.MatchString(s) {
		if text, err := htmlText(s); err == nil {
			s = text
		}
	}
	return strings.TrimSpace(s)
}

// stripFences drops markdown fence lines such as "```json" and "```".
func stripFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	lines := splitLines(s)
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func htmlText(s string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	writeText(doc, &sb)
	return sb.String(), nil
}

func writeText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "template", "svg":
			return
		case "br":
			sb.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, sb)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "tr", "ul", "ol", "table", "h1", "h2", "h3", "h4", "h5", "h6":
			sb.WriteString("\n")
		case "td", "th":
			sb.WriteString(" ")
		}
	}
}

// splitLines splits on \n, \r\n and \r.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
