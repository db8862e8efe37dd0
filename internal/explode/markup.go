package explode

import (
	"strings"

	"golang.org/x/net/html"
)

// blockElements separate their text from neighbours
var blockElements = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "td": true, "blockquote": true,
}

// VisibleText extracts the visible text of an HTML fragment, decoding
// entities and skipping scripts and styles. Text without markup is returned
// unchanged.
func VisibleText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
			if blockElements[n.Data] {
				buf.WriteString(" ")
				defer buf.WriteString(" ")
			}
		}

		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.Join(strings.Fields(buf.String()), " ")
}
