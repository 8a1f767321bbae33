package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Tags that never carry visible product text
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"meta":     true,
	"link":     true,
	"head":     true,
	"noscript": true,
}

// nodeText returns the visible text of a node and its descendants,
// with runs of whitespace collapsed to single spaces
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			b.WriteByte(' ')
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// hasElementChildren reports whether the node has any child tags.
// Nodes with element children are containers, not price leaves.
func hasElementChildren(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}

// getAttr returns the value of the named attribute, or ""
func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// firstHeading returns the page's first h1 node, or nil
func firstHeading(doc *goquery.Document) *html.Node {
	if nodes := doc.Find("h1").Nodes; len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}
