package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAnchor_TightestMatchWins(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<div id="loose">Buy the Cool Gadget today with free shipping and returns</div>
		<span id="tight">Cool Gadget</span>
	</body></html>`)

	anchor := findAnchor(doc, "Cool Gadget")
	require.NotNil(t, anchor)
	assert.Equal(t, "tight", getAttr(anchor, "id"))
}

func TestFindAnchor_CaseInsensitive(t *testing.T) {
	// The sibling paragraph pads the text of the enclosing elements, so
	// only the heading scores as an exact match
	doc := mustDoc(t, `<body>
		<h2 id="title">COOL GADGET</h2>
		<p>unrelated padding text</p>
	</body>`)

	anchor := findAnchor(doc, "cool gadget")
	require.NotNil(t, anchor)
	assert.Equal(t, "title", getAttr(anchor, "id"))
	assert.Equal(t, "COOL GADGET", nodeText(anchor))
}

func TestFindAnchor_TieKeepsEarliest(t *testing.T) {
	doc := mustDoc(t, `<body>
		<span id="first">Cool Gadget</span>
		<span id="second">Cool Gadget</span>
	</body>`)

	anchor := findAnchor(doc, "Cool Gadget")
	require.NotNil(t, anchor)
	assert.Equal(t, "first", getAttr(anchor, "id"))
}

func TestFindAnchor_EmptyHintFallsBackToHeading(t *testing.T) {
	doc := mustDoc(t, `<body><h1>Page Title</h1><p>text</p></body>`)

	anchor := findAnchor(doc, "")
	require.NotNil(t, anchor)
	assert.Equal(t, "h1", anchor.Data)
}

func TestFindAnchor_EmptyHintNoHeadingUsesRoot(t *testing.T) {
	doc := mustDoc(t, `<body><p>no headings here</p></body>`)

	anchor := findAnchor(doc, "")
	require.NotNil(t, anchor)
	assert.Equal(t, doc.Nodes[0], anchor)
}

func TestFindAnchor_NoMatchFallsBackToHeading(t *testing.T) {
	doc := mustDoc(t, `<body><h1>Something Else</h1></body>`)

	anchor := findAnchor(doc, "Cool Gadget")
	require.NotNil(t, anchor)
	assert.Equal(t, "h1", anchor.Data)
}

func TestFindAnchor_NoMatchNoHeadingIsNil(t *testing.T) {
	doc := mustDoc(t, `<body><p>unrelated text</p></body>`)

	assert.Nil(t, findAnchor(doc, "Cool Gadget"))
}
