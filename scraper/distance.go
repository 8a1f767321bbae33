package scraper

import "golang.org/x/net/html"

// Returned when two nodes share no common ancestor, which should not
// happen within one parsed tree but is guarded rather than failed on
const disconnectedDistance = 10000

// domDistance returns the number of edges on the shortest tree path
// between two nodes. It records the depth of every ancestor of a, then
// walks b's ancestor chain until it hits one of them; the answer is the
// sum of both depths at the meeting point. Symmetric in its arguments.
func domDistance(a, b *html.Node) int {
	depths := make(map[*html.Node]int)
	depth := 0
	for n := a; n != nil; n = n.Parent {
		depths[n] = depth
		depth++
	}

	depth = 0
	for n := b; n != nil; n = n.Parent {
		if d, ok := depths[n]; ok {
			return d + depth
		}
		depth++
	}
	return disconnectedDistance
}
