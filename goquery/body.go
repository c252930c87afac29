package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Body scoring weights. Text inside content-bearing tags counts fully,
// text sitting directly in chrome tags counts against the subtree, and
// everything else contributes a fraction.
const (
	weightContent = 1.0
	weightChrome  = -2.5
	weightNeutral = 0.35

	// minBodyScore is the floor below which no candidate is accepted as
	// article text.
	minBodyScore = 10.0

	// maxLinkedRatio is the fraction of a block's words allowed inside
	// anchors before the block is dropped as a link list.
	maxLinkedRatio = 0.65
)

var contentTags = map[string]bool{
	"p":          true,
	"pre":        true,
	"blockquote": true,
	"td":         true,
}

var chromeTags = map[string]bool{
	"nav":    true,
	"header": true,
	"footer": true,
	"aside":  true,
	"form":   true,
}

// blockTags delimit assembly units: an element from this set with no
// nested block is one paragraph of output.
var blockTags = map[string]bool{
	"p": true, "pre": true, "blockquote": true, "td": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"figcaption": true, "caption": true, "dt": true, "dd": true,
}

// quoteContextTags keep their blocks during assembly even under the
// word floor, since quotes and captions are legitimately short.
var quoteContextTags = map[string]bool{
	"blockquote": true,
	"figcaption": true,
	"caption":    true,
}

// bodyCandidate is the subtree picked as the article body.
type bodyCandidate struct {
	node *html.Node
	text string
}

// extractBody scores every element by the words it directly holds,
// propagates scores up the tree with per-level decay, and assembles text
// from the highest-scoring subtree. A document without enough connected
// prose yields an empty candidate.
func (e *Extractor) extractBody(doc *goquery.Document) bodyCandidate {
	var root *html.Node
	if sel := doc.Find("body").First(); len(sel.Nodes) > 0 {
		root = sel.Nodes[0]
	} else if len(doc.Nodes) > 0 {
		root = doc.Nodes[0]
	}
	if root == nil {
		return bodyCandidate{}
	}

	scores := make(map[*html.Node]float64)
	scoreNode(root, false, e.cfg.DecayFactor, scores)

	// Document-order scan with a strict greater-than keeps the first of
	// tied candidates, so extraction stays deterministic.
	var best *html.Node
	bestScore := 0.0
	var pick func(n *html.Node)
	pick = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if s, ok := scores[n]; ok && (best == nil || s > bestScore) {
				best, bestScore = n, s
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			pick(c)
		}
	}
	pick(root)

	if best == nil || bestScore < minBodyScore {
		return bodyCandidate{}
	}
	text := assembleText(best, e.cfg.MinBlockWords)
	if text == "" {
		return bodyCandidate{}
	}
	return bodyCandidate{node: best, text: text}
}

// scoreNode walks the subtree once. Each element's direct text, anchors
// excluded, yields a local score of word count times tag weight, credited
// up the ancestor chain attenuated by decay per level. Propagation stops
// at body so page-level totals do not drown out the real container.
func scoreNode(n *html.Node, inAnchor bool, decay float64, scores map[*html.Node]float64) {
	if n.Type == html.ElementNode {
		if n.Data == "a" {
			inAnchor = true
		}
		if !inAnchor {
			words := 0
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					words += len(strings.Fields(c.Data))
				}
			}
			if words > 0 {
				local := float64(words) * tagWeight(n.Data)
				mult := 1.0
				for anc := n; anc != nil && anc.Type == html.ElementNode; anc = anc.Parent {
					scores[anc] += local * mult
					if anc.Data == "body" {
						break
					}
					mult *= decay
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		scoreNode(c, inAnchor, decay, scores)
	}
}

func tagWeight(tag string) float64 {
	switch {
	case contentTags[tag]:
		return weightContent
	case chromeTags[tag]:
		return weightChrome
	default:
		return weightNeutral
	}
}

// assembleText flattens the chosen subtree into newline-joined blocks in
// document order. A block is an element without nested blocks; blocks
// under the word floor are dropped unless they sit in quote or caption
// context, and link-heavy blocks are dropped as link lists.
func assembleText(root *html.Node, minBlockWords int) string {
	var blocks []string
	var walk func(n *html.Node, quoted bool)
	walk = func(n *html.Node, quoted bool) {
		if n.Type != html.ElementNode {
			return
		}
		quoted = quoted || quoteContextTags[n.Data]
		atomic := n == root || blockTags[n.Data] || wrapperTags[n.Data]
		if atomic && !hasBlockDescendant(n) {
			txt := collapseSpace(nodeText(n))
			if txt == "" {
				return
			}
			if len(strings.Fields(txt)) < minBlockWords && !quoted {
				return
			}
			if linkHeavy(n) {
				return
			}
			blocks = append(blocks, txt)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, quoted)
		}
	}
	walk(root, quoteContextTags[root.Data])
	return strings.Join(blocks, "\n")
}

func hasBlockDescendant(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if blockTags[c.Data] || wrapperTags[c.Data] || hasBlockDescendant(c) {
			return true
		}
	}
	return false
}

// nodeText concatenates all text under n, inline markup included.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// linkHeavy reports whether most of a block's words sit inside anchors.
func linkHeavy(n *html.Node) bool {
	total := len(strings.Fields(nodeText(n)))
	if total == 0 {
		return true
	}
	linked := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "a" {
				linked += len(strings.Fields(nodeText(c)))
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return float64(linked) > float64(total)*maxLinkedRatio
}

// renderNode serializes a subtree back to HTML.
func renderNode(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}
