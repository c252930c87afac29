package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// strippedTags never contribute article text and are removed with their
// subtrees before body scoring.
const strippedTags = "script, style, noscript, iframe, form, button, select, option, textarea, svg, canvas, template"

// boilerplateRE flags id, class and name values marking the chrome
// around an article: navigation, share bars, comment threads, ads.
// Risky short tokens are anchored so that words like "header" or
// "gradient" do not match.
var boilerplateRE = regexp.MustCompile(`(?i)` +
	`combx|retweet|shoutbox|sponsor|breadcrumb|pagination|popup|comment|` +
	`socialnetworking|socialtools|advert|newsletter|subscribe|signup|` +
	`masthead|menucontainer|navbar|navigation|konafilter|vcard|` +
	`storytopbar|inline-share-tools|legende|ajoutvideo|js_replies|` +
	`mediaarticlerelated|articleheadings|communitypromo|pagetools|` +
	`post-attributes|welcome-form|runaroundleft|` +
	`cnn_strycaptiontxt|cnn_html_slideshow|cnn_strylftcntnt|cnn_stryspcvbx|` +
	`^side$|^print$|^fn$|^inset$|^links$|` +
	`(^|[-_ ])(ad|ads|share|social|tools|tags|foot|footer|nav|byline|timestamp)([-_ ]|$)`)

// wrapperTags are structural containers eligible for single-child
// collapsing.
var wrapperTags = map[string]bool{
	"div":     true,
	"section": true,
	"article": true,
	"main":    true,
	"center":  true,
}

// keepWhenEmpty lists tags kept even without text content.
var keepWhenEmpty = map[string]bool{
	"img":     true,
	"br":      true,
	"hr":      true,
	"video":   true,
	"audio":   true,
	"source":  true,
	"picture": true,
	"td":      true,
	"th":      true,
	"html":    true,
	"head":    true,
	"body":    true,
}

// Clean strips the parts of a document that never belong to article
// text: scripts, styles, comments, form chrome and elements whose id or
// class marks them as boilerplate. Empty leftovers are dropped and
// single-child container chains collapsed. The document is modified in
// place, so callers keep a separate parse for metadata extraction.
func Clean(doc *goquery.Document) {
	doc.Find(strippedTags).Remove()
	removeComments(doc)
	removeBoilerplate(doc)
	dropEmptyNodes(doc)
	collapseWrappers(doc)
}

func removeComments(doc *goquery.Document) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.CommentNode {
				n.RemoveChild(c)
			} else {
				walk(c)
			}
			c = next
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}
}

func removeBoilerplate(doc *goquery.Document) {
	var doomed []*html.Node
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		switch node.Data {
		case "html", "head", "body":
			return
		}
		if boilerplateRE.MatchString(sel.AttrOr("class", "")) ||
			boilerplateRE.MatchString(sel.AttrOr("id", "")) ||
			boilerplateRE.MatchString(sel.AttrOr("name", "")) {
			doomed = append(doomed, node)
		}
	})
	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// dropEmptyNodes removes elements left without text or media after the
// earlier passes. Children are pruned first, so a wrapper holding only
// removed chrome goes too.
func dropEmptyNodes(doc *goquery.Document) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			walk(c)
			if c.Type == html.ElementNode && isEmptyNode(c) {
				n.RemoveChild(c)
			}
			c = next
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}
}

func isEmptyNode(n *html.Node) bool {
	if keepWhenEmpty[n.Data] {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		case html.ElementNode:
			return false
		}
	}
	return true
}

// collapseWrappers splices out containers holding exactly one element
// and no text of their own, so score decay measures content depth
// rather than markup nesting.
func collapseWrappers(doc *goquery.Document) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			walk(c)
			if c.Type == html.ElementNode && wrapperTags[c.Data] {
				if only := soleElementChild(c); only != nil {
					c.RemoveChild(only)
					n.InsertBefore(only, c)
					n.RemoveChild(c)
				}
			}
			c = next
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}
}

// soleElementChild returns the single element child of n, or nil when n
// has other element children or non-whitespace text of its own.
func soleElementChild(n *html.Node) *html.Node {
	var only *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		case html.ElementNode:
			if only != nil {
				return nil
			}
			only = c
		}
	}
	return only
}
