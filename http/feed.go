package http

import (
	"context"
	"strings"

	"github.com/beevik/etree"
	"github.com/newsfold/gazeta"
)

// Ensure FeedReader implements gazeta.FeedReader at compile time.
var _ gazeta.FeedReader = (*FeedReader)(nil)

// FeedReader fetches and parses syndication feeds. RSS 2.0, RSS 1.0
// (RDF) and Atom documents are recognized; anything else is reported as
// ENOTFOUND so callers can probe candidate feed URLs cheaply.
type FeedReader struct {
	fetcher gazeta.Fetcher
}

// NewFeedReader creates a FeedReader on top of fetcher.
func NewFeedReader(fetcher gazeta.Fetcher) *FeedReader {
	return &FeedReader{fetcher: fetcher}
}

// Items returns the feed's entries in feed order. Entries without a
// link are skipped.
func (r *FeedReader) Items(ctx context.Context, feedURL string) ([]gazeta.FeedItem, error) {
	resp, err := r.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	if !resp.Success() {
		return nil, gazeta.Errorf(gazeta.ENOTFOUND, "feed %s: HTTP %d", feedURL, resp.StatusCode)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(resp.Body); err != nil {
		return nil, gazeta.Errorf(gazeta.ENOTFOUND, "feed %s: not parseable as XML", feedURL)
	}
	root := doc.Root()
	if root == nil {
		return nil, gazeta.Errorf(gazeta.ENOTFOUND, "feed %s: empty document", feedURL)
	}

	switch root.Tag {
	case "rss":
		return rssItems(root), nil
	case "RDF":
		return rdfItems(root), nil
	case "feed":
		return atomItems(root), nil
	}
	return nil, gazeta.Errorf(gazeta.ENOTFOUND, "feed %s: unrecognized root element %q", feedURL, root.Tag)
}

func rssItems(root *etree.Element) []gazeta.FeedItem {
	var items []gazeta.FeedItem
	for _, channel := range root.SelectElements("channel") {
		for _, item := range channel.SelectElements("item") {
			items = appendItem(items, elementText(item, "title"), elementText(item, "link"))
		}
	}
	return items
}

// rdfItems handles RSS 1.0, where items sit directly under the RDF root.
func rdfItems(root *etree.Element) []gazeta.FeedItem {
	var items []gazeta.FeedItem
	for _, item := range root.SelectElements("item") {
		items = appendItem(items, elementText(item, "title"), elementText(item, "link"))
	}
	return items
}

func atomItems(root *etree.Element) []gazeta.FeedItem {
	var items []gazeta.FeedItem
	for _, entry := range root.SelectElements("entry") {
		url := ""
		for _, link := range entry.SelectElements("link") {
			href := strings.TrimSpace(link.SelectAttrValue("href", ""))
			if href == "" {
				continue
			}
			// rel=alternate (the default) is the entry's page; other
			// rels only stand in when nothing better shows up.
			if link.SelectAttrValue("rel", "alternate") == "alternate" {
				url = href
				break
			}
			if url == "" {
				url = href
			}
		}
		items = appendItem(items, elementText(entry, "title"), url)
	}
	return items
}

func elementText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func appendItem(items []gazeta.FeedItem, title, url string) []gazeta.FeedItem {
	if url == "" {
		return items
	}
	return append(items, gazeta.FeedItem{Title: title, URL: url})
}
