// Package gazeta provides heuristic extraction of news articles from
// web pages. It downloads pages, pulls out the headline, byline, publish
// date, media and main body text without site-specific rules, and runs a
// small deterministic NLP pass for keywords and a summary. Whole news
// sites can be crawled through sources, which discover category pages and
// feeds and build article lists from them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, whatlanggo/).
package gazeta

// Version is the library version reported in the default User-Agent.
const Version = "0.9.0"
