package main

import (
	"fmt"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/crawl"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	// Seen stays nil here: an exploratory build must not consume the
	// crawl memo, or the next crawl would skip everything it surfaced.
	source := &crawl.Source{
		URL:         c.URL,
		Client:      deps.Client,
		Links:       deps.Links,
		FeedReader:  deps.Feeds,
		MaxArticles: c.MaxArticles,
	}

	if err := source.Build(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
		return err
	}

	if err := deps.Sources.SaveSource(deps.Ctx, sourceRecord(source)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built %s\n", source.URL)
	fmt.Fprintf(deps.Stdout, "  brand:       %s\n", source.Brand)
	if source.Description != "" {
		fmt.Fprintf(deps.Stdout, "  description: %s\n", source.Description)
	}
	fmt.Fprintf(deps.Stdout, "  categories:  %d\n", len(source.Categories))
	for _, category := range source.Categories {
		fmt.Fprintf(deps.Stdout, "    %s\n", category)
	}
	fmt.Fprintf(deps.Stdout, "  feeds:       %d\n", len(source.Feeds))
	for _, feed := range source.Feeds {
		fmt.Fprintf(deps.Stdout, "    %s\n", feed)
	}
	fmt.Fprintf(deps.Stdout, "  articles:    %d\n", source.Size())

	return nil
}

// sourceRecord converts a built source into its stored form.
func sourceRecord(source *crawl.Source) *gazeta.SourceRecord {
	return &gazeta.SourceRecord{
		URL:         source.URL,
		Domain:      source.Domain,
		Brand:       source.Brand,
		Description: source.Description,
		Categories:  source.Categories,
		Feeds:       source.Feeds,
	}
}
