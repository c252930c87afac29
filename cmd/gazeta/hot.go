package main

import (
	"fmt"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/trending"
)

// Run executes the hot command.
func (c *HotCmd) Run(deps *Dependencies) error {
	svc, err := trending.NewService(deps.Feeds, trending.WithGeo(c.Geo))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
		return err
	}

	terms, err := svc.Hot(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
		return err
	}

	if len(terms) == 0 {
		fmt.Fprintln(deps.Stdout, "No trending terms right now.")
		return nil
	}
	for i, term := range terms {
		fmt.Fprintf(deps.Stdout, "%2d. %s\n", i+1, term)
	}

	return nil
}
