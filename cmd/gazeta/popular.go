package main

import (
	"fmt"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/trending"
)

// Run executes the popular command.
func (c *PopularCmd) Run(deps *Dependencies) error {
	svc, err := trending.NewService(deps.Feeds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
		return err
	}

	for _, u := range svc.PopularURLs() {
		fmt.Fprintln(deps.Stdout, u)
	}

	return nil
}
