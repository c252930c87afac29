package main

import (
	"fmt"

	"github.com/newsfold/gazeta"
)

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if err := deps.Cache.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Download cache cleared")

	return nil
}
