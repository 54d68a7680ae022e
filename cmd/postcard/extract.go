package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/postcard"
	"golang.org/x/sync/errgroup"
)

type extractResult struct {
	record *postcard.DiscussionRecord
	err    error
}

// Run executes the extract command. Records are printed in argument order;
// failures are reported per URL and fail the command once every URL is done.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]extractResult, len(c.URLs))

	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, url := range c.URLs {
		g.Go(func() error {
			record, err := deps.Scraper.Scrape(gctx, url)
			results[i] = extractResult{record: record, err: err}
			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(deps.Stdout)
	var failed int
	for i, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", c.URLs[i], postcard.ErrorMessage(r.err))
			continue
		}
		if err := enc.Encode(r.record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	if failed > 0 {
		return postcard.Errorf(postcard.EUPSTREAM, "%d of %d urls failed", failed, len(c.URLs))
	}
	return nil
}
