package main

import (
	"fmt"

	pcgin "github.com/fwojciec/postcard/gin"
	"golang.org/x/time/rate"
)

// Run executes the serve command and blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	opts := []pcgin.Option{pcgin.WithLogger(deps.Logger)}
	if deps.Config.Addr != "" {
		opts = append(opts, pcgin.WithAddr(deps.Config.Addr))
	}
	if deps.Config.RateLimit > 0 {
		burst := deps.Config.RateBurst
		if burst <= 0 {
			burst = pcgin.DefaultRateBurst
		}
		opts = append(opts, pcgin.WithRateLimit(rate.Limit(deps.Config.RateLimit), burst))
	}

	server := pcgin.NewServer(deps.Scraper, deps.Presets, opts...)
	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())

	<-deps.Ctx.Done()
	return server.Close()
}
