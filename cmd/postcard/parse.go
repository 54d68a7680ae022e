package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fwojciec/postcard"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	if err := postcard.ValidatePageURL(c.SourceURL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postcard.ErrorMessage(err))
		return err
	}

	html, err := readInput(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if !c.Explain {
		record := deps.Extractor.Extract(html, c.SourceURL)
		return json.NewEncoder(deps.Stdout).Encode(record)
	}

	record, trace := deps.Engine.Explain(html, c.SourceURL)
	if err := json.NewEncoder(deps.Stdout).Encode(record); err != nil {
		return err
	}
	fields := make([]string, 0, len(trace))
	for field := range trace {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(deps.Stderr, "%s: %s\n", field, trace[field])
	}
	return nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", postcard.Errorf(postcard.EINVALID, "cannot read %s: %v", path, err)
	}
	return string(data), nil
}
