package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/postcard"
	"github.com/fwojciec/postcard/goquery"
	pcyaml "github.com/fwojciec/postcard/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *pcyaml.Config

	// Engine is the bare extraction engine; Extractor may wrap it.
	Engine    *goquery.Extractor
	Extractor postcard.Extractor
	Scraper   *postcard.Scraper
	Presets   postcard.PresetService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string        `help:"Path to a YAML config file" env:"POSTCARD_CONFIG" type:"path"`
	Origin  string        `help:"Forum host used to resolve root-relative links" env:"POSTCARD_ORIGIN"`
	DB      string        `help:"Preset database path" env:"POSTCARD_DB"`
	Timeout time.Duration `help:"Per-fetch timeout (default 15s)"`
	Render  bool          `help:"Fetch pages through a headless browser"`
	Verbose bool          `short:"v" help:"Enable debug logging"`

	Extract ExtractCmd `cmd:"" help:"Fetch discussion pages and print their records as JSON lines"`
	Parse   ParseCmd   `cmd:"" help:"Extract a discussion record from a local HTML file"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API"`
	Preset  PresetCmd  `cmd:"" help:"Manage label presets"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string `arg:"" name:"url" help:"Discussion page URLs"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per host"`
	Retries     int      `default:"0" help:"Retries per URL after an upstream failure"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File      string `arg:"" help:"HTML file, or - for stdin"`
	SourceURL string `name:"source-url" required:"" help:"URL the HTML was fetched from"`
	Explain   bool   `help:"Print which strategy resolved each field"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Bind address (default 127.0.0.1:8080)" env:"POSTCARD_ADDR"`
}

// PresetCmd groups the preset subcommands.
type PresetCmd struct {
	List   PresetListCmd   `cmd:"" help:"List saved presets"`
	Save   PresetSaveCmd   `cmd:"" help:"Create or update a preset"`
	Delete PresetDeleteCmd `cmd:"" help:"Delete a preset"`
}

// PresetListCmd is the "preset list" subcommand.
type PresetListCmd struct{}

// PresetSaveCmd is the "preset save" subcommand.
type PresetSaveCmd struct {
	Name   string `arg:"" help:"Preset name"`
	Topic  string `help:"Label for the topic field"`
	Author string `help:"Label for the author field"`
	When   string `help:"Label for the when field"`
}

// PresetDeleteCmd is the "preset delete" subcommand.
type PresetDeleteCmd struct {
	Name  string `arg:"" help:"Preset name"`
	Force bool   `help:"Confirm deletion"`
}
