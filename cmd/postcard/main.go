package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/postcard"
	"github.com/fwojciec/postcard/goquery"
	pchttp "github.com/fwojciec/postcard/http"
	"github.com/fwojciec/postcard/readability"
	"github.com/fwojciec/postcard/rod"
	pcslog "github.com/fwojciec/postcard/slog"
	"github.com/fwojciec/postcard/sqlite"
	"github.com/fwojciec/postcard/trafilatura"
	pcyaml "github.com/fwojciec/postcard/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor the config file sets one.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. When set they replace the
	// implementations Run would otherwise build.
	Fetcher       postcard.Fetcher
	PresetService postcard.PresetService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("postcard"),
		kong.Description("Extract discussion records from forum pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'postcard --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := m.loadConfig(cli)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", postcard.ErrorMessage(err))
		return err
	}
	deps.Config = cfg

	var opts []goquery.Option
	if cfg.Profile.TitlePolicy == postcard.TitleScrape {
		opts = append(opts, goquery.WithTitler(newTitler(cfg.Titler)))
	}
	deps.Engine = goquery.NewExtractor(cfg.Profile, opts...)
	deps.Extractor = pcslog.NewLoggingExtractor(deps.Engine, deps.Logger)

	if cmd == "serve" || cmd == "preset" {
		presets, err := m.presetService(cfg, stderr)
		if err != nil {
			return err
		}
		defer m.Close()
		deps.Presets = pcslog.NewLoggingPresetService(presets, deps.Logger)
	}

	if cmd == "extract" || cmd == "serve" {
		fetcher, err := m.fetcher(cfg, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		deps.Scraper = &postcard.Scraper{
			Fetcher:   pcslog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractor: deps.Extractor,
			Timeout:   cfg.Timeout,
		}
		if cmd == "extract" {
			if cli.Extract.RPS > 0 {
				deps.Scraper.Limiter = pchttp.NewDomainLimiter(cli.Extract.RPS)
			}
			if cli.Extract.Retries > 0 {
				delays := postcard.DefaultRetryDelays()
				for len(delays) < cli.Extract.Retries {
					delays = append(delays, delays[len(delays)-1]*2)
				}
				deps.Scraper.RetryDelays = delays[:cli.Extract.Retries]
			}
		}
	}

	return kongCtx.Run(deps)
}

// loadConfig reads the optional config file and applies flag overrides.
func (m *Main) loadConfig(cli *CLI) (*pcyaml.Config, error) {
	cfg := pcyaml.DefaultConfig()
	if cli.Config != "" {
		var err error
		if cfg, err = pcyaml.Load(cli.Config); err != nil {
			return nil, err
		}
	}

	if cli.Origin != "" {
		cfg.Profile.Origin = cli.Origin
	}
	if cli.DB != "" {
		cfg.DB = cli.DB
	}
	if cfg.DB == "" {
		cfg.DB = m.DBPath
	}
	if cli.Timeout > 0 {
		cfg.Timeout = cli.Timeout
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = postcard.DefaultScrapeTimeout
	}
	if cli.Render {
		cfg.Render = true
	}
	if cli.Serve.Addr != "" {
		cfg.Addr = cli.Serve.Addr
	}

	if err := pcyaml.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (m *Main) presetService(cfg *pcyaml.Config, stderr io.Writer) (postcard.PresetService, error) {
	if m.PresetService != nil {
		return m.PresetService, nil
	}

	m.DB = sqlite.NewDB(cfg.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set POSTCARD_DB to use a different database path\n")
		return nil, fmt.Errorf("failed to open database at %q: %w", cfg.DB, err)
	}
	return sqlite.NewPresetService(m.DB), nil
}

func (m *Main) fetcher(cfg *pcyaml.Config, stderr io.Writer) (postcard.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	if cfg.Render {
		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cfg.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return fetcher, nil
	}
	return pchttp.NewFetcher(pchttp.WithTimeout(cfg.Timeout)), nil
}

func newTitler(name string) postcard.Titler {
	if name == "readability" {
		return readability.NewTitler()
	}
	return trafilatura.NewTitler()
}

func defaultDBPath() string {
	if path := os.Getenv("POSTCARD_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "postcard.db"
	}
	dir := filepath.Join(home, ".postcard")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "postcard.db")
}
