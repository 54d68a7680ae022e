package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/postcard"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before Chrome is relaunched.
// Chrome's resident memory grows with every page and never drops back, so a
// long-running server recycles it.
const DefaultMaxPages = 75

// generation is one Chrome process together with its page accounting.
type generation struct {
	browser  *rod.Browser
	pid      int
	shutdown func() error
	pages    int // pages opened over the process lifetime
	active   int // pages currently rendering
	retired  bool
}

// browser owns the live Chrome generation and relaunches it after maxPages
// renders. A retired generation is shut down when its last in-flight page is
// released. It is safe for concurrent use.
type browser struct {
	mu       sync.Mutex
	current  *generation
	maxPages int
	closed   bool
	launch   func() (*generation, error)
}

func newBrowser(maxPages int) (*browser, error) {
	b := &browser{maxPages: maxPages, launch: launchChrome}
	gen, err := b.launch()
	if err != nil {
		return nil, err
	}
	b.current = gen
	return b, nil
}

// acquire returns the live browser and counts one page against it,
// relaunching first when the budget is spent. A failed relaunch keeps the
// old process. The caller must call release once its page is closed.
func (b *browser) acquire() (*rod.Browser, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, postcard.Errorf(postcard.EINVALID, "fetcher is closed")
	}

	if b.maxPages > 0 && b.current.pages >= b.maxPages {
		if gen, err := b.launch(); err == nil {
			old := b.current
			old.retired = true
			b.current = gen
			if old.active == 0 {
				_ = old.shutdown()
			}
		}
	}

	gen := b.current
	gen.pages++
	gen.active++

	var once sync.Once
	release := func() {
		once.Do(func() { b.release(gen) })
	}
	return gen.browser, release, nil
}

func (b *browser) release(gen *generation) {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen.active--
	if gen.retired && gen.active == 0 {
		_ = gen.shutdown()
	}
}

// launchChrome starts Chrome with flags that keep background tabs from being
// throttled.
func launchChrome() (*generation, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &generation{
		browser: rb,
		pid:     l.PID(),
		shutdown: func() error {
			err := rb.Close()
			l.Kill()
			return err
		},
	}, nil
}

// pid returns the launcher process ID of the live generation, or 0 once
// closed.
func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return 0
	}
	return b.current.pid
}

// close shuts the live generation down. Retired generations still rendering
// shut down as their pages are released. Subsequent calls are no-ops.
func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var err error
	if b.current != nil {
		err = b.current.shutdown()
		b.current = nil
	}
	return err
}
