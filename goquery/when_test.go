package goquery_test

import (
	"testing"

	"github.com/fwojciec/postcard/goquery"
	"github.com/stretchr/testify/assert"
)

func TestWhenCascade(t *testing.T) {
	t.Parallel()

	t.Run("prefers datetime attribute", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<time datetime="2024-01-05T10:00:00Z">January 5</time>`)

		value, name := goquery.WhenCascade(testProfile()).Trace(page)

		assert.Equal(t, "2024-01-05T10:00:00Z", value)
		assert.Equal(t, "time-datetime", name)
	})

	t.Run("normalizes whitespace of time text", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, "<time>3\n  days   ago</time>")

		assert.Equal(t, "3 days ago", goquery.ResolveWhen(page, testProfile()))
	})

	t.Run("matches edited phrase before bare relative time", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<p>Posted 2 hours ago</p><p>Edited 5 minutes ago</p>`)

		value, name := goquery.WhenCascade(testProfile()).Trace(page)

		assert.Equal(t, "Edited 5 minutes ago", value)
		assert.Equal(t, "edited-ago", name)
	})

	t.Run("matches bare relative time", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<span class="meta">3 days ago</span>`)

		value, name := goquery.WhenCascade(testProfile()).Trace(page)

		assert.Equal(t, "3 days ago", value)
		assert.Equal(t, "relative-ago", name)
	})

	t.Run("prefers dateModified over datePublished", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<script type="application/ld+json">
{"@type":"Article","datePublished":"2024-01-01","dateModified":"2024-02-01"}
</script>`)

		value, name := goquery.WhenCascade(testProfile()).Trace(page)

		assert.Equal(t, "2024-02-01", value)
		assert.Equal(t, "structured-data", name)
	})

	t.Run("falls back to datePublished", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<script type="application/ld+json">{"@type":"WebPage","datePublished":"2024-01-01"}</script>`)

		assert.Equal(t, "2024-01-01", goquery.ResolveWhen(page, testProfile()))
	})

	t.Run("returns empty without time markup", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<p>Nothing to see here</p>`)

		assert.Empty(t, goquery.ResolveWhen(page, testProfile()))
	})
}
