package gin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/postcard"
	pcgin "github.com/fwojciec/postcard/gin"
	"github.com/fwojciec/postcard/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type response struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func do(t *testing.T, s *pcgin.Server, method, target, body string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var resp response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func newScraper(fetch func(ctx context.Context, url string) (string, error)) *postcard.Scraper {
	return &postcard.Scraper{
		Fetcher: &mock.Fetcher{FetchFn: fetch},
		Extractor: &mock.Extractor{
			ExtractFn: func(html string, sourceURL string) postcard.DiscussionRecord {
				return postcard.DiscussionRecord{SourceURL: sourceURL, Username: html}
			},
		},
	}
}

func okScraper() *postcard.Scraper {
	return newScraper(func(ctx context.Context, url string) (string, error) {
		return "alice", nil
	})
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	s := pcgin.NewServer(okScraper(), &mock.PresetService{})
	w, resp := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.OK)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Extract(t *testing.T) {
	t.Parallel()

	t.Run("GET returns record envelope", func(t *testing.T) {
		t.Parallel()

		s := pcgin.NewServer(okScraper(), &mock.PresetService{})
		w, resp := do(t, s, http.MethodGet, "/api/extract?url=https://forum.example/discussion/1", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.OK)
		var record postcard.DiscussionRecord
		require.NoError(t, json.Unmarshal(resp.Data, &record))
		assert.Equal(t, "https://forum.example/discussion/1", record.SourceURL)
		assert.Equal(t, "alice", record.Username)
	})

	t.Run("POST returns record envelope", func(t *testing.T) {
		t.Parallel()

		s := pcgin.NewServer(okScraper(), &mock.PresetService{})
		w, resp := do(t, s, http.MethodPost, "/api/extract", `{"url":"https://forum.example/discussion/2"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.OK)
		assert.Contains(t, string(resp.Data), `"sourceUrl":"https://forum.example/discussion/2"`)
	})

	t.Run("missing url is 400", func(t *testing.T) {
		t.Parallel()

		s := pcgin.NewServer(okScraper(), &mock.PresetService{})
		w, resp := do(t, s, http.MethodGet, "/api/extract", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.OK)
		assert.Equal(t, "url required", resp.Error)
	})

	t.Run("POST without url is 400", func(t *testing.T) {
		t.Parallel()

		s := pcgin.NewServer(okScraper(), &mock.PresetService{})
		w, resp := do(t, s, http.MethodPost, "/api/extract", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.OK)
	})

	t.Run("non-http url is 400", func(t *testing.T) {
		t.Parallel()

		s := pcgin.NewServer(okScraper(), &mock.PresetService{})
		w, _ := do(t, s, http.MethodGet, "/api/extract?url=ftp://forum.example/x", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("upstream failure is 502", func(t *testing.T) {
		t.Parallel()

		scraper := newScraper(func(ctx context.Context, url string) (string, error) {
			return "", postcard.Errorf(postcard.EUPSTREAM, "HTTP 503 for %s", url)
		})
		s := pcgin.NewServer(scraper, &mock.PresetService{})
		w, resp := do(t, s, http.MethodGet, "/api/extract?url=https://forum.example/x", "")

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, resp.Error, "HTTP 503")
	})

	t.Run("panic becomes internal error envelope", func(t *testing.T) {
		t.Parallel()

		scraper := &postcard.Scraper{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", nil
			}},
			Extractor: &mock.Extractor{ExtractFn: func(html string, sourceURL string) postcard.DiscussionRecord {
				panic("boom")
			}},
		}
		s := pcgin.NewServer(scraper, &mock.PresetService{})
		w, resp := do(t, s, http.MethodGet, "/api/extract?url=https://forum.example/x", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, resp.OK)
		assert.Equal(t, "internal error", resp.Error)
	})
}

func TestServer_CORS(t *testing.T) {
	t.Parallel()

	s := pcgin.NewServer(okScraper(), &mock.PresetService{})
	req := httptest.NewRequest(http.MethodOptions, "/api/extract", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestServer_RateLimit(t *testing.T) {
	t.Parallel()

	s := pcgin.NewServer(okScraper(), &mock.PresetService{}, pcgin.WithRateLimit(rate.Limit(0.001), 1))

	w, _ := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, resp.OK)
	assert.Equal(t, "rate limit exceeded", resp.Error)
}

func TestServer_NoRoute(t *testing.T) {
	t.Parallel()

	s := pcgin.NewServer(okScraper(), &mock.PresetService{})
	w, resp := do(t, s, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.OK)
}

func TestServer_OpenClose(t *testing.T) {
	t.Parallel()

	s := pcgin.NewServer(okScraper(), &mock.PresetService{}, pcgin.WithAddr("127.0.0.1:0"))
	require.NoError(t, s.Open())

	resp, err := http.Get(s.URL() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Close())
}

func TestErrorStatusCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusBadRequest, pcgin.ErrorStatusCode(postcard.EINVALID))
	assert.Equal(t, http.StatusNotFound, pcgin.ErrorStatusCode(postcard.ENOTFOUND))
	assert.Equal(t, http.StatusBadGateway, pcgin.ErrorStatusCode(postcard.EUPSTREAM))
	assert.Equal(t, http.StatusInternalServerError, pcgin.ErrorStatusCode(postcard.EINTERNAL))
	assert.Equal(t, http.StatusInternalServerError, pcgin.ErrorStatusCode(postcard.ErrorCode(errors.New("x"))))
}
