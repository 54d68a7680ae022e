package gin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/fwojciec/postcard"
	pcgin "github.com/fwojciec/postcard/gin"
	"github.com/fwojciec/postcard/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_PresetList(t *testing.T) {
	t.Parallel()

	t.Run("passes filter and returns presets", func(t *testing.T) {
		t.Parallel()

		var got postcard.PresetFilter
		presets := &mock.PresetService{
			FindPresetsFn: func(ctx context.Context, filter postcard.PresetFilter) ([]*postcard.Preset, error) {
				got = filter
				return []*postcard.Preset{{ID: "p-1", Name: "compact"}}, nil
			},
		}
		s := pcgin.NewServer(okScraper(), presets)
		w, resp := do(t, s, http.MethodGet, "/api/presets?name=compact&limit=5&offset=2", "")

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got.Name)
		assert.Equal(t, "compact", *got.Name)
		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, 2, got.Offset)

		var list []postcard.Preset
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		require.Len(t, list, 1)
		assert.Equal(t, "p-1", list[0].ID)
	})

	t.Run("bad limit is 400", func(t *testing.T) {
		t.Parallel()

		s := pcgin.NewServer(okScraper(), &mock.PresetService{})
		w, _ := do(t, s, http.MethodGet, "/api/presets?limit=-1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure is 500 with hidden details", func(t *testing.T) {
		t.Parallel()

		presets := &mock.PresetService{
			FindPresetsFn: func(ctx context.Context, filter postcard.PresetFilter) ([]*postcard.Preset, error) {
				return nil, errors.New("disk on fire")
			},
		}
		s := pcgin.NewServer(okScraper(), presets)
		w, resp := do(t, s, http.MethodGet, "/api/presets", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, resp.Error, "disk")
	})
}

func TestServer_PresetCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates preset", func(t *testing.T) {
		t.Parallel()

		presets := &mock.PresetService{
			CreatePresetFn: func(ctx context.Context, preset *postcard.Preset) error {
				preset.ID = "p-1"
				return nil
			},
		}
		s := pcgin.NewServer(okScraper(), presets)
		w, resp := do(t, s, http.MethodPost, "/api/presets", `{"name":"compact","labels":{"topic":"Board"}}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var preset postcard.Preset
		require.NoError(t, json.Unmarshal(resp.Data, &preset))
		assert.Equal(t, "p-1", preset.ID)
		assert.Equal(t, "Board", preset.Labels.Topic)
	})

	t.Run("missing name is 400", func(t *testing.T) {
		t.Parallel()

		s := pcgin.NewServer(okScraper(), &mock.PresetService{})
		w, resp := do(t, s, http.MethodPost, "/api/presets", `{"labels":{}}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "preset name required", resp.Error)
	})

	t.Run("name conflict is 400", func(t *testing.T) {
		t.Parallel()

		presets := &mock.PresetService{
			CreatePresetFn: func(ctx context.Context, preset *postcard.Preset) error {
				return postcard.Errorf(postcard.EINVALID, "preset %q already exists", preset.Name)
			},
		}
		s := pcgin.NewServer(okScraper(), presets)
		w, resp := do(t, s, http.MethodPost, "/api/presets", `{"name":"compact"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, resp.Error, "already exists")
	})
}

func TestServer_PresetGet(t *testing.T) {
	t.Parallel()

	t.Run("returns preset", func(t *testing.T) {
		t.Parallel()

		presets := &mock.PresetService{
			FindPresetByIDFn: func(ctx context.Context, id string) (*postcard.Preset, error) {
				return &postcard.Preset{ID: id, Name: "compact"}, nil
			},
		}
		s := pcgin.NewServer(okScraper(), presets)
		w, resp := do(t, s, http.MethodGet, "/api/presets/p-9", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(resp.Data), `"id":"p-9"`)
	})

	t.Run("missing preset is 404", func(t *testing.T) {
		t.Parallel()

		presets := &mock.PresetService{
			FindPresetByIDFn: func(ctx context.Context, id string) (*postcard.Preset, error) {
				return nil, postcard.Errorf(postcard.ENOTFOUND, "preset not found")
			},
		}
		s := pcgin.NewServer(okScraper(), presets)
		w, resp := do(t, s, http.MethodGet, "/api/presets/nope", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "preset not found", resp.Error)
	})
}

func TestServer_PresetUpdate(t *testing.T) {
	t.Parallel()

	var gotID string
	var gotUpd postcard.PresetUpdate
	presets := &mock.PresetService{
		UpdatePresetFn: func(ctx context.Context, id string, upd postcard.PresetUpdate) (*postcard.Preset, error) {
			gotID, gotUpd = id, upd
			return &postcard.Preset{ID: id, Name: *upd.Name}, nil
		},
	}
	s := pcgin.NewServer(okScraper(), presets)
	w, _ := do(t, s, http.MethodPut, "/api/presets/p-1", `{"name":"roomy"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p-1", gotID)
	require.NotNil(t, gotUpd.Name)
	assert.Equal(t, "roomy", *gotUpd.Name)
	assert.Nil(t, gotUpd.Labels)
}

func TestServer_PresetDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes preset", func(t *testing.T) {
		t.Parallel()

		var gotID string
		presets := &mock.PresetService{
			DeletePresetFn: func(ctx context.Context, id string) error {
				gotID = id
				return nil
			},
		}
		s := pcgin.NewServer(okScraper(), presets)
		w, resp := do(t, s, http.MethodDelete, "/api/presets/p-1", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.OK)
		assert.Equal(t, "p-1", gotID)
	})

	t.Run("missing preset is 404", func(t *testing.T) {
		t.Parallel()

		presets := &mock.PresetService{
			DeletePresetFn: func(ctx context.Context, id string) error {
				return postcard.Errorf(postcard.ENOTFOUND, "preset not found")
			},
		}
		s := pcgin.NewServer(okScraper(), presets)
		w, _ := do(t, s, http.MethodDelete, "/api/presets/nope", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
