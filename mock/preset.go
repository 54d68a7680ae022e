package mock

import (
	"context"

	"github.com/fwojciec/postcard"
)

var _ postcard.PresetService = (*PresetService)(nil)

// PresetService is a mock implementation of postcard.PresetService.
type PresetService struct {
	CreatePresetFn     func(ctx context.Context, preset *postcard.Preset) error
	FindPresetByIDFn   func(ctx context.Context, id string) (*postcard.Preset, error)
	FindPresetByNameFn func(ctx context.Context, name string) (*postcard.Preset, error)
	FindPresetsFn      func(ctx context.Context, filter postcard.PresetFilter) ([]*postcard.Preset, error)
	UpdatePresetFn     func(ctx context.Context, id string, upd postcard.PresetUpdate) (*postcard.Preset, error)
	DeletePresetFn     func(ctx context.Context, id string) error
}

func (s *PresetService) CreatePreset(ctx context.Context, preset *postcard.Preset) error {
	return s.CreatePresetFn(ctx, preset)
}

func (s *PresetService) FindPresetByID(ctx context.Context, id string) (*postcard.Preset, error) {
	return s.FindPresetByIDFn(ctx, id)
}

func (s *PresetService) FindPresetByName(ctx context.Context, name string) (*postcard.Preset, error) {
	return s.FindPresetByNameFn(ctx, name)
}

func (s *PresetService) FindPresets(ctx context.Context, filter postcard.PresetFilter) ([]*postcard.Preset, error) {
	return s.FindPresetsFn(ctx, filter)
}

func (s *PresetService) UpdatePreset(ctx context.Context, id string, upd postcard.PresetUpdate) (*postcard.Preset, error) {
	return s.UpdatePresetFn(ctx, id, upd)
}

func (s *PresetService) DeletePreset(ctx context.Context, id string) error {
	return s.DeletePresetFn(ctx, id)
}
