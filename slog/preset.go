package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/postcard"
)

// Ensure LoggingPresetService implements postcard.PresetService.
var _ postcard.PresetService = (*LoggingPresetService)(nil)

// LoggingPresetService wraps a PresetService and logs every write.
// Reads are delegated without logging.
type LoggingPresetService struct {
	next   postcard.PresetService
	logger *slog.Logger
}

// NewLoggingPresetService creates a new LoggingPresetService.
func NewLoggingPresetService(next postcard.PresetService, logger *slog.Logger) *LoggingPresetService {
	return &LoggingPresetService{next: next, logger: logger}
}

// CreatePreset delegates to the wrapped service and logs the operation.
func (s *LoggingPresetService) CreatePreset(ctx context.Context, preset *postcard.Preset) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create preset",
			"name", preset.Name,
			"id", preset.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreatePreset(ctx, preset)
}

// FindPresetByID delegates to the wrapped service.
func (s *LoggingPresetService) FindPresetByID(ctx context.Context, id string) (*postcard.Preset, error) {
	return s.next.FindPresetByID(ctx, id)
}

// FindPresetByName delegates to the wrapped service.
func (s *LoggingPresetService) FindPresetByName(ctx context.Context, name string) (*postcard.Preset, error) {
	return s.next.FindPresetByName(ctx, name)
}

// FindPresets delegates to the wrapped service.
func (s *LoggingPresetService) FindPresets(ctx context.Context, filter postcard.PresetFilter) ([]*postcard.Preset, error) {
	return s.next.FindPresets(ctx, filter)
}

// UpdatePreset delegates to the wrapped service and logs the operation.
func (s *LoggingPresetService) UpdatePreset(ctx context.Context, id string, upd postcard.PresetUpdate) (preset *postcard.Preset, err error) {
	defer func(begin time.Time) {
		s.logger.Info("update preset",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdatePreset(ctx, id, upd)
}

// DeletePreset delegates to the wrapped service and logs the operation.
func (s *LoggingPresetService) DeletePreset(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete preset",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeletePreset(ctx, id)
}
