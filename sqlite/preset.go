package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/postcard"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ postcard.PresetService = (*PresetService)(nil)

const presetColumns = "id, name, topic_label, author_label, when_label, created_at, updated_at"

// PresetService implements postcard.PresetService using SQLite.
type PresetService struct {
	db *DB
}

// NewPresetService creates a new PresetService.
func NewPresetService(db *DB) *PresetService {
	return &PresetService{db: db}
}

// CreatePreset normalizes, validates and stores a new preset.
func (s *PresetService) CreatePreset(ctx context.Context, preset *postcard.Preset) error {
	postcard.NormalizePreset(preset)
	if err := preset.Validate(); err != nil {
		return err
	}

	preset.ID = uuid.New().String()
	now := time.Now().UTC()
	preset.CreatedAt = now
	preset.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO presets (`+presetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, preset.ID, preset.Name, preset.Labels.Topic, preset.Labels.Author, preset.Labels.When,
		formatTime(preset.CreatedAt), formatTime(preset.UpdatedAt))

	return nameConflict(err, preset.Name)
}

// FindPresetByID retrieves a preset by ID.
func (s *PresetService) FindPresetByID(ctx context.Context, id string) (*postcard.Preset, error) {
	return s.findOne(ctx, "id", id)
}

// FindPresetByName retrieves a preset by its unique name.
func (s *PresetService) FindPresetByName(ctx context.Context, name string) (*postcard.Preset, error) {
	return s.findOne(ctx, "name", strings.TrimSpace(name))
}

func (s *PresetService) findOne(ctx context.Context, column, value string) (*postcard.Preset, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+presetColumns+" FROM presets WHERE "+column+" = ?", value)
	preset, err := scanPreset(row)
	if err == sql.ErrNoRows {
		return nil, postcard.Errorf(postcard.ENOTFOUND, "preset not found")
	}
	if err != nil {
		return nil, err
	}
	return preset, nil
}

// FindPresets retrieves presets matching the filter, ordered by name.
func (s *PresetService) FindPresets(ctx context.Context, filter postcard.PresetFilter) ([]*postcard.Preset, error) {
	query, args := presetQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	presets := []*postcard.Preset{}
	for rows.Next() {
		preset, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}

	return presets, rows.Err()
}

// UpdatePreset updates an existing preset. Blank labels revert to defaults.
func (s *PresetService) UpdatePreset(ctx context.Context, id string, upd postcard.PresetUpdate) (*postcard.Preset, error) {
	preset, err := s.FindPresetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		preset.Name = *upd.Name
	}
	if upd.Labels != nil {
		preset.Labels = *upd.Labels
	}

	postcard.NormalizePreset(preset)
	if err := preset.Validate(); err != nil {
		return nil, err
	}

	preset.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE presets
		SET name = ?, topic_label = ?, author_label = ?, when_label = ?, updated_at = ?
		WHERE id = ?
	`, preset.Name, preset.Labels.Topic, preset.Labels.Author, preset.Labels.When,
		formatTime(preset.UpdatedAt), id)
	if err := nameConflict(err, preset.Name); err != nil {
		return nil, err
	}

	return preset, nil
}

// DeletePreset permanently removes a preset.
func (s *PresetService) DeletePreset(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM presets WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return postcard.Errorf(postcard.ENOTFOUND, "preset not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (*postcard.Preset, error) {
	var preset postcard.Preset
	var createdAt, updatedAt string

	if err := row.Scan(&preset.ID, &preset.Name,
		&preset.Labels.Topic, &preset.Labels.Author, &preset.Labels.When,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if preset.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if preset.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &preset, nil
}

// nameConflict maps a unique constraint violation on presets.name to EINVALID.
func nameConflict(err error, name string) error {
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return postcard.Errorf(postcard.EINVALID, "preset %q already exists", name)
	}
	return err
}
