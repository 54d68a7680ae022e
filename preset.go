package postcard

import (
	"context"
	"strings"
	"time"
)

// Default preset labels applied by NormalizePreset.
const (
	DefaultTopicLabel  = "Topic"
	DefaultAuthorLabel = "Posted by"
	DefaultWhenLabel   = "When"
)

// Labels are the captions a client renders next to each record field.
type Labels struct {
	Topic  string `json:"topic"`
	Author string `json:"author"`
	When   string `json:"when"`
}

// Preset is a named, user-defined set of labels.
type Preset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Labels    Labels    `json:"labels"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the preset contains invalid fields.
func (p *Preset) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "preset name required")
	}
	return nil
}

// NormalizePreset trims whitespace from every field and fills blank labels
// with their defaults.
func NormalizePreset(p *Preset) {
	p.Name = strings.TrimSpace(p.Name)
	p.Labels.Topic = orDefault(p.Labels.Topic, DefaultTopicLabel)
	p.Labels.Author = orDefault(p.Labels.Author, DefaultAuthorLabel)
	p.Labels.When = orDefault(p.Labels.When, DefaultWhenLabel)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// PresetService represents a service for managing presets.
type PresetService interface {
	// CreatePreset normalizes and stores a new preset.
	// Returns EINVALID if the name is missing or already taken.
	CreatePreset(ctx context.Context, preset *Preset) error

	// FindPresetByID retrieves a preset by ID.
	// Returns ENOTFOUND if preset does not exist.
	FindPresetByID(ctx context.Context, id string) (*Preset, error)

	// FindPresetByName retrieves a preset by name.
	// Returns ENOTFOUND if preset does not exist.
	FindPresetByName(ctx context.Context, name string) (*Preset, error)

	// FindPresets retrieves presets matching the filter.
	FindPresets(ctx context.Context, filter PresetFilter) ([]*Preset, error)

	// UpdatePreset updates an existing preset.
	// Returns ENOTFOUND if preset does not exist.
	UpdatePreset(ctx context.Context, id string, upd PresetUpdate) (*Preset, error)

	// DeletePreset permanently removes a preset.
	// Returns ENOTFOUND if preset does not exist.
	DeletePreset(ctx context.Context, id string) error
}

// PresetFilter represents a filter for FindPresets.
type PresetFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PresetUpdate represents fields that can be updated on a preset.
type PresetUpdate struct {
	Name   *string `json:"name"`
	Labels *Labels `json:"labels"`
}
