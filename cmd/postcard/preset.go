package main

import (
	"fmt"

	"github.com/fwojciec/postcard"
)

// Run executes the preset list command.
func (c *PresetListCmd) Run(deps *Dependencies) error {
	presets, err := deps.Presets.FindPresets(deps.Ctx, postcard.PresetFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postcard.ErrorMessage(err))
		return err
	}

	if len(presets) == 0 {
		fmt.Fprintln(deps.Stdout, "No presets found. Use 'postcard preset save' to create one.")
		return nil
	}

	for _, p := range presets {
		fmt.Fprintf(deps.Stdout, "%s  %s  topic=%q author=%q when=%q\n",
			p.ID, p.Name, p.Labels.Topic, p.Labels.Author, p.Labels.When)
	}
	return nil
}

// Run executes the preset save command. An existing preset with the same
// name is updated in place; only labels given as flags change.
func (c *PresetSaveCmd) Run(deps *Dependencies) error {
	existing, err := deps.Presets.FindPresetByName(deps.Ctx, c.Name)
	switch postcard.ErrorCode(err) {
	case "":
		labels := existing.Labels
		if c.Topic != "" {
			labels.Topic = c.Topic
		}
		if c.Author != "" {
			labels.Author = c.Author
		}
		if c.When != "" {
			labels.When = c.When
		}
		preset, err := deps.Presets.UpdatePreset(deps.Ctx, existing.ID, postcard.PresetUpdate{Labels: &labels})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", postcard.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Updated preset %q\n", preset.Name)
		return nil

	case postcard.ENOTFOUND:
		preset := &postcard.Preset{
			Name:   c.Name,
			Labels: postcard.Labels{Topic: c.Topic, Author: c.Author, When: c.When},
		}
		if err := deps.Presets.CreatePreset(deps.Ctx, preset); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", postcard.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved preset %q (%s)\n", preset.Name, preset.ID)
		return nil

	default:
		fmt.Fprintf(deps.Stderr, "error: %s\n", postcard.ErrorMessage(err))
		return err
	}
}

// Run executes the preset delete command.
func (c *PresetDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return postcard.Errorf(postcard.EINVALID, "use --force to confirm deletion")
	}

	preset, err := deps.Presets.FindPresetByName(deps.Ctx, c.Name)
	if err != nil {
		if postcard.ErrorCode(err) == postcard.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: preset %q not found. Use 'postcard preset list' to see saved presets.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", postcard.ErrorMessage(err))
		}
		return err
	}

	if err := deps.Presets.DeletePreset(deps.Ctx, preset.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postcard.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted preset %q\n", preset.Name)
	return nil
}
