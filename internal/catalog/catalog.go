// Package catalog loads the badge catalog and career track list from a
// YAML file, falling back to built-in defaults.
package catalog

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/njia-ai/njia-bot/internal/content"
	"github.com/njia-ai/njia-bot/internal/progress"
)

// Catalog holds the configurable content of the service: the badges the
// gamification engine can award and the senior-school tracks offered to
// the guidance prompts.
type Catalog struct {
	Badges []progress.Badge `yaml:"badges"`
	Tracks []string         `yaml:"tracks"`
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		Badges: progress.DefaultBadges(),
		Tracks: DefaultTracks(),
	}
}

// DefaultTracks lists the CBC senior-school pathway tracks. The list is
// shared with the content package so catalogued and uncatalogued
// deployments prompt with the same tracks.
func DefaultTracks() []string {
	return content.DefaultTracks()
}

// Load reads a catalog from the given YAML file. An empty path returns
// the defaults; a missing badges or tracks section keeps the default
// for that section.
func Load(path string) (Catalog, error) {
	cat := Default()
	if path == "" {
		return cat, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog: %w", err)
	}

	var loaded Catalog
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog: %w", err)
	}

	if len(loaded.Badges) > 0 {
		if err := validateBadges(loaded.Badges); err != nil {
			return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
		}
		cat.Badges = loaded.Badges
	}
	if len(loaded.Tracks) > 0 {
		cat.Tracks = loaded.Tracks
	}

	slog.Info("catalog loaded", "path", path, "badges", len(cat.Badges), "tracks", len(cat.Tracks))
	return cat, nil
}

// validateBadges rejects catalogs that drop the badges the engine
// awards by id.
func validateBadges(badges []progress.Badge) error {
	required := []string{
		progress.BadgeExplorer,
		progress.BadgeBrainiac,
		progress.BadgeMathMaster,
		progress.BadgeScienceWhiz,
		progress.BadgeWordWizard,
	}

	seen := make(map[string]bool, len(badges))
	for _, b := range badges {
		if b.ID == "" {
			return fmt.Errorf("badge with empty id")
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate badge id: %s", b.ID)
		}
		seen[b.ID] = true
	}
	for _, id := range required {
		if !seen[id] {
			return fmt.Errorf("missing required badge: %s", id)
		}
	}
	return nil
}
