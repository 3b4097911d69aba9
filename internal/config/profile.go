package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flashnarrative/brandpulse/internal/core/analysis"
	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

// Profile is the optional YAML analysis profile: lexicon overrides, an
// explicit brand registry, and per-brand intended-message theme sets.
// Every field is optional; an absent file yields a zero Profile and the
// built-in defaults apply.
type Profile struct {
	Lexicon        analysis.Lexicon    `yaml:"lexicon"`
	Brands         []domain.Brand      `yaml:"brands"`
	IntendedThemes map[string][]string `yaml:"intended_themes"`
}

// LoadProfile reads and validates the analysis profile at path. An empty
// path is not an error: it returns a zero Profile.
func LoadProfile(path string) (Profile, error) {
	if path == "" {
		return Profile{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read analysis profile: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(raw, &profile); err != nil {
		return Profile{}, fmt.Errorf("parse analysis profile: %w", err)
	}
	if err := profile.validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid analysis profile: %w", err)
	}
	return profile, nil
}

func (p Profile) validate() error {
	for category := range p.Lexicon.Sentiment {
		if !category.Valid() {
			return fmt.Errorf("unknown sentiment category %q", category)
		}
	}
	for category := range p.Lexicon.Themes {
		if !category.Valid() {
			return fmt.Errorf("unknown theme category %q", category)
		}
	}
	for _, brand := range p.Brands {
		if strings.TrimSpace(brand.Name) == "" {
			return fmt.Errorf("brand with empty name")
		}
	}
	for brand, themes := range p.IntendedThemes {
		for _, theme := range themes {
			if _, err := domain.ParseThemeCategory(theme); err != nil {
				return fmt.Errorf("intended themes for %q: %w", brand, err)
			}
		}
	}
	return nil
}

// Registry builds the brand registry for a pipeline run. An explicit
// registry in the profile wins; otherwise one is derived from the
// monitored brand and competitor names, aliasing multi-word names by their
// first word ("Zenith Bank" also matches plain "Zenith").
func (p Profile) Registry(monitored string, competitors []string) domain.BrandRegistry {
	if len(p.Brands) > 0 {
		return domain.BrandRegistry{Brands: p.Brands}
	}

	brands := make([]domain.Brand, 0, len(competitors)+1)
	brands = append(brands, deriveBrand(monitored))
	for _, name := range competitors {
		brands = append(brands, deriveBrand(name))
	}
	return domain.BrandRegistry{Brands: brands}
}

// IntendedThemeSets converts the profile's intended themes to their typed
// form. Validation already happened in LoadProfile, so parse errors are
// skipped rather than surfaced.
func (p Profile) IntendedThemeSets() map[string][]domain.ThemeCategory {
	if len(p.IntendedThemes) == 0 {
		return nil
	}
	out := make(map[string][]domain.ThemeCategory, len(p.IntendedThemes))
	for brand, themes := range p.IntendedThemes {
		for _, theme := range themes {
			parsed, err := domain.ParseThemeCategory(theme)
			if err != nil {
				continue
			}
			out[brand] = append(out[brand], parsed)
		}
	}
	return out
}

func deriveBrand(name string) domain.Brand {
	name = strings.TrimSpace(name)
	brand := domain.Brand{Name: name}
	if first, _, found := strings.Cut(name, " "); found && len(first) > 2 {
		brand.Aliases = []string{first}
	}
	return brand
}
