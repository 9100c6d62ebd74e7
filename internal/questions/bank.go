// Package questions loads the static assessment content: for each of the
// eight leadership capability areas, the Level One rating prompts and the
// Level Two "themes or focus areas" narrative, per organizational level band.
//
// The content ships embedded in the binary and is parsed and validated once
// at startup. A capability with missing fields or a gap in level coverage
// fails the load instead of being silently skipped.
package questions

import (
	_ "embed"
	"log/slog"

	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/RaheesAhmed/growthcompass/internal/levels"
	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

// CapabilityCount is the fixed number of leadership capability areas.
const CapabilityCount = 8

var (
	ErrInvalidBank       = errors.NewSentinel("invalid question bank")
	ErrUnknownCapability = errors.NewSentinel("unknown capability area")
)

// LevelOneQuestion is the paired skill and confidence rating prompts for a
// capability at a given organizational level.
type LevelOneQuestion struct {
	Capability string
	Skill      string
	Confidence string
}

type band struct {
	MinLevel   int    `yaml:"min_level"`
	MaxLevel   int    `yaml:"max_level"`
	Skill      string `yaml:"skill_question"`
	Confidence string `yaml:"confidence_question"`
	Themes     string `yaml:"themes"`
}

type capability struct {
	Name  string `yaml:"name"`
	Bands []band `yaml:"bands"`
}

type bankFile struct {
	Capabilities []capability `yaml:"capabilities"`
}

// Bank is the loaded, validated question content. It is read-only after Load
// and safe for concurrent use.
type Bank struct {
	ordered      []string
	capabilities map[string]capability
}

// Load parses and validates the embedded content.
func Load() (*Bank, error) {
	return load(bankYAML)
}

func load(raw []byte) (*Bank, error) {
	var file bankFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "unmarshal question bank")
	}

	if len(file.Capabilities) != CapabilityCount {
		return nil, errors.Wrap(ErrInvalidBank, "unexpected capability count",
			slog.Int("want", CapabilityCount), slog.Int("got", len(file.Capabilities)))
	}

	bank := Bank{
		ordered:      make([]string, 0, len(file.Capabilities)),
		capabilities: make(map[string]capability, len(file.Capabilities)),
	}
	for _, area := range file.Capabilities {
		if area.Name == "" {
			return nil, errors.Wrap(ErrInvalidBank, "capability without a name")
		}
		if _, exists := bank.capabilities[area.Name]; exists {
			return nil, errors.Wrap(ErrInvalidBank, "duplicate capability", slog.String("capability", area.Name))
		}
		if err := validateBands(area); err != nil {
			return nil, err
		}
		bank.ordered = append(bank.ordered, area.Name)
		bank.capabilities[area.Name] = area
	}
	return &bank, nil
}

// validateBands checks that the capability's bands cover levels 0 through
// Count-1 contiguously and that every required field is present.
func validateBands(area capability) error {
	next := 0
	for _, b := range area.Bands {
		if b.MinLevel != next {
			return errors.Wrap(ErrInvalidBank, "level coverage gap",
				slog.String("capability", area.Name), slog.Int("expected", next), slog.Int("got", b.MinLevel))
		}
		if b.MaxLevel < b.MinLevel {
			return errors.Wrap(ErrInvalidBank, "band range inverted",
				slog.String("capability", area.Name), slog.Int("minLevel", b.MinLevel), slog.Int("maxLevel", b.MaxLevel))
		}
		if b.Skill == "" || b.Confidence == "" || b.Themes == "" {
			return errors.Wrap(ErrInvalidBank, "band missing required fields",
				slog.String("capability", area.Name), slog.Int("minLevel", b.MinLevel))
		}
		next = b.MaxLevel + 1
	}
	if next != levels.Count {
		return errors.Wrap(ErrInvalidBank, "levels not fully covered",
			slog.String("capability", area.Name), slog.Int("covered", next))
	}
	return nil
}

// Capabilities returns the capability area names in assessment order.
func (b *Bank) Capabilities() []string {
	out := make([]string, len(b.ordered))
	copy(out, b.ordered)
	return out
}

// LevelOne returns the Level One question pair for the capability at the
// given organizational level.
func (b *Bank) LevelOne(capabilityName string, levelIndex int) (LevelOneQuestion, error) {
	matched, err := b.bandFor(capabilityName, levelIndex)
	if err != nil {
		return LevelOneQuestion{}, err
	}
	return LevelOneQuestion{
		Capability: capabilityName,
		Skill:      matched.Skill,
		Confidence: matched.Confidence,
	}, nil
}

// Narrative returns the Level Two "themes or focus areas" block for the
// capability at the given organizational level.
func (b *Bank) Narrative(capabilityName string, levelIndex int) (string, error) {
	matched, err := b.bandFor(capabilityName, levelIndex)
	if err != nil {
		return "", err
	}
	return matched.Themes, nil
}

func (b *Bank) bandFor(capabilityName string, levelIndex int) (band, error) {
	area, ok := b.capabilities[capabilityName]
	if !ok {
		return band{}, errors.Wrap(ErrUnknownCapability, "capability not in bank",
			slog.String("capability", capabilityName))
	}
	if levelIndex < 0 || levelIndex >= levels.Count {
		return band{}, errors.Wrap(levels.ErrUnknownLevel, "level out of range", slog.Int("level", levelIndex))
	}
	for _, candidate := range area.Bands {
		if levelIndex >= candidate.MinLevel && levelIndex <= candidate.MaxLevel {
			return candidate, nil
		}
	}
	// Unreachable after validateBands, kept as a guard for future edits.
	return band{}, errors.Wrap(ErrInvalidBank, "no band for level",
		slog.String("capability", capabilityName), slog.Int("level", levelIndex))
}
