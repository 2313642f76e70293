package profile

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"

	"fixture-generator/strategy"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyID      = errors.New("profile: empty type identity")
	ErrEmptyChoices = errors.New("profile: no choices")
	ErrDuplicateID  = errors.New("profile: identity listed as both fixed and choices")
)

// Profile is a set of strategy overrides keyed by type identity.
type Profile struct {
	Version string           `yaml:"version"`
	Fixed   map[string]any   `yaml:"fixed,omitempty"`
	Choices map[string][]any `yaml:"choices,omitempty"`
}

// LoadFile loads and parses a YAML profile from the given path.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile

	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	applyDefaults(&p)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(p *Profile) {
	if p.Version == "" {
		p.Version = "1"
	}
}

func (p *Profile) Validate() error {
	for id := range p.Fixed {
		if id == "" {
			return ErrEmptyID
		}

		if _, ok := p.Choices[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
	}

	for id, values := range p.Choices {
		if id == "" {
			return ErrEmptyID
		}

		if len(values) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyChoices, id)
		}
	}

	return nil
}

// IDs returns the overridden identities in sorted order.
func (p *Profile) IDs() []string {
	ids := make([]string, 0, len(p.Fixed)+len(p.Choices))
	for id := range p.Fixed {
		ids = append(ids, id)
	}
	for id := range p.Choices {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

// Apply registers the overrides of p in r, replacing existing strategies.
func (p *Profile) Apply(r *strategy.Registry) {
	for id, v := range p.Fixed {
		r.Register(id, strategy.Fixed(v))
	}

	for id, values := range p.Choices {
		r.Register(id, Choice(values))
	}
}

// Choice returns a Generator drawing uniformly from values.
func Choice(values []any) strategy.Generator {
	values = slices.Clone(values)

	return strategy.GeneratorFunc(func() (any, error) {
		if len(values) == 0 {
			return nil, ErrEmptyChoices
		}

		return values[rand.IntN(len(values))], nil
	})
}
