package machine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/psantana5/switchcase/pkg/switchcase"
)

// DefaultLabel is the reserved label token marking the default case in
// machine files and in run traces. It is part of the label value space and
// may not be declared as a case label.
const DefaultLabel = "__default__"

// defaultMaxSteps caps runs whose declaration leaves max_steps unset
const defaultMaxSteps = 100

// CaseConfig declares one labeled case of a machine
type CaseConfig struct {
	Label  string `yaml:"label" json:"label"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"` // logged when the case runs
	Next   string `yaml:"next,omitempty" json:"next,omitempty"`     // becomes the next reference
	Halt   bool   `yaml:"halt,omitempty" json:"halt,omitempty"`     // stop the run after this case
}

// Config is a complete machine declaration: labeled cases plus one default,
// driven from a starting reference
type Config struct {
	Name     string       `yaml:"name" json:"name"`
	Start    string       `yaml:"start" json:"start"`
	MaxSteps int          `yaml:"max_steps,omitempty" json:"max_steps,omitempty"` // 0 = defaulted
	Cases    []CaseConfig `yaml:"cases" json:"cases"`
	Default  *CaseConfig  `yaml:"default,omitempty" json:"default,omitempty"`
}

// Load reads and validates a machine declaration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse machine file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the declaration before anything is activated and fills in
// defaults. Label malformations fail here, not at first activation.
func (c *Config) Validate() error {
	if c.Name == "" {
		c.Name = "machine"
	}

	if c.MaxSteps < 0 {
		return fmt.Errorf("machine %q: max_steps must be >= 0", c.Name)
	}

	if len(c.Cases) == 0 && c.Default == nil {
		return fmt.Errorf("machine %q declares no cases and no default", c.Name)
	}

	seen := make(map[string]struct{}, len(c.Cases))
	for _, cs := range c.Cases {
		if cs.Label == "" {
			return &switchcase.DispatchError{
				Type:  switchcase.ErrorTypeMalformedLabel,
				Group: c.Name,
				Label: "(empty)",
				Err:   switchcase.ErrMalformedLabel,
			}
		}
		if cs.Label == DefaultLabel {
			return &switchcase.DispatchError{
				Type:  switchcase.ErrorTypeMalformedLabel,
				Group: c.Name,
				Label: cs.Label,
				Err:   switchcase.ErrMalformedLabel,
			}
		}
		if _, dup := seen[cs.Label]; dup {
			return &switchcase.DispatchError{
				Type:  switchcase.ErrorTypeDuplicateLabel,
				Group: c.Name,
				Label: cs.Label,
				Err:   switchcase.ErrDuplicateLabel,
			}
		}
		seen[cs.Label] = struct{}{}
	}

	// The default block needs no label; anything but the reserved token is
	// a declaration mistake
	if c.Default != nil && c.Default.Label != "" && c.Default.Label != DefaultLabel {
		return &switchcase.DispatchError{
			Type:  switchcase.ErrorTypeMalformedLabel,
			Group: c.Name,
			Label: c.Default.Label,
			Err:   switchcase.ErrMalformedLabel,
		}
	}

	// Set defaults
	if c.Start == "" && len(c.Cases) > 0 {
		c.Start = c.Cases[0].Label
	}

	return nil
}
