package simulate

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScript wraps drop script decode and reference failures
var ErrInvalidScript = errors.New("invalid drop script")

// Drop is one scripted release
// Either Target names a drop target, released at its center, or X/Y give
// the release point directly
type Drop struct {
	Item   string   `yaml:"item"`
	Target string   `yaml:"target,omitempty"`
	X      *float64 `yaml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty"`
}

// Script is an ordered list of drops
type Script []Drop

// ParseScript decodes a YAML drop list
func ParseScript(data []byte) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	for i, d := range s {
		if d.Item == "" {
			return nil, fmt.Errorf("%w: drop %d has no item", ErrInvalidScript, i)
		}
		hasPoint := d.X != nil && d.Y != nil
		if (d.Target == "") == !hasPoint {
			return nil, fmt.Errorf("%w: drop %d needs exactly one of target or x/y", ErrInvalidScript, i)
		}
	}
	return s, nil
}

// LoadScript reads a drop script file
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}
