package exercise

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseDeck decodes a YAML deck; unknown fields are rejected
// Validation is separate so callers can report every problem at once
func ParseDeck(data []byte) (*Deck, error) {
	var deck Deck
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&deck); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	for i := range deck.Exercises {
		if deck.Exercises[i].Variant == "" {
			continue
		}
		switch deck.Exercises[i].Variant {
		case VariantSort, VariantPuzzle:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, deck.Exercises[i].Variant)
		}
	}
	return &deck, nil
}

// LoadDeck reads and decodes a deck file
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}
	deck, err := ParseDeck(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return deck, nil
}
