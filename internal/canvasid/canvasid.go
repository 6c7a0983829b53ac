// Package canvasid generates canvas node and edge identifiers backed
// by nanoid.
package canvasid

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet matches the lowercase-hex ids Obsidian writes into canvas files.
var Alphabet = "0123456789abcdef"

// Length is the number of characters in a generated id.
var Length = 16

// New returns a new canvas id.
func New() (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("canvasid: %w", err)
	}
	return id, nil
}
