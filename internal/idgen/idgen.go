// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultPrefix is prepended to every generated reservation ID.
var DefaultPrefix = "rs-"

// Alphabet defines the character set used for the random portion of IDs and tokens.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters in a reservation ID (excluding the prefix).
var Length = 10

// TokenLength is the number of random characters in a decision token.
// Tokens are capabilities handed out in approval links, so they are long
// enough that guessing one is not practical.
var TokenLength = 32

// Generate returns a new unique reservation ID using the default prefix.
func Generate() (string, error) {
	return GenerateWithPrefix(DefaultPrefix)
}

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// NewToken returns a new decision token.
func NewToken() (string, error) {
	token, err := nanoid.Generate(Alphabet, TokenLength)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return token, nil
}
