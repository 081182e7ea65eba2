// Package id generates prefixed NanoID identifiers for domain records.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// size is the length of the random portion. 21 characters of the
// URL-safe NanoID alphabet carry comparable entropy to a v4 UUID at
// roughly half the width.
const size = 21

// Generate returns an ID of the form "<prefix>-<nanoid>", e.g.
// "rs-V1StGXR8_Z5jdHi6B-myT". The prefix makes IDs self-describing in
// logs and API payloads.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.New(size)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return prefix + "-" + suffix, nil
}

// MustGenerate is Generate panicking on failure. Generation only fails
// when the OS entropy source is unavailable, which is not a condition
// call sites can recover from.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(err)
	}
	return id
}
