// Package gameid generates the identifiers that tag a training session in
// logs and transcripts.
package gameid

import (
	"encoding/base32"
	"fmt"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of an encoded ID
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generate returns a new time-ordered session ID: a UUIDv7 encoded as a
// 26-character base32 string.
func Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		// crypto/rand failure; fall back to a random v4 rather than fail a game
		id = uuid.New()
	}
	return Encode(id)
}

// Encode renders a UUID in the session ID alphabet
func Encode(id uuid.UUID) string {
	return encoding.EncodeToString(id[:])
}

// Decode parses a session ID back into its UUID
func Decode(s string) (uuid.UUID, error) {
	if len(s) != Length {
		return uuid.Nil, fmt.Errorf("gameid: must be exactly %d characters, got %d", Length, len(s))
	}
	b, err := encoding.DecodeString(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("gameid: %w", err)
	}
	return uuid.FromBytes(b)
}

// Validate checks that s is a well-formed session ID
func Validate(s string) error {
	id, err := Decode(s)
	if err != nil {
		return err
	}
	if id.Version() != 7 {
		return fmt.Errorf("gameid: unexpected UUID version %d", id.Version())
	}
	return nil
}

// Short returns the trailing characters of an ID for prompts and log
// prefixes. The leading characters are the timestamp and rarely differ.
func Short(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[len(s)-8:]
}
