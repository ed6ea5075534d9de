package id

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// Generator creates the opaque public ids handed out for registrations,
// matches, card events and suspensions. Ids carry no ordering or meaning.
type Generator interface {
	NewID() (string, error)
}

var idEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// RandomGenerator draws 20 bytes of crypto randomness per id and encodes
// them as lowercase base32, giving a 32-character token.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return strings.ToLower(idEncoding.EncodeToString(buf)), nil
}
