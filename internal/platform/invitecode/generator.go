package invitecode

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Alphabet excludes visually ambiguous characters (0/O, 1/I/L) so codes can
// be read out loud or typed from a screenshot.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const Length = 6

// Generator produces short, human-typable team invite codes. Codes are not
// guaranteed unique; the teams table enforces uniqueness and callers retry on
// collision.
type Generator interface {
	Generate() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) Generate() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for invite code: %w", err)
	}

	out := make([]byte, Length)
	for i, b := range buf {
		out[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(out), nil
}

// Normalize upper-cases and trims an invite code so lookups are
// case-insensitive.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
