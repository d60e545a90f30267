package checkout

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	orderNumberPrefix = "ORD-"
	orderNumberBytes  = 4
)

// NumberGenerator produces public order identifiers.
type NumberGenerator interface {
	Generate() (string, error)
}

// RandomNumberGenerator emits ORD- followed by eight uppercase hex characters.
type RandomNumberGenerator struct{}

// Generate returns a fresh candidate order number.
func (RandomNumberGenerator) Generate() (string, error) {
	buf := make([]byte, orderNumberBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating order number: %w", err)
	}
	return orderNumberPrefix + strings.ToUpper(hex.EncodeToString(buf)), nil
}
