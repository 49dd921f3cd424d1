// Package codegen produces short room codes that are easy to read aloud.
package codegen

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
)

// New returns a code of the form adjective-noun-place-NN,
// e.g. "brisk-otter-harbor-42".
func New() string {
	return fmt.Sprintf("%s-%s-%s-%02d",
		adjectives[randomIndex(len(adjectives))],
		nouns[randomIndex(len(nouns))],
		places[randomIndex(len(places))],
		randomIndex(100),
	)
}

// randomIndex returns a cryptographically secure random index for a slice of given length.
func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		log.Panic("Failed to generate random index:", err)
	}
	return int(n.Int64())
}
