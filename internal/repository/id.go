package repository

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a random 16-byte hex identifier.  crypto/rand never
// fails on the supported platforms; a failure here means the process
// cannot do anything useful anyway, so it panics.
func NewID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("repository: random source unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
