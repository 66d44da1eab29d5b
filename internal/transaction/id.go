package transaction

import (
	"crypto/rand"
	"fmt"
)

const (
	idPrefix   = "TXN-"
	idLength   = 8
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// maxIDAttempts bounds the regeneration loop when a freshly generated
// transaction id collides with an existing one.
const maxIDAttempts = 10000

// newTransactionID returns a candidate external key of the form
// "TXN-" + 8 uppercase alphanumerics.
func newTransactionID() (string, error) {
	buf := make([]byte, idLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}

	return idPrefix + string(buf), nil
}
