// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const publicIDCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func GenerateRandomString(length int, charset string) (string, error) {
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GeneratePublicID returns a new public identifier. Ambiguous glyphs
// (0/O, 1/l/I) are left out because identifiers get typed from printed labels.
func GeneratePublicID() (string, error) {
	return GenerateRandomString(12, publicIDCharset)
}
