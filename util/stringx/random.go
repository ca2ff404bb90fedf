package stringx

// Borrowed from github.com/thanhpk/randstr.

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomBytes generates n random bytes.
func RandomBytes(n int) []byte {
	b := make([]byte, n)

	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}

	return b
}

// RandomHex generates a random hex string of n random bytes, so 2n
// characters long, e.g. 67aab2d956bd7cc621af22cfb169cba8 for n = 16. The download cache uses this for
// its write-to-temp-then-rename sibling name.
func RandomHex(n int) string { return hex.EncodeToString(RandomBytes(n)) }
