package jirasync

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomColor returns six lowercase hex digits. Two labels may end up with
// the same color.
func RandomColor() string {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "ededed"
	}
	return hex.EncodeToString(b[:])
}
