package cas

import (
	"encoding/hex"
	"strconv"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/JuniperDocgen/core/content"
)

// Fingerprint accumulates the inputs of an assembly into a BLAKE3 digest.
// Fields are length-prefixed so distinct inputs never collide by
// concatenation.
type Fingerprint struct {
	h *blake3.Hasher
}

// NewFingerprint returns an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{h: blake3.New()}
}

// Add mixes a named value into the fingerprint.
func (f *Fingerprint) Add(name, value string) *Fingerprint {
	f.write(name)
	f.write(value)
	return f
}

// AddUnit mixes the canonical encoding of a content unit into the
// fingerprint.
func (f *Fingerprint) AddUnit(u content.Unit) error {
	f.write("unit")
	return content.Encode(f.h, u)
}

// Sum returns the hex digest. It can be used as a ref name.
func (f *Fingerprint) Sum() string {
	return hex.EncodeToString(f.h.Sum(nil))
}

func (f *Fingerprint) write(s string) {
	_, _ = f.h.Write([]byte(strconv.Itoa(len(s)) + ":" + s))
}
