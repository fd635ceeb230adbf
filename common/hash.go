package common

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
)

const HashSize = 32

// Hash is a 32-byte opaque commitment. The registry stores it as-is and never
// verifies it against proofs.
type Hash [HashSize]byte

var ZeroHash = Hash{}

// NewHashFromString parses a hex-encoded hash, with or without 0x prefix.
func NewHashFromString(s string) (Hash, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, errors.Wrapf(err, "invalid hash %q", s)
	}
	if len(raw) != HashSize {
		return Hash{}, errors.Errorf("invalid hash length: expected %d bytes, got %d", HashSize, len(raw))
	}
	var h Hash
	copy(h[:], raw)
	return h, nil
}

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := NewHashFromString(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*h = parsed
	return nil
}
