package common

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
)

const AddressSize = 20

// Address is a 20-byte principal identity. The zero value is the null address,
// used as the "no owner" sentinel and never a valid holder.
type Address [AddressSize]byte

var ZeroAddress = Address{}

// NewAddressFromString parses a hex-encoded address, with or without 0x prefix.
func NewAddressFromString(s string) (Address, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, errors.Wrapf(err, "invalid address %q", s)
	}
	if len(raw) != AddressSize {
		return Address{}, errors.Errorf("invalid address length: expected %d bytes, got %d", AddressSize, len(raw))
	}
	var addr Address
	copy(addr[:], raw)
	return addr, nil
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := NewAddressFromString(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*a = parsed
	return nil
}
