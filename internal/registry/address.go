package registry

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// AddressLength is the fixed byte width of an account identifier.
const AddressLength = 20

// Address identifies an account. Addresses are opaque to the registry; it
// never derives or verifies them, it only compares them and uses them as
// lookup keys.
type Address [AddressLength]byte

// ParseAddress decodes a 0x-prefixed hex account identifier. Checksum casing
// is not enforced on input.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw := s
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		raw = raw[2:]
	}
	if len(raw) != AddressLength*2 {
		return Address{}, fmt.Errorf("address %q: want %d hex characters, got %d", s, AddressLength*2, len(raw))
	}
	if _, err := hex.Decode(a[:], []byte(raw)); err != nil {
		return Address{}, fmt.Errorf("address %q: %w", s, err)
	}
	return a, nil
}

// IsZero reports whether the address is the null identifier.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String renders the address as 0x-prefixed hex with a Keccak-256 mixed-case
// checksum, so responses and logs carry a self-verifying form.
func (a Address) String() string {
	buf := []byte(hex.EncodeToString(a[:]))

	h := sha3.NewLegacyKeccak256()
	h.Write(buf)
	sum := h.Sum(nil)

	for i, c := range buf {
		if c < 'a' {
			continue
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			buf[i] = c - ('a' - 'A')
		}
	}
	return "0x" + string(buf)
}

// MarshalText implements encoding.TextMarshaler using the checksummed form.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
