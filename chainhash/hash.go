// Package chainhash implements the hash primitives used throughout the
// chain object model: SHA-256, RIPEMD-160, and the composite Hash256
// (double SHA-256) and Hash160 (SHA-256 then RIPEMD-160) functions Bitcoin
// uses for transaction, block, and address identity.
package chainhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

// Size is the number of bytes in a Hash.
const Size = 32

// Hash is a 32-byte hash digest. Equality is byte-wise; the inner bytes are
// opaque and carry no particular endianness of their own. Reversing a Hash
// for display (the conventional big-endian-looking hex string) is a
// presentation concern handled by String, not by the hash identity itself.
type Hash [Size]byte

// String returns the Hash as a hex string with the byte order reversed,
// matching the convention used to display Bitcoin block and transaction
// hashes.
func (h Hash) String() string {
	var reversed Hash
	for i := 0; i < Size/2; i++ {
		reversed[i], reversed[Size-1-i] = h[Size-1-i], h[i]
	}
	return hex.EncodeToString(reversed[:])
}

// CloneBytes returns a newly allocated copy of the Hash's bytes.
func (h Hash) CloneBytes() []byte {
	b := make([]byte, Size)
	copy(b, h[:])
	return b
}

// IsZero reports whether the hash is the all-zero value.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// SetBytes assigns the Hash from src, which must be exactly Size bytes.
func (h *Hash) SetBytes(src []byte) error {
	if len(src) != Size {
		return fmt.Errorf("invalid hash length of %v, want %v",
			len(src), Size)
	}
	copy(h[:], src)
	return nil
}

// NewHash constructs a Hash from a byte slice, which must be exactly Size
// bytes long.
func NewHash(src []byte) (*Hash, error) {
	var h Hash
	if err := h.SetBytes(src); err != nil {
		return nil, err
	}
	return &h, nil
}

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// RIPEMD160 returns the RIPEMD-160 digest of data.
func RIPEMD160(data []byte) [20]byte {
	h := ripemd160.New()
	// ripemd160.New never returns a Writer whose Write can fail.
	_, _ = h.Write(data)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Hash256 computes sha256(sha256(data)), Bitcoin's ubiquitous identity hash.
func Hash256(data []byte) Hash {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return Hash(second)
}

// Hash160 computes ripemd160(sha256(data)), used to derive public key and
// script hashes for P2PKH/P2SH addresses.
func Hash160(data []byte) [20]byte {
	sum := sha256.Sum256(data)
	return RIPEMD160(sum[:])
}
