package keychain

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"github.com/btcgateway/chainmodel/chainhash"
	"github.com/btcgateway/chainmodel/txscript"
)

// hmacKeyDerivationSalt namespaces the HMAC used to turn a (family, index)
// pair into a deterministic child scalar, so the same seed never produces
// the same bytes for two different purposes.
var hmacKeyDerivationSalt = []byte("chainmodel-keyring-v1")

// SeedKeyRing is a SecretKeyRing backed by a single in-memory seed. Each
// (family, index) pair is derived independently via
// HMAC-SHA512(seed, salt || family || index) reduced onto the secp256k1
// scalar field — a simplified, non-hierarchical stand-in for full BIP32
// derivation: it does not support extended public keys or unhardened
// public derivation, trading that for a dependency-free implementation
// appropriate for a library that owns no wallet file format of its own.
type SeedKeyRing struct {
	seed []byte
}

// NewSeedKeyRing constructs a SeedKeyRing from a master seed. The seed is
// not copied; callers must not mutate it afterward.
func NewSeedKeyRing(seed []byte) *SeedKeyRing {
	return &SeedKeyRing{seed: seed}
}

func (r *SeedKeyRing) derivePrivKey(loc KeyLocator) *btcec.PrivateKey {
	mac := hmac.New(sha512.New, r.seed)
	mac.Write(hmacKeyDerivationSalt)

	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(loc.Family))
	binary.BigEndian.PutUint32(buf[4:8], loc.Index)
	mac.Write(buf[:])

	sum := mac.Sum(nil)
	priv, _ := btcec.PrivKeyFromBytes(sum[:32])
	return priv
}

// DeriveNextKey is not supported by SeedKeyRing: without persisted
// per-family counters there is no notion of "next". Callers that need
// sequential allocation should track an index externally and call
// DeriveKey directly.
func (r *SeedKeyRing) DeriveNextKey(keyFam KeyFamily) (KeyDescriptor, error) {
	return KeyDescriptor{}, fmt.Errorf("SeedKeyRing requires an explicit index; use DeriveKey")
}

// DeriveKey derives the key at the given locator.
func (r *SeedKeyRing) DeriveKey(keyLoc KeyLocator) (KeyDescriptor, error) {
	priv := r.derivePrivKey(keyLoc)
	return KeyDescriptor{KeyLocator: keyLoc, PubKey: priv.PubKey()}, nil
}

// DerivePrivKey derives the private key described by keyDesc's locator.
// keyDesc.PubKey is not consulted: SeedKeyRing always knows its own index.
func (r *SeedKeyRing) DerivePrivKey(keyDesc KeyDescriptor) (*btcec.PrivateKey, error) {
	return r.derivePrivKey(keyDesc.KeyLocator), nil
}

// ECDH performs scalar multiplication between the key at keyDesc's locator
// and pubKey, returning sha256 of the resulting point's compressed form.
func (r *SeedKeyRing) ECDH(keyDesc KeyDescriptor, pubKey *btcec.PublicKey) ([32]byte, error) {
	priv := r.derivePrivKey(keyDesc.KeyLocator)
	return (&PrivKeyECDH{PrivKey: priv}).ECDH(pubKey)
}

// SignMessage signs msg with the key at keyLoc, hashing once or twice with
// SHA-256 first.
func (r *SeedKeyRing) SignMessage(keyLoc KeyLocator, msg []byte,
	doubleHash bool) (*ecdsa.Signature, error) {

	priv := r.derivePrivKey(keyLoc)
	return ecdsa.Sign(priv, digestMessage(msg, doubleHash)), nil
}

// SignMessageCompact signs msg with the key at keyLoc and returns the
// signature in the compact, public-key-recoverable format.
func (r *SeedKeyRing) SignMessageCompact(keyLoc KeyLocator, msg []byte,
	doubleHash bool) ([]byte, error) {

	priv := r.derivePrivKey(keyLoc)
	return ecdsa.SignCompact(priv, digestMessage(msg, doubleHash), true), nil
}

// SignMessageSchnorr signs msg with the key at keyLoc using BIP340 Schnorr
// signing. Taproot output-key tweaking is outside this library's scope
// (script execution and address derivation are not implemented here), so
// a non-empty taprootTweak is rejected rather than silently ignored.
func (r *SeedKeyRing) SignMessageSchnorr(keyLoc KeyLocator, msg []byte,
	doubleHash bool, taprootTweak []byte, tag []byte) (*schnorr.Signature, error) {

	if len(taprootTweak) > 0 {
		return nil, fmt.Errorf("taproot tweaking is not supported")
	}

	priv := r.derivePrivKey(keyLoc)
	digest := digestMessage(msg, doubleHash)
	if len(tag) > 0 {
		digest = taggedDigest(tag, digest)
	}
	return schnorr.Sign(priv, digest)
}

func digestMessage(msg []byte, doubleHash bool) []byte {
	sum := sha256.Sum256(msg)
	if !doubleHash {
		return sum[:]
	}
	sum2 := sha256.Sum256(sum[:])
	return sum2[:]
}

func taggedDigest(tag, msg []byte) []byte {
	tagHash := chainhash.SHA256(tag)
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(msg)
	sum := h.Sum(nil)
	return sum
}

// WitnessPubKeyHashScript returns the P2WPKH output script for the given
// key descriptor's public key: OP_0 PUSH(hash160(pubkey)).
func WitnessPubKeyHashScript(desc KeyDescriptor) txscript.Script {
	hash := chainhash.Hash160(desc.PubKey.SerializeCompressed())
	return txscript.New([]txscript.Op{
		{Opcode: txscript.OP_0},
		txscript.PushData(hash[:]),
	})
}

var (
	_ KeyRing           = (*SeedKeyRing)(nil)
	_ SecretKeyRing     = (*SeedKeyRing)(nil)
	_ ECDHRing          = (*SeedKeyRing)(nil)
	_ MessageSignerRing = (*SeedKeyRing)(nil)
)
