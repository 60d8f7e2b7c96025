package keychain

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

const (
	// KeyDerivationVersionLegacy is the previous version of the key
	// derivation schema defined below. We use a version as this means that
	// we'll be able to accept new seed in the future and be able to discern
	// if the software is compatible with the version of the seed.
	KeyDerivationVersionLegacy = 0

	// KeyDerivationVersionTaproot is the most recent version of the key
	// derivation scheme that marks the introduction of the Taproot
	// derivation with BIP0086 support.
	KeyDerivationVersionTaproot = 1

	// CurrentKeyDerivationVersion is the current default key derivation
	// version that is used for new seeds.
	CurrentKeyDerivationVersion = KeyDerivationVersionTaproot

	// BIP0043Purpose is the "purpose" value used for the key derivation
	// scheme below. All keys are expected to be derived from this
	// purpose, then the particular coin type of the chain where the keys
	// are to be used. Slightly adhering to BIP0043 allows us to not
	// deviate too far from a widely used standard, and also fits into
	// existing implementations of the BIP's template.
	BIP0043Purpose = 350
)

// IsKnownVersion returns true if the given version is one of the known
// derivation scheme versions as defined by this package.
func IsKnownVersion(internalVersion uint8) bool {
	return internalVersion == KeyDerivationVersionLegacy ||
		internalVersion == KeyDerivationVersionTaproot
}

var (
	// MaxKeyRangeScan is the maximum number of keys that we'll attempt to
	// scan with if a caller knows the public key, but not the KeyLocator
	// and wishes to derive a private key.
	MaxKeyRangeScan = 100000

	// ErrCannotDerivePrivKey is returned when DerivePrivKey is unable to
	// derive a private key given only the public key and target key
	// family.
	ErrCannotDerivePrivKey = fmt.Errorf("unable to derive private key")
)

// KeyFamily represents a "family" of keys derived for a particular purpose
// above the chain object model: constructing scripts and signing for the
// outputs/inputs of package chain. These families are distinct branches
// within the HD key chain of the backing wallet. Usage of key families
// within the interface below is strict in order to promote integrability
// and the ability to restore all keys given a user master seed backup.
//
// In BIP43 terms, a (family, index) pair names the position:
//
//   - m/350'/coinType'/keyFamily'/0/index
//
// SeedKeyRing, the implementation in this package, does not derive along
// this path: it derives each (family, index) pair directly from its seed.
type KeyFamily uint32

const (
	// KeyFamilyWitnessPubKeyHash are keys whose pubkey hash is used
	// directly in a P2WPKH output script.
	KeyFamilyWitnessPubKeyHash KeyFamily = 0

	// KeyFamilyNestedWitnessPubKeyHash are keys used the same way as
	// KeyFamilyWitnessPubKeyHash, but whose consumer wraps the resulting
	// witness program in a P2SH redeem script rather than spending it
	// directly.
	KeyFamilyNestedWitnessPubKeyHash KeyFamily = 1

	// KeyFamilyScriptHash are keys whose pubkeys are combined into a
	// redeem or witness script committed to by a P2SH or P2WSH output,
	// rather than spent individually.
	KeyFamilyScriptHash KeyFamily = 2

	// KeyFamilyNodeIdentity is the family of keys used to derive a
	// long-term identity key for the peer-to-peer transport layer.
	KeyFamilyNodeIdentity KeyFamily = 3
)

// VersionZeroKeyFamilies is a slice of all the known key families for the
// first version of the key derivation schema defined in this package.
var VersionZeroKeyFamilies = []KeyFamily{
	KeyFamilyWitnessPubKeyHash,
	KeyFamilyNestedWitnessPubKeyHash,
	KeyFamilyScriptHash,
	KeyFamilyNodeIdentity,
}

// KeyLocator is a two-tuple that can be used to derive *any* key that has
// ever been used under the key derivation mechanism described in this file:
//
//   - m/350'/coinType'/keyFamily'/0/index
//
// The coin type will vary based on which chain the derived scripts target.
// The key family is an individual "account" in the nomenclature of BIP43. By
// default we assume a branch of 0 (external). Finally, the key index (which
// will vary per script and use case) is the final element which allows us to
// deterministically derive keys.
type KeyLocator struct {
	// Family is the family of key being identified.
	Family KeyFamily

	// Index is the precise index of the key being identified.
	Index uint32
}

// IsEmpty returns true if a KeyLocator is "empty". This may be the case where
// we learn of a key from a remote party for a contract, but don't know the
// precise details of its derivation (as we don't know the private key!).
func (k KeyLocator) IsEmpty() bool {
	return k.Family == 0 && k.Index == 0
}

// KeyDescriptor wraps a KeyLocator and also optionally includes a public key.
// Either the KeyLocator must be non-empty, or the public key pointer be
// non-nil. This will be used by the KeyRing interface to lookup arbitrary
// private keys, and also within the SignDescriptor struct to locate precisely
// which keys should be used for signing.
type KeyDescriptor struct {
	// KeyLocator is the internal KeyLocator of the descriptor.
	KeyLocator

	// PubKey is an optional public key that fully describes a target key.
	// If this is nil, the KeyLocator MUST NOT be empty.
	PubKey *btcec.PublicKey
}

// KeyRing is the primary interface that will be used to derive the public
// keys used within the peer-to-peer network, and also within any created
// contracts. SeedKeyRing implements it from a private seed, so its public
// keys cannot be derived from an extended public key alone.
type KeyRing interface {
	// DeriveNextKey attempts to derive the *next* key within the key
	// family (account in BIP43) specified. This method should return the
	// next external child within this branch.
	DeriveNextKey(keyFam KeyFamily) (KeyDescriptor, error)

	// DeriveKey attempts to derive an arbitrary key specified by the
	// passed KeyLocator. This may be used in several recovery scenarios,
	// or when manually rotating something like our current default node
	// key.
	DeriveKey(keyLoc KeyLocator) (KeyDescriptor, error)
}

// SecretKeyRing is a ring similar to the regular KeyRing interface, but it is
// also able to derive *private keys*. As this is a super-set of the regular
// KeyRing, we also expect the SecretKeyRing to implement the fully KeyRing
// interface. The methods in this struct may be used to extract the node key in
// order to accept inbound network connections, or to do manual signing for
// recovery purposes.
type SecretKeyRing interface {
	KeyRing

	ECDHRing

	MessageSignerRing

	// DerivePrivKey attempts to derive the private key that corresponds to
	// the passed key descriptor.  If the public key is set, then this
	// method will perform an in-order scan over the key set, with a max of
	// MaxKeyRangeScan keys. In order for this to work, the caller MUST set
	// the KeyFamily within the partially populated KeyLocator.
	DerivePrivKey(keyDesc KeyDescriptor) (*btcec.PrivateKey, error)
}

// MessageSignerRing is an interface that abstracts away basic low-level ECDSA
// signing on keys within a key ring.
type MessageSignerRing interface {
	// SignMessage signs the given message, single or double SHA256 hashing
	// it first, with the private key described in the key locator.
	SignMessage(keyLoc KeyLocator, msg []byte,
		doubleHash bool) (*ecdsa.Signature, error)

	// SignMessageCompact signs the given message, single or double SHA256
	// hashing it first, with the private key described in the key locator
	// and returns the signature in the compact, public key recoverable
	// format.
	SignMessageCompact(keyLoc KeyLocator, msg []byte,
		doubleHash bool) ([]byte, error)

	// SignMessageSchnorr signs the given message, single or double SHA256
	// hashing it first, with the private key described in the key locator
	// and the optional Taproot tweak applied to the private key.
	SignMessageSchnorr(keyLoc KeyLocator, msg []byte,
		doubleHash bool, taprootTweak []byte,
		tag []byte) (*schnorr.Signature, error)
}

// SingleKeyMessageSigner is an abstraction interface that hides the
// implementation of the low-level ECDSA signing operations by wrapping a
// single, specific private key.
type SingleKeyMessageSigner interface {
	// PubKey returns the public key of the wrapped private key.
	PubKey() *btcec.PublicKey

	// KeyLocator returns the locator that describes the wrapped private
	// key.
	KeyLocator() KeyLocator

	// SignMessage signs the given message, single or double SHA256 hashing
	// it first, with the wrapped private key.
	SignMessage(message []byte, doubleHash bool) (*ecdsa.Signature, error)

	// SignMessageCompact signs the given message, single or double SHA256
	// hashing it first, with the wrapped private key and returns the
	// signature in the compact, public key recoverable format.
	SignMessageCompact(message []byte, doubleHash bool) ([]byte, error)
}

// ECDHRing is an interface that abstracts away basic low-level ECDH shared key
// generation on keys within a key ring.
type ECDHRing interface {
	// ECDH performs a scalar multiplication (ECDH-like operation) between
	// the target key descriptor and remote public key. The output
	// returned will be the sha256 of the resulting shared point serialized
	// in compressed format. If k is our private key, and P is the public
	// key, we perform the following operation:
	//
	//  sx := k*P
	//  s := sha256(sx.SerializeCompressed())
	ECDH(keyDesc KeyDescriptor, pubKey *btcec.PublicKey) ([32]byte, error)
}

// SingleKeyECDH is an abstraction interface that hides the implementation of an
// ECDH operation by wrapping a single, specific private key.
type SingleKeyECDH interface {
	// PubKey returns the public key of the wrapped private key.
	PubKey() *btcec.PublicKey

	// ECDH performs a scalar multiplication (ECDH-like operation) between
	// the wrapped private key and remote public key. The output returned
	// will be the sha256 of the resulting shared point serialized in
	// compressed format.
	ECDH(pubKey *btcec.PublicKey) ([32]byte, error)
}

