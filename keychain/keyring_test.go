package keychain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSeed() []byte {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	return seed
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	ring := NewSeedKeyRing(testSeed())
	loc := KeyLocator{Family: KeyFamilyWitnessPubKeyHash, Index: 7}

	first, err := ring.DeriveKey(loc)
	require.NoError(t, err)

	second, err := ring.DeriveKey(loc)
	require.NoError(t, err)

	require.True(t, first.PubKey.IsEqual(second.PubKey))
}

func TestDeriveKeyVariesByLocator(t *testing.T) {
	ring := NewSeedKeyRing(testSeed())

	a, err := ring.DeriveKey(KeyLocator{Family: KeyFamilyWitnessPubKeyHash, Index: 0})
	require.NoError(t, err)
	b, err := ring.DeriveKey(KeyLocator{Family: KeyFamilyWitnessPubKeyHash, Index: 1})
	require.NoError(t, err)
	c, err := ring.DeriveKey(KeyLocator{Family: KeyFamilyScriptHash, Index: 0})
	require.NoError(t, err)

	require.False(t, a.PubKey.IsEqual(b.PubKey))
	require.False(t, a.PubKey.IsEqual(c.PubKey))
}

func TestSignMessageVerifiesAgainstDerivedPubKey(t *testing.T) {
	ring := NewSeedKeyRing(testSeed())
	loc := KeyLocator{Family: KeyFamilyNodeIdentity, Index: 0}

	desc, err := ring.DeriveKey(loc)
	require.NoError(t, err)

	msg := []byte("identity challenge")
	sig, err := ring.SignMessage(loc, msg, true)
	require.NoError(t, err)

	digest := digestMessage(msg, true)
	require.True(t, sig.Verify(digest, desc.PubKey))
}

func TestWitnessPubKeyHashScriptIsP2WPKH(t *testing.T) {
	ring := NewSeedKeyRing(testSeed())
	desc, err := ring.DeriveKey(KeyLocator{Family: KeyFamilyWitnessPubKeyHash, Index: 0})
	require.NoError(t, err)

	script := WitnessPubKeyHashScript(desc)
	require.True(t, script.IsPayToWitnessPubKeyHash())
}

func TestECDHIsSymmetric(t *testing.T) {
	ring := NewSeedKeyRing(testSeed())
	locA := KeyLocator{Family: KeyFamilyNodeIdentity, Index: 1}
	locB := KeyLocator{Family: KeyFamilyNodeIdentity, Index: 2}

	descA, err := ring.DeriveKey(locA)
	require.NoError(t, err)
	descB, err := ring.DeriveKey(locB)
	require.NoError(t, err)

	sharedAB, err := ring.ECDH(KeyDescriptor{KeyLocator: locA}, descB.PubKey)
	require.NoError(t, err)
	sharedBA, err := ring.ECDH(KeyDescriptor{KeyLocator: locB}, descA.PubKey)
	require.NoError(t, err)

	require.Equal(t, sharedAB, sharedBA)
}
