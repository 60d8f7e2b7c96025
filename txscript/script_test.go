package txscript

import (
	"encoding/hex"
	"testing"

	"github.com/btcgateway/chainmodel/wire"
	"github.com/stretchr/testify/require"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestPayToPublicKeyHashPattern(t *testing.T) {
	pkHash := mustHex("62e907b15cbf27d5425399ebf6f0fb50ebb88f18")
	script := New([]Op{
		{Opcode: OP_DUP},
		{Opcode: OP_HASH160},
		PushData(pkHash),
		{Opcode: OP_EQUALVERIFY},
		{Opcode: OP_CHECKSIG},
	})

	require.True(t, script.IsPayToPublicKeyHash())
	require.False(t, script.IsPayToScriptHash())
	require.Equal(t, 1, script.SigOps(true))
}

func TestPayToScriptHashPattern(t *testing.T) {
	script := New([]Op{
		{Opcode: OP_HASH160},
		PushData(make([]byte, 20)),
		{Opcode: OP_EQUAL},
	})
	require.True(t, script.IsPayToScriptHash())
	require.False(t, script.IsPayToPublicKeyHash())
}

func TestWitnessProgramPatterns(t *testing.T) {
	p2wpkh := New([]Op{{Opcode: OP_0}, PushData(make([]byte, 20))})
	require.True(t, p2wpkh.IsPayToWitnessPubKeyHash())
	require.False(t, p2wpkh.IsPayToWitnessScriptHash())

	p2wsh := New([]Op{{Opcode: OP_0}, PushData(make([]byte, 32))})
	require.True(t, p2wsh.IsPayToWitnessScriptHash())
	require.False(t, p2wsh.IsPayToWitnessPubKeyHash())
}

func TestMultisigPattern(t *testing.T) {
	pk1 := make([]byte, 33)
	pk2 := make([]byte, 33)
	script := New([]Op{
		{Opcode: OP_1},
		PushData(pk1),
		PushData(pk2),
		{Opcode: OP_2},
		{Opcode: OP_CHECKMULTISIG},
	})
	require.True(t, script.IsMultisig())
	require.Equal(t, 2, script.SigOps(true))
	require.Equal(t, 20, script.SigOps(false))
}

func TestNullDataPattern(t *testing.T) {
	bare := New([]Op{{Opcode: OP_RETURN}})
	require.True(t, bare.IsNullData())
	require.True(t, bare.IsUnspendable())

	withPush := New([]Op{{Opcode: OP_RETURN}, PushData([]byte("hello"))})
	require.True(t, withPush.IsNullData())
}

func TestCommitmentPattern(t *testing.T) {
	var commitment [32]byte
	for i := range commitment {
		commitment[i] = byte(i)
	}
	payload := append(append([]byte{}, WitnessCommitmentMagic[:]...), commitment[:]...)
	script := New([]Op{{Opcode: OP_RETURN}, PushData(payload)})

	require.True(t, script.IsCommitmentPattern())
	got, ok := script.CommitmentHash()
	require.True(t, ok)
	require.Equal(t, commitment, got)
}

func TestPrefailedScriptRetainsRawBytes(t *testing.T) {
	// OP_PUSHDATA1 declares 10 bytes but only 2 remain.
	raw := []byte{OP_PUSHDATA1, 10, 0x01, 0x02}
	w := wire.NewWriter(0)
	w.WriteCompactSize(uint64(len(raw)))
	w.WriteBytes(raw)

	r := wire.NewReader(w.Bytes())
	script := Decode(r)

	require.True(t, r.IsValid())
	require.True(t, script.IsPrefailed())
	require.Empty(t, script.Ops())
	require.Equal(t, raw, script.Bytes())
}

func TestScriptCodecRoundTrip(t *testing.T) {
	script := New([]Op{
		{Opcode: OP_DUP},
		{Opcode: OP_HASH160},
		PushData(make([]byte, 20)),
		{Opcode: OP_EQUALVERIFY},
		{Opcode: OP_CHECKSIG},
	})

	w := wire.NewWriter(0)
	Encode(w, script)

	r := wire.NewReader(w.Bytes())
	decoded := Decode(r)

	require.True(t, r.IsValid())
	require.True(t, decoded.Equal(script))
	require.Equal(t, script.Bytes(), decoded.Bytes())

	w2 := wire.NewWriter(0)
	Encode(w2, decoded)
	require.Equal(t, w.Bytes(), w2.Bytes())
}

func TestOversizedScriptDeclarationInvalidatesReader(t *testing.T) {
	w := wire.NewWriter(0)
	w.WriteCompactSize(MaxScriptSize + 1)

	r := wire.NewReader(w.Bytes())
	Decode(r)
	require.False(t, r.IsValid())
}
