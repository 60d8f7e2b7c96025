package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcgateway/chainmodel/chainhash"
	"github.com/btcgateway/chainmodel/txscript"
	"github.com/btcgateway/chainmodel/wire"
)

func dummyOutpoint(seed byte) Outpoint {
	var o Outpoint
	o.Hash[0] = seed
	o.Index = uint32(seed)
	return o
}

func TestSegwitDetectionAndEncoding(t *testing.T) {
	tx := Transaction{
		Version: 1,
		Inputs: []Input{
			{Previous: dummyOutpoint(1), Sequence: MaxSequence},
			{
				Previous: dummyOutpoint(2),
				Sequence: MaxSequence,
				Witness:  NewWitness([][]byte{{0xAB, 0xCD}}),
			},
		},
		Outputs: []Output{
			{Value: 1000, Script: txscript.New(nil)},
		},
	}

	require.True(t, tx.IsSegwit())

	w := wire.NewWriter(0)
	EncodeTransaction(w, tx)
	raw := w.Bytes()

	require.Equal(t, byte(0x00), raw[4], "marker byte")
	require.Equal(t, byte(0x01), raw[5], "flag byte")

	r := wire.NewReader(raw)
	got := DecodeTransaction(r)
	require.True(t, r.IsValid())
	require.True(t, tx.Equal(got))
	require.True(t, got.Inputs[0].Witness.IsEmpty())
	require.False(t, got.Inputs[1].Witness.IsEmpty())
}

func TestLegacyAndSegwitIdentityDiffer(t *testing.T) {
	tx := Transaction{
		Version: 1,
		Inputs: []Input{
			{Previous: dummyOutpoint(1), Sequence: MaxSequence},
			{
				Previous: dummyOutpoint(2),
				Sequence: MaxSequence,
				Witness:  NewWitness([][]byte{{0xAB, 0xCD}}),
			},
		},
		Outputs: []Output{
			{Value: 1000, Script: txscript.New(nil)},
		},
	}

	txid := tx.TxID()
	wtxid := tx.WTxID()
	require.NotEqual(t, txid, wtxid)

	legacyInputs := make([]Input, len(tx.Inputs))
	for i, in := range tx.Inputs {
		legacyInputs[i] = Input{Previous: in.Previous, Script: in.Script, Sequence: in.Sequence}
	}
	legacyTx := Transaction{Version: tx.Version, Inputs: legacyInputs, Outputs: tx.Outputs}
	require.Equal(t, chainhash.Hash256(encodeLegacyBytes(legacyTx)), txid)
}

func encodeLegacyBytes(tx Transaction) []byte {
	w := wire.NewWriter(0)
	EncodeTransaction(w, tx)
	return w.Bytes()
}

func TestNonSegwitWTxIDEqualsTxID(t *testing.T) {
	tx := Transaction{
		Version: 1,
		Inputs:  []Input{{Previous: dummyOutpoint(1), Sequence: MaxSequence}},
		Outputs: []Output{{Value: 500, Script: txscript.New(nil)}},
	}
	require.Equal(t, tx.TxID(), tx.WTxID())
}

func TestZeroInputSegwitAmbiguityFallsBackToLegacy(t *testing.T) {
	w := wire.NewWriter(0)
	w.WriteUint32(1)
	w.WriteUint8(0x00)
	w.WriteUint8(0x01)
	w.WriteCompactSize(0)
	w.WriteCompactSize(1)
	EncodeOutput(w, Output{Value: 100, Script: txscript.New(nil)})
	w.WriteUint32(0)

	r := wire.NewReader(w.Bytes())
	tx := DecodeTransaction(r)
	require.True(t, r.IsValid())
	require.Len(t, tx.Inputs, 0)
	require.Len(t, tx.Outputs, 1)
	require.False(t, tx.IsValid())
}

func TestTransactionCodecRoundTrip(t *testing.T) {
	tx := Transaction{
		Version: 2,
		Inputs: []Input{
			{Previous: dummyOutpoint(9), Sequence: 0, Witness: NewWitness([][]byte{{1, 2, 3}, {4}})},
		},
		Outputs: []Output{
			{Value: 42, Script: p2pkhScript(make([]byte, 20))},
		},
		LockTime: 500000,
	}

	w := wire.NewWriter(0)
	EncodeTransaction(w, tx)

	r := wire.NewReader(w.Bytes())
	got := DecodeTransaction(r)
	require.True(t, r.IsValid())
	require.True(t, tx.Equal(got))
}
