package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcgateway/chainmodel/chainhash"
	"github.com/btcgateway/chainmodel/txscript"
	"github.com/btcgateway/chainmodel/wire"
)

func coinbaseTx(witnessNonce []byte, commitment [32]byte) Transaction {
	payload := append(append([]byte{}, txscript.WitnessCommitmentMagic[:]...), commitment[:]...)
	commitScript := txscript.New([]txscript.Op{
		{Opcode: txscript.OP_RETURN},
		txscript.PushData(payload),
	})

	in := Input{Previous: CoinbaseOutpoint(), Sequence: MaxSequence}
	if witnessNonce != nil {
		in.Witness = NewWitness([][]byte{witnessNonce})
	}

	return Transaction{
		Version: 1,
		Inputs:  []Input{in},
		Outputs: []Output{
			{Value: 5000000000, Script: p2pkhScript(make([]byte, 20))},
			{Value: 0, Script: commitScript},
		},
	}
}

func TestBlockValidCoinbasePosition(t *testing.T) {
	block := Block{
		Header: Header{Version: 1},
		Transactions: []Transaction{
			coinbaseTx(nil, [32]byte{}),
			{
				Version: 1,
				Inputs:  []Input{{Previous: dummyOutpoint(1), Sequence: MaxSequence}},
				Outputs: []Output{{Value: 10, Script: p2pkhScript(make([]byte, 20))}},
			},
		},
	}
	require.True(t, block.IsValid())
}

func TestBlockInvalidWhenSecondTxIsCoinbase(t *testing.T) {
	block := Block{
		Header: Header{Version: 1},
		Transactions: []Transaction{
			coinbaseTx(nil, [32]byte{}),
			coinbaseTx(nil, [32]byte{}),
		},
	}
	require.False(t, block.IsValid())
}

func TestBlockCodecRoundTrip(t *testing.T) {
	block := Block{
		Header: Header{Version: 1, Bits: 0x1d00ffff},
		Transactions: []Transaction{
			coinbaseTx(nil, [32]byte{}),
		},
	}

	w := wire.NewWriter(0)
	EncodeBlock(w, block)

	r := wire.NewReader(w.Bytes())
	got := DecodeBlock(r)
	require.True(t, r.IsValid())
	require.True(t, block.Header.Equal(got.Header))
	require.Len(t, got.Transactions, 1)
	require.True(t, block.Transactions[0].Equal(got.Transactions[0]))
}

func TestVerifyWitnessCommitment(t *testing.T) {
	nonWitnessTx := Transaction{
		Version: 1,
		Inputs:  []Input{{Previous: dummyOutpoint(1), Sequence: MaxSequence}},
		Outputs: []Output{{Value: 10, Script: p2pkhScript(make([]byte, 20))}},
	}

	nonce := make([]byte, 32)
	for i := range nonce {
		nonce[i] = byte(i)
	}

	txs := []Transaction{coinbaseTx(nonce, [32]byte{}), nonWitnessTx}
	witnessRoot := WitnessMerkleRoot(txs)

	var buf [64]byte
	copy(buf[:32], witnessRoot[:])
	copy(buf[32:], nonce)
	expected := chainhash.Hash256(buf[:])

	block := Block{
		Header:       Header{Version: 1},
		Transactions: []Transaction{coinbaseTx(nonce, expected), nonWitnessTx},
	}

	valid, present := VerifyWitnessCommitment(block)
	require.True(t, present)
	require.True(t, valid)
}

func TestVerifyWitnessCommitmentAbsent(t *testing.T) {
	block := Block{
		Header: Header{Version: 1},
		Transactions: []Transaction{
			{
				Version: 1,
				Inputs:  []Input{{Previous: CoinbaseOutpoint(), Sequence: MaxSequence}},
				Outputs: []Output{{Value: 10, Script: p2pkhScript(make([]byte, 20))}},
			},
		},
	}
	_, present := VerifyWitnessCommitment(block)
	require.False(t, present)
}
