package chain

import "github.com/btcgateway/chainmodel/chainhash"

// MerkleRoot computes the root of the binary hash tree over leaves,
// pairing adjacent hashes with Hash256(left || right) at each level and
// duplicating the final hash of an odd-length level to pair with itself.
// The root of a single leaf is that leaf. MerkleRoot of an empty slice
// returns the zero hash.
func MerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}
	level := make([]chainhash.Hash, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]chainhash.Hash, len(level)/2)
		for i := range next {
			var buf [2 * chainhash.Size]byte
			copy(buf[:chainhash.Size], level[2*i][:])
			copy(buf[chainhash.Size:], level[2*i+1][:])
			next[i] = chainhash.Hash256(buf[:])
		}
		level = next
	}
	return level[0]
}

// TransactionMerkleRoot returns the merkle root over each transaction's
// TxID, in order — the root carried by a block header.
func TransactionMerkleRoot(txs []Transaction) chainhash.Hash {
	leaves := make([]chainhash.Hash, len(txs))
	for i, tx := range txs {
		leaves[i] = tx.TxID()
	}
	return MerkleRoot(leaves)
}

// WitnessMerkleRoot returns the merkle root used by the BIP141 witness
// commitment: the root over each transaction's WTxID, except that the
// coinbase transaction — which cannot commit to its own witness — is
// represented by the all-zero hash at position 0.
func WitnessMerkleRoot(txs []Transaction) chainhash.Hash {
	leaves := make([]chainhash.Hash, len(txs))
	for i, tx := range txs {
		if i == 0 {
			leaves[i] = chainhash.Hash{}
			continue
		}
		leaves[i] = tx.WTxID()
	}
	return MerkleRoot(leaves)
}

// VerifyWitnessCommitment reports whether block's coinbase transaction
// carries a valid BIP141 witness commitment: the coinbase's final witness
// element must be a 32-byte nonce, and one of its output scripts must
// match the commitment pattern and embed Hash256(witnessRoot || nonce),
// where witnessRoot is WitnessMerkleRoot of the block's transactions. A
// block with no transactions, or whose coinbase carries no witness
// nonce, has nothing to commit and is reported as having no commitment.
func VerifyWitnessCommitment(block Block) (valid bool, present bool) {
	if len(block.Transactions) == 0 {
		return false, false
	}
	coinbase := block.Transactions[0]
	if !coinbase.IsCoinbase() || len(coinbase.Inputs) == 0 {
		return false, false
	}
	nonce := coinbase.Inputs[0].Witness.LastElement()
	if len(nonce) != 32 {
		return false, false
	}

	var commitment [32]byte
	found := false
	for _, out := range coinbase.Outputs {
		if hash, ok := out.CommittedHash(); ok {
			commitment = hash
			found = true
			break
		}
	}
	if !found {
		return false, false
	}

	witnessRoot := WitnessMerkleRoot(block.Transactions)
	var buf [64]byte
	copy(buf[:32], witnessRoot[:])
	copy(buf[32:], nonce)
	expected := chainhash.Hash256(buf[:])

	return [32]byte(expected) == commitment, true
}
