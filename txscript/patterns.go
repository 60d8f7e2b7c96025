package txscript

// WitnessCommitmentMagic is the 4-byte header that marks a BIP141 witness
// commitment push inside a coinbase OP_RETURN output.
var WitnessCommitmentMagic = [4]byte{0xaa, 0x21, 0xa9, 0xed}

// IsPayToPublicKeyHash reports whether s is the standard P2PKH template:
// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG.
func (s Script) IsPayToPublicKeyHash() bool {
	ops := s.ops
	return len(ops) == 5 &&
		ops[0].Opcode == OP_DUP &&
		ops[1].Opcode == OP_HASH160 &&
		ops[2].IsPush() && len(ops[2].Data) == 20 &&
		ops[3].Opcode == OP_EQUALVERIFY &&
		ops[4].Opcode == OP_CHECKSIG
}

// IsPayToScriptHash reports whether s is the standard P2SH (BIP16)
// template: OP_HASH160 <20 bytes> OP_EQUAL.
func (s Script) IsPayToScriptHash() bool {
	ops := s.ops
	return len(ops) == 3 &&
		ops[0].Opcode == OP_HASH160 &&
		ops[1].IsPush() && len(ops[1].Data) == 20 &&
		ops[2].Opcode == OP_EQUAL
}

// IsWitnessProgram reports whether s is a BIP141 witness program: a small
// integer push (the witness version, 0..16) followed by a single data push
// between 2 and 40 bytes. It returns the version and program on success.
func (s Script) IsWitnessProgram() (version int, program []byte, ok bool) {
	ops := s.ops
	if len(ops) != 2 {
		return 0, nil, false
	}
	v, isSmall := isSmallInt(ops[0].Opcode)
	if !isSmall {
		return 0, nil, false
	}
	if !ops[1].IsPush() || len(ops[1].Data) < 2 || len(ops[1].Data) > 40 {
		return 0, nil, false
	}
	return v, ops[1].Data, true
}

// IsPayToWitnessPubKeyHash reports whether s is a version-0, 20-byte
// witness program (P2WPKH).
func (s Script) IsPayToWitnessPubKeyHash() bool {
	version, program, ok := s.IsWitnessProgram()
	return ok && version == 0 && len(program) == 20
}

// IsPayToWitnessScriptHash reports whether s is a version-0, 32-byte
// witness program (P2WSH).
func (s Script) IsPayToWitnessScriptHash() bool {
	version, program, ok := s.IsWitnessProgram()
	return ok && version == 0 && len(program) == 32
}

// IsMultisig reports whether s is a bare M-of-N multisig template:
// OP_M <pubkey1> .. <pubkeyN> OP_N OP_CHECKMULTISIG, with 1 <= M <= N <= 20.
func (s Script) IsMultisig() bool {
	ops := s.ops
	if len(ops) < 4 {
		return false
	}
	m, ok := isSmallInt(ops[0].Opcode)
	if !ok || m < 1 {
		return false
	}
	last := ops[len(ops)-1]
	if last.Opcode != OP_CHECKMULTISIG {
		return false
	}
	nOp := ops[len(ops)-2]
	n, ok := isSmallInt(nOp.Opcode)
	if !ok || n < m || n > 20 {
		return false
	}
	pubkeys := ops[1 : len(ops)-2]
	if len(pubkeys) != n {
		return false
	}
	for _, op := range pubkeys {
		if !op.IsPush() {
			return false
		}
	}
	return true
}

// maxNullDataSize is the largest payload a null-data script may push.
const maxNullDataSize = 80

// IsNullData reports whether s is a provably unspendable data-carrier
// script: OP_RETURN optionally followed by a single small push (at most
// maxNullDataSize bytes).
func (s Script) IsNullData() bool {
	ops := s.ops
	if len(ops) == 1 {
		return ops[0].Opcode == OP_RETURN
	}
	if len(ops) == 2 {
		return ops[0].Opcode == OP_RETURN && ops[1].IsPush() &&
			len(ops[1].Data) <= maxNullDataSize
	}
	return false
}

// IsCommitmentPattern reports whether s is a BIP141 witness-commitment
// output script: OP_RETURN followed by a push of exactly 36 bytes whose
// first 4 bytes equal WitnessCommitmentMagic.
func (s Script) IsCommitmentPattern() bool {
	ops := s.ops
	if len(ops) != 2 {
		return false
	}
	if ops[0].Opcode != OP_RETURN {
		return false
	}
	if !ops[1].IsPush() || len(ops[1].Data) != 36 {
		return false
	}
	return [4]byte(ops[1].Data[:4]) == WitnessCommitmentMagic
}

// CommitmentHash returns the 32-byte commitment hash carried by a script
// matching IsCommitmentPattern, and false otherwise.
func (s Script) CommitmentHash() ([32]byte, bool) {
	if !s.IsCommitmentPattern() {
		return [32]byte{}, false
	}
	var hash [32]byte
	copy(hash[:], s.ops[1].Data[4:])
	return hash, true
}

// IsUnspendable reports whether s can never enter the UTXO set: it begins
// with OP_RETURN, or its payload exceeds the maximum script size.
func (s Script) IsUnspendable() bool {
	if len(s.raw) > MaxScriptSize {
		return true
	}
	if len(s.ops) > 0 && s.ops[0].Opcode == OP_RETURN {
		return true
	}
	return false
}
