package txscript

// sigOpsOversizedLimit is the sigop count attributed to a script whose raw
// payload exceeds MaxScriptSize. Such a script cannot have been produced by
// Decode (which rejects it as invalid), but a builder-constructed Script
// could still exceed the limit, and sigop accounting must saturate rather
// than iterate an unbounded operation list.
const sigOpsOversizedLimit = 20000

// SigOps returns the signature-operation count for s. When accurate is
// true, OP_CHECKMULTISIG/OP_CHECKMULTISIGVERIFY contribute the operand
// count of the immediately preceding small-integer push (OP_N); when
// false, they saturate at 20 regardless of that operand, matching the
// conservative pre-BIP16 accounting consensus still falls back to for
// non-P2SH contexts. The count never overflows: accumulation saturates.
func (s Script) SigOps(accurate bool) int {
	if len(s.raw) > MaxScriptSize {
		return sigOpsOversizedLimit
	}

	var count int
	var lastSmallInt int
	haveSmallInt := false

	for _, op := range s.ops {
		switch op.Opcode {
		case OP_CHECKSIG, OP_CHECKSIGVERIFY:
			count = saturatingAdd(count, 1)
		case OP_CHECKMULTISIG, OP_CHECKMULTISIGVERIFY:
			n := 20
			if accurate && haveSmallInt {
				n = lastSmallInt
			}
			count = saturatingAdd(count, n)
		}

		if v, ok := isSmallInt(op.Opcode); ok {
			lastSmallInt = v
			haveSmallInt = true
		} else {
			haveSmallInt = false
		}
	}

	return count
}

func saturatingAdd(a, b int) int {
	sum := a + b
	if sum < a {
		return int(^uint(0) >> 1)
	}
	return sum
}
