package txscript

import (
	"github.com/btcgateway/chainmodel/wire"
)

// MaxScriptSize is the consensus-enforced maximum serialized length of a
// script's payload, in bytes. A declared length above this during decode
// is a parse error, not merely a prefailed script.
const MaxScriptSize = wire.MaxScriptSize

// Op is a single parsed script operation: either a bare opcode (Data is
// nil) or a push-data opcode together with the bytes it pushes.
type Op struct {
	Opcode byte
	Data   []byte
}

// IsPush reports whether this operation is one of the four push-data
// families described in the wire format: OP_DATA_1..OP_DATA_75, or
// OP_PUSHDATA1/2/4.
func (o Op) IsPush() bool {
	return o.Opcode >= OP_DATA_1 && o.Opcode <= OP_DATA_75 ||
		o.Opcode == OP_PUSHDATA1 ||
		o.Opcode == OP_PUSHDATA2 ||
		o.Opcode == OP_PUSHDATA4
}

// Equal reports whether two operations are identical in opcode and, for
// push operations, payload.
func (o Op) Equal(other Op) bool {
	if o.Opcode != other.Opcode {
		return false
	}
	if len(o.Data) != len(other.Data) {
		return false
	}
	for i := range o.Data {
		if o.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// PushData returns the canonical operation that pushes data onto the
// stack, choosing OP_DATA_N for payloads up to 75 bytes and the smallest
// applicable OP_PUSHDATA1/2/4 otherwise.
func PushData(data []byte) Op {
	return Op{Opcode: pushOpcode(len(data)), Data: data}
}

func pushOpcode(n int) byte {
	switch {
	case n <= 75:
		return byte(n)
	case n <= 0xFF:
		return OP_PUSHDATA1
	case n <= 0xFFFF:
		return OP_PUSHDATA2
	default:
		return OP_PUSHDATA4
	}
}

// Script is an ordered sequence of operations, together with the raw bytes
// it was built from or decoded from. A script whose declared push length
// overran the available bytes on decode is marked prefailed: its Ops are
// empty but its raw bytes are retained for identity purposes.
type Script struct {
	raw       []byte
	ops       []Op
	prefailed bool
}

// New builds a well-formed Script from an explicit operation list,
// encoding it to its canonical raw form.
func New(ops []Op) Script {
	w := wire.NewWriter(0)
	for _, op := range ops {
		w.WriteUint8(op.Opcode)
		if op.IsPush() {
			writePushLength(w, op.Opcode, len(op.Data))
			w.WriteBytes(op.Data)
		}
	}
	return Script{raw: w.Bytes(), ops: ops}
}

func writePushLength(w *wire.Writer, opcode byte, n int) {
	switch opcode {
	case OP_PUSHDATA1:
		w.WriteUint8(uint8(n))
	case OP_PUSHDATA2:
		w.WriteUint16(uint16(n))
	case OP_PUSHDATA4:
		w.WriteUint32(uint32(n))
	}
}

// Decode reads a script from r: a compact-size payload length followed by
// that many bytes, which are then parsed into operations. A declared
// length above MaxScriptSize marks the reader invalid. A payload whose
// push operations overrun the declared window yields a prefailed script
// without invalidating the reader — a prefailed script is accepted on the
// wire per the chain model's failure semantics.
func Decode(r *wire.Reader) Script {
	n := r.ReadCompactSize()
	if !r.IsValid() {
		return Script{}
	}
	if n > MaxScriptSize {
		r.SetInvalid()
		return Script{}
	}
	raw := r.ReadBytes(int(n))
	if !r.IsValid() {
		return Script{}
	}
	return parse(raw)
}

// Encode writes s's compact-size-prefixed raw bytes to w. This is the
// inverse of Decode and always succeeds: encode(decode(B)) == B is a
// structural consequence of Decode retaining raw bytes verbatim.
func Encode(w *wire.Writer, s Script) {
	w.WriteCompactSize(uint64(len(s.raw)))
	w.WriteBytes(s.raw)
}

// ParseRaw builds a Script directly from a bare byte slice, with no
// compact-size wrapper — for scripts embedded as push data inside another
// script or witness, such as a P2SH redeem script or a P2WSH witness
// script, rather than read from the wire directly.
func ParseRaw(raw []byte) Script {
	return parse(raw)
}

// parse walks raw and builds the operation list, marking the script
// prefailed if a push declares more bytes than remain.
func parse(raw []byte) Script {
	ops := make([]Op, 0, len(raw))
	pos := 0
	for pos < len(raw) {
		opcode := raw[pos]
		pos++

		var dataLen int
		switch {
		case opcode >= OP_DATA_1 && opcode <= OP_DATA_75:
			dataLen = int(opcode)
		case opcode == OP_PUSHDATA1:
			if pos+1 > len(raw) {
				return Script{raw: raw, prefailed: true}
			}
			dataLen = int(raw[pos])
			pos++
		case opcode == OP_PUSHDATA2:
			if pos+2 > len(raw) {
				return Script{raw: raw, prefailed: true}
			}
			dataLen = int(raw[pos]) | int(raw[pos+1])<<8
			pos += 2
		case opcode == OP_PUSHDATA4:
			if pos+4 > len(raw) {
				return Script{raw: raw, prefailed: true}
			}
			dataLen = int(raw[pos]) | int(raw[pos+1])<<8 |
				int(raw[pos+2])<<16 | int(raw[pos+3])<<24
			pos += 4
		default:
			ops = append(ops, Op{Opcode: opcode})
			continue
		}

		if pos+dataLen > len(raw) || dataLen < 0 {
			return Script{raw: raw, prefailed: true}
		}
		data := make([]byte, dataLen)
		copy(data, raw[pos:pos+dataLen])
		pos += dataLen
		ops = append(ops, Op{Opcode: opcode, Data: data})
	}
	return Script{raw: raw, ops: ops}
}

// Bytes returns the script's raw payload bytes (without the compact-size
// length prefix Decode/Encode add).
func (s Script) Bytes() []byte {
	return s.raw
}

// Ops returns the parsed operation list. Empty for a prefailed script.
func (s Script) Ops() []Op {
	return s.ops
}

// IsPrefailed reports whether the script's declared length overran its
// available bytes during decode.
func (s Script) IsPrefailed() bool {
	return s.prefailed
}

// Len returns the length of the script's raw payload in bytes.
func (s Script) Len() int {
	return len(s.raw)
}

// SerializeSize returns the number of bytes Encode would write, including
// the compact-size length prefix.
func (s Script) SerializeSize() int {
	return wire.VarBytesLen(len(s.raw))
}

// Equal reports structural equality over the operation list, per the
// chain model's content-addressed script identity. Two prefailed scripts
// both report an empty operation list and therefore compare equal to each
// other regardless of their differing raw bytes; callers that need to
// distinguish prefailed scripts by content should compare Bytes directly.
func (s Script) Equal(other Script) bool {
	if len(s.ops) != len(other.ops) {
		return false
	}
	for i := range s.ops {
		if !s.ops[i].Equal(other.ops[i]) {
			return false
		}
	}
	return true
}
