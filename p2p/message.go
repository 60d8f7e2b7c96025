// Package p2p frames chain-object payloads for transport: the 24-byte
// message header the network layer prepends to every payload, and a
// Transport abstraction that hands framed messages to a decoder. It does
// not open a socket, discover peers, or perform the version handshake —
// those remain the concern of the surrounding daemon, not this library.
package p2p

import (
	"encoding/binary"
	"fmt"

	"github.com/btcgateway/chainmodel/chainhash"
)

// HeaderSize is the fixed size of a message header: magic(4) || command(12)
// || length(4) || checksum(4).
const HeaderSize = 24

// commandSize is the fixed width of the null-padded ASCII command field.
const commandSize = 12

// MaxPayloadSize bounds a single message's payload, matching the block
// weight limit the chain object model already enforces on decode.
const MaxPayloadSize = 4_000_000

// Header is the fixed-size envelope that precedes every message payload.
type Header struct {
	Magic    uint32
	Command  string
	Length   uint32
	Checksum [4]byte
}

// Checksum returns the first 4 bytes of Hash256(payload), the value a
// correctly-formed Header.Checksum must match.
func Checksum(payload []byte) [4]byte {
	sum := chainhash.Hash256(payload)
	var out [4]byte
	copy(out[:], sum[:4])
	return out
}

// EncodeHeader writes h's 24-byte encoding.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	copy(buf[4:4+commandSize], []byte(h.Command))
	binary.LittleEndian.PutUint32(buf[16:20], h.Length)
	copy(buf[20:24], h.Checksum[:])
	return buf
}

// DecodeHeader reads a 24-byte header from buf, which must be exactly
// HeaderSize bytes. The command field is trimmed of its trailing NUL
// padding.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) != HeaderSize {
		return Header{}, fmt.Errorf("header must be %d bytes, got %d",
			HeaderSize, len(buf))
	}

	command := buf[4 : 4+commandSize]
	end := commandSize
	for i, b := range command {
		if b == 0 {
			end = i
			break
		}
	}

	var checksum [4]byte
	copy(checksum[:], buf[20:24])

	h := Header{
		Magic:    binary.LittleEndian.Uint32(buf[0:4]),
		Command:  string(command[:end]),
		Length:   binary.LittleEndian.Uint32(buf[16:20]),
		Checksum: checksum,
	}
	if h.Length > MaxPayloadSize {
		return Header{}, fmt.Errorf("declared payload length %d exceeds "+
			"maximum %d", h.Length, MaxPayloadSize)
	}
	return h, nil
}

// Frame builds the complete wire encoding of a message: its header
// followed by its payload.
func Frame(magic uint32, command string, payload []byte) ([]byte, error) {
	if len(command) > commandSize {
		return nil, fmt.Errorf("command %q exceeds %d bytes", command,
			commandSize)
	}
	header := Header{
		Magic:    magic,
		Command:  command,
		Length:   uint32(len(payload)),
		Checksum: Checksum(payload),
	}
	return append(EncodeHeader(header), payload...), nil
}

// VerifyChecksum reports whether payload's checksum matches the one
// declared in h.
func VerifyChecksum(h Header, payload []byte) bool {
	return h.Checksum == Checksum(payload)
}
