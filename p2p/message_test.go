package p2p

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderCodecRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	h := Header{
		Magic:    0xD9B4BEF9,
		Command:  "tx",
		Length:   uint32(len(payload)),
		Checksum: Checksum(payload),
	}

	buf := EncodeHeader(h)
	require.Len(t, buf, HeaderSize)

	got, err := DecodeHeader(buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestDecodeHeaderRejectsWrongSize(t *testing.T) {
	_, err := DecodeHeader(make([]byte, HeaderSize-1))
	require.Error(t, err)
}

func TestDecodeHeaderRejectsOversizedLength(t *testing.T) {
	h := Header{Magic: 1, Command: "block", Length: MaxPayloadSize + 1}
	buf := EncodeHeader(h)
	_, err := DecodeHeader(buf)
	require.Error(t, err)
}

func TestFrameAndVerifyChecksum(t *testing.T) {
	payload := []byte("a small test payload")
	framed, err := Frame(0xD9B4BEF9, "ping", payload)
	require.NoError(t, err)
	require.Len(t, framed, HeaderSize+len(payload))

	header, err := DecodeHeader(framed[:HeaderSize])
	require.NoError(t, err)
	require.Equal(t, "ping", header.Command)
	require.True(t, VerifyChecksum(header, framed[HeaderSize:]))
	require.False(t, VerifyChecksum(header, append(payload, 0)))
}

func TestFrameRejectsOverlongCommand(t *testing.T) {
	_, err := Frame(1, "this-command-name-is-too-long", nil)
	require.Error(t, err)
}
