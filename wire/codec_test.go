package wire

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCompactSizeBoundaries(t *testing.T) {
	cases := []struct {
		value uint64
		size  int
	}{
		{0, 1},
		{0xFC, 1},
		{0xFD, 3},
		{0xFFFF, 3},
		{0x10000, 5},
		{0xFFFFFFFF, 5},
		{0x100000000, 9},
	}

	for _, c := range cases {
		w := NewWriter(0)
		w.WriteCompactSize(c.value)
		require.Lenf(t, w.Bytes(), c.size,
			"value %d encoded to wrong size", c.value)
		require.Equal(t, c.size, CompactSizeLen(c.value))

		r := NewReader(w.Bytes())
		got := r.ReadCompactSize()
		require.True(t, r.IsValid())
		require.Equal(t, c.value, got)
	}
}

func TestCompactSizeRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.Uint64().Draw(rt, "n")

		w := NewWriter(0)
		w.WriteCompactSize(n)

		r := NewReader(w.Bytes())
		got := r.ReadCompactSize()
		require.True(rt, r.IsValid())
		require.Equal(rt, n, got)
	})
}

func TestEndianLaw(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.Uint32().Draw(rt, "n")

		w := NewWriter(0)
		w.WriteUint32(n)
		le := w.Bytes()

		be := make([]byte, 4)
		binary.BigEndian.PutUint32(be, n)

		reversed := make([]byte, 4)
		for i, b := range le {
			reversed[len(le)-1-i] = b
		}
		require.Equal(rt, be, reversed)

		r := NewReader(le)
		require.Equal(rt, n, r.ReadUint32())
		require.True(rt, r.IsValid())
	})
}

func TestVarBytesUnderrunSetsInvalid(t *testing.T) {
	r := NewReader([]byte{0x05, 0x01, 0x02})
	got := r.ReadVarBytes(MaxScriptSize)
	require.Nil(t, got)
	require.False(t, r.IsValid())
}

func TestVarBytesRejectsOversizedDeclaration(t *testing.T) {
	w := NewWriter(0)
	w.WriteCompactSize(MaxScriptSize + 1)
	w.WriteBytes(make([]byte, MaxScriptSize+1))

	r := NewReader(w.Bytes())
	got := r.ReadVarBytes(MaxScriptSize)
	require.Nil(t, got)
	require.False(t, r.IsValid())
}

func TestReaderAllowsQueriesAfterInvalid(t *testing.T) {
	r := NewReader([]byte{0x01})
	_ = r.ReadBytes(5)
	require.False(t, r.IsValid())

	// Subsequent reads are permitted and return defaults, never panicking.
	require.Equal(t, uint8(0), r.ReadUint8())
	require.Equal(t, uint32(0), r.ReadUint32())
	require.Nil(t, r.ReadVarBytes(10))
	require.Equal(t, 0, r.Remaining())
}
