package zwire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionGrowth(t *testing.T) {
	s := NewSession()
	payload := make([]byte, 10_000)
	for i := range payload {
		payload[i] = byte(i)
	}
	s.Write(payload)
	require.Equal(t, 10_000, s.Len())
	require.Equal(t, payload, s.Bytes())
	// cursor never exceeds capacity
	require.LessOrEqual(t, s.end, cap(s.buf))
}

func TestSessionManySmallWrites(t *testing.T) {
	s := NewSession()
	for i := 0; i < 1000; i++ {
		s.WriteByte(byte(i))
	}
	require.Equal(t, 1000, s.Len())
	for i, b := range s.Bytes() {
		require.Equal(t, byte(i), b)
	}
}

func TestSessionResetKeepsCapacity(t *testing.T) {
	s := NewSessionSize(256)
	s.Write(make([]byte, 200))
	before := cap(s.buf)
	s.Reset()
	require.Equal(t, 0, s.Len())
	require.Equal(t, before, cap(s.buf))
}

func TestSessionTruncate(t *testing.T) {
	s := NewSession()
	s.Write([]byte{1, 2, 3, 4})
	s.Truncate(2)
	require.Equal(t, []byte{1, 2}, s.Bytes())
	s.WriteByte(9)
	require.Equal(t, []byte{1, 2, 9}, s.Bytes())
}

func TestSessionMixedWriters(t *testing.T) {
	s := NewSession()
	s.WriteByte(0x01)
	s.WriteUint16(0x0302)
	s.WriteUint32(0x07060504)
	s.WriteUint64(0x0F0E0D0C0B0A0908)
	s.WriteVarUint(300)
	require.Equal(t, []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
		0xAC, 0x02,
	}, s.Bytes())
}
