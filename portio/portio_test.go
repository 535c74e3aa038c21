package portio

import (
	"math"
	"testing"

	"github.com/fp32unit/fp32unit/controller"
	"github.com/fp32unit/fp32unit/kernel"
	"github.com/stretchr/testify/require"
)

func bitsOf(f float32) uint32 { return math.Float32bits(f) }

func TestLoopbackImplementsPort(t *testing.T) {
	var _ Port = NewLoopback(nil)
}

func TestTransactRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		a, b uint32
		sub  bool
	}{
		{"add", bitsOf(1.25), bitsOf(2.75), false},
		{"sub", bitsOf(5.5), bitsOf(3.25), true},
		{"overflow", bitsOf(2.4e38), bitsOf(3.1e38), false},
		{"nan", 0x7FC00000, bitsOf(1.0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewLoopback(nil)
			result, trace := Transact(p, tc.sub, tc.a, tc.b)

			want := kernel.Add32(tc.a, tc.b, tc.sub)
			require.Equal(t, want, result)

			last := trace[len(trace)-1]
			require.Equal(t, controller.Output3, last.State)
			require.True(t, last.Done)
		})
	}
}

func TestTransactTraceLength(t *testing.T) {
	p := NewLoopback(nil)
	_, trace := Transact(p, false, bitsOf(1.0), bitsOf(2.0))

	// reset + start + 4 A bytes + 4 B bytes + EXECUTE + 4 output bytes.
	require.Len(t, trace, 15)
}

func TestTransactSequentialOnSharedController(t *testing.T) {
	ctrl := controller.New()
	p := NewLoopback(ctrl)

	first, _ := Transact(p, false, bitsOf(1.0), bitsOf(1.0))
	require.Equal(t, bitsOf(2.0), first)

	second, _ := Transact(p, true, bitsOf(10.0), bitsOf(4.0))
	require.Equal(t, bitsOf(6.0), second)
}
