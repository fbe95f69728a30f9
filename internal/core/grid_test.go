package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteGrid(t *testing.T) {
	g := NewByteGrid(3, 2)
	require.Len(t, g.Cells(), 6)

	g.Set(2, 1, 7)
	g.Set(3, 0, 9)
	g.Set(-1, 0, 9)
	require.Equal(t, uint8(7), g.At(2, 1))
	require.Equal(t, uint8(7), g.Cells()[5])
	require.Zero(t, g.At(5, 5))

	g.Clear()
	require.Zero(t, g.At(2, 1))

	empty := NewByteGrid(0, -4)
	require.Equal(t, 1, empty.W)
	require.Equal(t, 1, empty.H)
}

func TestRNGIsDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 16; i++ {
		require.Equal(t, a.IntN(100), b.IntN(100))
	}
	require.Zero(t, a.IntN(0))
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	require.Equal(t, 0.0, c.Clamp(-2))
	require.Equal(t, 1.0, c.Clamp(3))
	require.Equal(t, 0.5, c.Clamp(0.5))

	snap := ParameterSnapshot{Groups: []ParameterGroup{{Name: "g", Params: []Parameter{{Key: "k", Value: "1"}}}}}
	p, ok := snap.Lookup("k")
	require.True(t, ok)
	require.Equal(t, "1", p.Value)
	_, ok = snap.Lookup("missing")
	require.False(t, ok)
}
