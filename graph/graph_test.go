package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/modelfit/device"
	"github.com/neurlang/modelfit/nn"
	"github.com/neurlang/modelfit/session"
	"github.com/neurlang/modelfit/tensor"
)

// a linear layer must produce the same numbers eagerly and through a
// compiled graph
func TestLinearGraphMatchesEager(t *testing.T) {
	session.Reset()

	linear := nn.NewLinear(3, 8, false)
	nn.InitConstant(linear.Weight(), 2.3)

	input := []float32{
		-0.94630778, -0.83378579, -0.87060891,
		2.0289922, -0.28708987, -2.18369248,
		0.35217619, -0.67095644, -1.58943879,
		0.08086036, -1.81075924, 1.20752494,
		0.8901075, -0.49976737, -1.07153746,
		-0.44872912, -1.07275683, 0.06256855,
		-0.22556897, 0.74798368, 0.90416439,
		0.48339456, -2.32742195, -0.59321527,
	}
	x, err := tensor.FromSlice(8, 3, input)
	require.NoError(t, err)

	eagerOut, err := linear.Forward(x)
	require.NoError(t, err)

	// reference: plain matmul against a 3x8 matrix of 2.3
	weight := tensor.New(3, 8)
	weight.Fill(2.3)
	refOut, err := x.MatMul(weight)
	require.NoError(t, err)
	assert.True(t, eagerOut.AllClose(refOut, 1e-5, 1e-5))

	linearGraph := New("linear_graph", func(b *Builder) {
		b.To(device.CPU())
		b.Module(linear)
	})
	lazyOut, err := linearGraph.Run(x)
	require.NoError(t, err)
	assert.True(t, lazyOut.AllClose(eagerOut, 1e-5, 1e-5))
}

func TestGraphCompilesOnceAndSeesUpdates(t *testing.T) {
	session.Reset()

	linear := nn.NewLinear(2, 2, false)
	nn.InitConstant(linear.Weight(), 1)

	builds := 0
	g := New("once_graph", func(b *Builder) {
		builds++
		b.Module(linear)
	})
	assert.False(t, g.Compiled())

	x, _ := tensor.FromSlice(1, 2, []float32{1, 1})
	out, err := g.Run(x)
	require.NoError(t, err)
	assert.Equal(t, float32(2), out.Item())
	assert.True(t, g.Compiled())
	assert.NotNil(t, session.Lookup("once_graph"))

	// parameters are shared with the plan, so updates show on replay
	nn.InitConstant(linear.Weight(), 3)
	out, err = g.Run(x)
	require.NoError(t, err)
	assert.Equal(t, float32(6), out.Item())
	assert.Equal(t, 1, builds)
}

func TestGraphRejectsEmptyAndDuplicate(t *testing.T) {
	session.Reset()

	empty := New("empty_graph", func(b *Builder) {})
	_, err := empty.Run(tensor.New(1, 1))
	assert.Error(t, err)

	linear := nn.NewLinear(1, 1, false)
	a := New("dup_graph", func(b *Builder) { b.Module(linear) })
	bg := New("dup_graph", func(b *Builder) { b.Module(linear) })
	_, err = a.Run(tensor.New(1, 1))
	require.NoError(t, err)
	_, err = bg.Run(tensor.New(1, 1))
	assert.Error(t, err, "duplicate graph names within a session must be rejected")
}

func TestGraphChunkedReplay(t *testing.T) {
	session.Reset()

	linear := nn.NewLinear(1, 1, false)
	nn.InitConstant(linear.Weight(), 2)
	g := New("chunk_graph", func(b *Builder) { b.Module(linear) })
	require.NoError(t, func() error { _, err := g.Run(tensor.New(1, 1)); return err }())
	g.chunkRows = 3

	x := tensor.New(10, 1)
	for i := 0; i < 10; i++ {
		x.Set(i, 0, float32(i))
	}
	out, err := g.Run(x)
	require.NoError(t, err)
	require.Equal(t, 10, out.Rows())
	for i := 0; i < 10; i++ {
		assert.Equal(t, float32(2*i), out.At(i, 0))
	}
}
