package rphmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardBackwardTotalsAgree(t *testing.T) {
	h := newTestSingleton(0, 20, "r0")
	ForwardBackward(h)

	// The classic forward/backward consistency check: the total probability
	// computed by summing over the last column's forward messages must equal
	// the total computed by summing over the first column's backward
	// messages, within floating point tolerance.
	assert.InDelta(t, h.ForwardLogProb(), h.BackwardLogProb(), 1e-6)
	assert.False(t, math.IsInf(h.ForwardLogProb(), 0))
}

func TestForwardBackwardOnMergedHMM(t *testing.T) {
	a := newTestSingleton(0, 8, "a")
	b := newTestSingleton(0, 8, "b")
	require.NoError(t, AlignColumns(a, b))
	cp, err := CrossProduct(a, b)
	require.NoError(t, err)

	ForwardBackward(cp)
	assert.InDelta(t, cp.ForwardLogProb(), cp.BackwardLogProb(), 1e-6)

	// Every cell's posterior must land in [0,1] and every column's
	// posteriors must sum to (approximately) 1.
	cp.Columns(func(c *Column) {
		var sum float64
		c.Cells(func(cell *Cell) {
			p := cellPosterior(c, cell)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			sum += p
		})
		assert.InDelta(t, 1.0, sum, 1e-6)
	})
}

func TestResetLogProbsClearsMemoizedState(t *testing.T) {
	h := newTestSingleton(0, 5, "r0")
	Forward(h)
	require.NotNil(t, h.FirstColumn().bitCountVectors)

	resetLogProbs(h)
	assert.Nil(t, h.FirstColumn().bitCountVectors)
	assert.True(t, math.IsInf(h.ForwardLogProb(), -1))
	assert.True(t, math.IsInf(h.BackwardLogProb(), -1))
}

func TestLogAdd(t *testing.T) {
	assert.InDelta(t, math.Log(2), logAdd(0, 0), 1e-9)
	assert.Equal(t, 5.0, logAdd(math.Inf(-1), 5))
	assert.Equal(t, 5.0, logAdd(5, math.Inf(-1)))
	assert.True(t, math.IsInf(logAdd(math.Inf(-1), math.Inf(-1)), -1))
}
