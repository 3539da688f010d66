package isprime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trialDivision(n uint32) bool {
	if n < 2 {
		return false
	}
	for d := uint32(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func TestTableAgreesWithTrialDivision(t *testing.T) {
	table := NewTable()
	for n := uint32(0); n < 2000; n++ {
		if table.Label(n) != trialDivision(n) {
			t.Fatalf("label of %d: sieve says %v, trial division says %v", n, table.Label(n), trialDivision(n))
		}
	}
}

func TestBatches(t *testing.T) {
	table := NewTable()
	batches := table.Batches(250, 100, 7)
	require.Len(t, batches, 3)
	assert.Equal(t, 100, batches[0].Input.Rows())
	assert.Equal(t, 50, batches[2].Input.Rows())
	assert.Equal(t, Bits, batches[0].Input.Cols())

	// every feature is a bit, every label is 0 or 1
	for _, v := range batches[0].Input.Data() {
		if v != 0 && v != 1 {
			t.Fatalf("feature %v is not a bit", v)
		}
	}
	for _, v := range batches[0].Label.Data() {
		if v != 0 && v != 1 {
			t.Fatalf("label %v is not binary", v)
		}
	}
}

func TestTrainingStepFillsGradients(t *testing.T) {
	table := NewTable()
	batches := table.Batches(64, 64, 3)
	m := NewModule(0.05)

	loss, err := m.TrainingStep(batches[0], 0)
	require.NoError(t, err)
	assert.Greater(t, loss.Item(), float32(0))
	require.NotNil(t, m.Weight().Grad)
	require.NotNil(t, m.Bias().Grad)
	assert.Equal(t, Bits, m.Weight().Grad.Rows())
}
