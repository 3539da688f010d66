package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/modelfit/tensor"
)

func TestRegisterAndReset(t *testing.T) {
	Reset()

	j, err := Register("m_Model_train_job_0", FunctionConfig{Type: "train"}, func(args ...*tensor.Dense) (*tensor.Dense, error) {
		return tensor.Scalar(1), nil
	})
	require.NoError(t, err)

	_, err = Register("m_Model_train_job_0", FunctionConfig{Type: "train"}, nil)
	assert.Error(t, err, "duplicate job names must be rejected")

	assert.Same(t, j, Lookup("m_Model_train_job_0"))
	out, err := j.Run()
	require.NoError(t, err)
	assert.Equal(t, float32(1), out.Item())

	Reset()
	assert.Nil(t, Lookup("m_Model_train_job_0"))
	assert.Zero(t, Len())
}
