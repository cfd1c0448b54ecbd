package points

import (
	"testing"

	"devpath.app/profileservice/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(42)
	require.NoError(t, err)
	assert.Equal(t, 42, p.Value())

	zero, err := New(0)
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Value())
}

func TestNewRejectsNegative(t *testing.T) {
	_, err := New(-1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestMustNewPanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { MustNew(-5) })
	assert.NotPanics(t, func() { MustNew(0) })
}

func TestAdd(t *testing.T) {
	a := MustNew(10)
	b := MustNew(15)

	sum := a.Add(b)
	assert.Equal(t, 25, sum.Value())
	// Originals are untouched.
	assert.Equal(t, 10, a.Value())
	assert.Equal(t, 15, b.Value())
}

func TestSub(t *testing.T) {
	a := MustNew(10)

	diff, err := a.Sub(MustNew(4))
	require.NoError(t, err)
	assert.Equal(t, 6, diff.Value())

	_, err = a.Sub(MustNew(11))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestEquals(t *testing.T) {
	assert.True(t, MustNew(7).Equals(MustNew(7)))
	assert.False(t, MustNew(7).Equals(MustNew(8)))
}
