package evalstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopOrderIsLIFO(t *testing.T) {
	s := New[string]()
	s.Push("a")
	s.Push("b")
	s.Push("c")

	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, "c", v)

	v, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Empty())
}

func TestPopOnEmptyStackReturnsErrEmpty(t *testing.T) {
	s := New[int]()
	_, err := s.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestEmptyReflectsLen(t *testing.T) {
	s := New[int]()
	assert.True(t, s.Empty())
	s.Push(1)
	assert.False(t, s.Empty())
	_, _ = s.Pop()
	assert.True(t, s.Empty())
}

func TestGenericOverDifferentTypes(t *testing.T) {
	ints := New[int]()
	ints.Push(1)
	ints.Push(2)
	v, err := ints.Pop()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	type marker struct{ name string }
	markers := New[marker]()
	markers.Push(marker{name: "x"})
	m, err := markers.Pop()
	require.NoError(t, err)
	assert.Equal(t, "x", m.name)
}
