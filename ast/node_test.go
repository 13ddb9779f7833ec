package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNull(t *testing.T) {
	n := NewNull()
	assert.Equal(t, Null, n.Kind)
	assert.Nil(t, n.Ty)
}
