package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStringLiteral(t *testing.T) {
	body := "hi"
	lit := &Variable{Name: ".L.data.0", Type: NewArray(CharType, 3), Content: &body}
	assert.True(t, lit.IsStringLiteral())

	local := &Variable{Name: "x", Type: IntType, IsLocal: true, Offset: 8}
	assert.False(t, local.IsStringLiteral())
}
