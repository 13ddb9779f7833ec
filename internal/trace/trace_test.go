package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecordsInOrder(t *testing.T) {
	l := NewLog()
	l.Record(Prologue, "main")
	l.Record(Push, "")
	l.Record(Add, "")
	l.Record(Epilogue, "main")

	require.Equal(t, 4, l.Len())
	entries := l.Entries()
	assert.Equal(t, Prologue, entries[0].Op)
	assert.Equal(t, "main", entries[0].Label)
	assert.Equal(t, Add, entries[2].Op)
	assert.Equal(t, Epilogue, entries[3].Op)
}

func TestNewLogIsEmpty(t *testing.T) {
	l := NewLog()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Entries())
}

func TestOpTagsAreDistinct(t *testing.T) {
	ops := []Op{Push, Add, Sub, Mul, Div, Equal, NotEqual, LessThan, LessEq,
		Assign, Addr, Deref, Call, Label, CondJump, Jump, Prologue, Epilogue}
	seen := map[Op]bool{}
	for _, op := range ops {
		assert.False(t, seen[op], "duplicate op tag %q", op)
		seen[op] = true
	}
}
