package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kzok/tinycc/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err)
	return prog
}

func TestParseReturnZero(t *testing.T) {
	prog := mustParse(t, "int main() { return 0; }")
	require.Len(t, prog.Functions, 1)
	main := prog.Functions[0]
	assert.Equal(t, "main", main.Name)
	require.Len(t, main.Body, 1)
	assert.Equal(t, ast.Return, main.Body[0].Kind)
	assert.Equal(t, ast.Number, main.Body[0].Value.Kind)
	assert.EqualValues(t, 0, main.Body[0].Value.NumberValue)
}

func TestParseLocalOffsetsAccumulate(t *testing.T) {
	// scenario 2: two 8-byte ints.
	prog := mustParse(t, "int main() { int a; int b; a=3; b=4; return a*b-2; }")
	main := prog.Functions[0]
	require.Len(t, main.Locals, 2)
	assert.Equal(t, 8, main.Locals[0].Offset)
	assert.Equal(t, 16, main.Locals[1].Offset)
	assert.Equal(t, 16, main.StackSize)
}

func TestParseArrayDeclarationSizing(t *testing.T) {
	prog := mustParse(t, "int main() { int a[3]; a[0]=1; return a[0]; }")
	main := prog.Functions[0]
	require.Len(t, main.Locals, 1)
	assert.Equal(t, ast.Array, main.Locals[0].Type.Kind)
	assert.Equal(t, 24, main.Locals[0].Type.Size()) // 3 * 8
	assert.Equal(t, 24, main.Locals[0].Offset)
	assert.Equal(t, 24, main.StackSize)
}

func TestParseFunctionCallWithArguments(t *testing.T) {
	prog := mustParse(t, "int add(int x, int y) { return x+y; } int main() { return add(3, add(4,5)); }")
	require.Len(t, prog.Functions, 2)
	add, main := prog.Functions[0], prog.Functions[1]
	assert.Equal(t, "add", add.Name)
	require.Len(t, add.Params, 2)

	call := main.Body[0].Value
	require.Equal(t, ast.FunCall, call.Kind)
	assert.Equal(t, "add", call.FuncName)
	require.Len(t, call.Args, 2)
	assert.Equal(t, ast.FunCall, call.Args[1].Kind)
}

func TestParseDesugarsGreaterThanBySwap(t *testing.T) {
	gt := mustParse(t, "int main() { return 1 > 2; }")
	ge := mustParse(t, "int main() { return 2 < 1; }")

	gtCmp := gt.Functions[0].Body[0].Value
	geCmp := ge.Functions[0].Body[0].Value
	assert.Equal(t, ast.LessThan, gtCmp.Kind)
	assert.Equal(t, ast.LessThan, geCmp.Kind)
	assert.EqualValues(t, 2, gtCmp.LHS.NumberValue)
	assert.EqualValues(t, 1, gtCmp.RHS.NumberValue)
}

func TestParseDesugarsUnaryMinus(t *testing.T) {
	prog := mustParse(t, "int main() { return -5; }")
	node := prog.Functions[0].Body[0].Value
	require.Equal(t, ast.Sub, node.Kind)
	assert.EqualValues(t, 0, node.LHS.NumberValue)
	assert.EqualValues(t, 5, node.RHS.NumberValue)
}

func TestParseDesugarsIndexingToDerefOfAdd(t *testing.T) {
	prog := mustParse(t, "int main() { int a[3]; return a[1]; }")
	node := prog.Functions[0].Body[1].Value
	require.Equal(t, ast.Deref, node.Kind)
	require.Equal(t, ast.Add, node.Target.Kind)
	assert.EqualValues(t, 1, node.Target.RHS.NumberValue)
}

func TestParseSizeofSynthesizesStaticTypeSize(t *testing.T) {
	prog := mustParse(t, "int main() { int a[3]; return sizeof(a); }")
	node := prog.Functions[0].Body[1].Value
	assert.Equal(t, ast.Number, node.Kind)
	assert.EqualValues(t, 24, node.NumberValue) // 3 * sizeof(int)
}

func TestParseSizeofCharIsOne(t *testing.T) {
	prog := mustParse(t, "int main() { char c; return sizeof(c); }")
	node := prog.Functions[0].Body[1].Value
	assert.EqualValues(t, 1, node.NumberValue)
}

func TestParseAddrOfVariableBuildsAddrNode(t *testing.T) {
	prog := mustParse(t, "int main() { int x; int *p; p=&x; return *p; }")
	main := prog.Functions[0]
	assign := main.Body[2] // p = &x
	assert.Equal(t, ast.Addr, assign.RHS.Kind)
}

func TestParseUndefinedIdentifierIsSemanticError(t *testing.T) {
	_, err := Parse("int main() { return foo; }")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Semantic, perr.Kind)
	assert.Contains(t, err.Error(), "^")
}

func TestParseAssigningToArrayIsRejected(t *testing.T) {
	_, err := Parse("int main() { int a[3]; a = 1; }")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Semantic, perr.Kind)
}

func TestParseMalformedExpressionIsSyntaxError(t *testing.T) {
	_, err := Parse("int main() { return 1++; }")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Syntax, perr.Kind)
}

func TestParseIncompleteAssignmentIsSyntaxError(t *testing.T) {
	_, err := Parse("int main() { int a; a=; }")
	require.Error(t, err)
	_, ok := err.(*Error)
	require.True(t, ok)
}

func TestParseMissingExpressionAfterReturnIsSyntaxError(t *testing.T) {
	_, err := Parse("int main() { return }")
	require.Error(t, err)
}

func TestParseUnrecognizedByteIsLexicalError(t *testing.T) {
	_, err := Parse("int main() { return 1 @ 2; }")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Lexical, perr.Kind)
}

func TestParseForLoopAllowsEmptyClauses(t *testing.T) {
	prog := mustParse(t, "int main() { int i; i=0; for (;;) { i=i+1; if (i==3) return i; } }")
	forNode := prog.Functions[0].Body[2]
	require.Equal(t, ast.For, forNode.Kind)
	assert.Nil(t, forNode.Init)
	assert.Nil(t, forNode.Cond)
	assert.Nil(t, forNode.Inc)
}

func TestParseDeterministicOutput(t *testing.T) {
	src := "int main() { int a; a = 3; return a; }"
	first, err := Parse(src)
	require.NoError(t, err)
	second, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestErrorRendersCaretAtColumn(t *testing.T) {
	_, err := Parse("int main() {\n  return foo;\n}")
	require.Error(t, err)
	msg := err.Error()
	lines := strings.Split(msg, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[2], "^"))
}
