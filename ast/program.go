package ast

// Function is a single function definition: its name, its parameters
// (a prefix of Locals, in declaration order), its complete local
// variable table, its body, and the rounded frame size codegen will
// reserve with "sub rsp, StackSize".
type Function struct {
	Name   string
	Params []*Variable
	Locals []*Variable
	Body   []*Node

	// StackSize is the running-sum footprint of every local, rounded up
	// to the next multiple of 8.
	StackSize int
}

// Program is the parser's final output: every function definition plus
// every global (user-declared and compiler-synthesized string-literal
// globals), in declaration order.
type Program struct {
	Functions []*Function
	Globals   []*Variable
}
