// Package trace records an observational instruction-by-instruction log
// of what codegen emitted. The compile subcommand fills and prints one
// to stderr when the config file sets codegen.trace.
//
// This is NOT a second intermediate representation: codegen always
// walks the typed AST directly to produce its assembly text (the design
// excludes any IR beyond the typed AST). A trace.Log is populated
// alongside that walk purely for observability, and discarding it
// changes nothing about the assembly codegen produces.
package trace

// Op tags one traced operation. The set mirrors the node/operator
// vocabulary codegen lowers, plus a few codegen-only bookkeeping ops.
type Op byte

const (
	Push     Op = 'p'
	Add      Op = '+'
	Sub      Op = '-'
	Mul      Op = '*'
	Div      Op = '/'
	Equal    Op = '='
	NotEqual Op = '!'
	LessThan Op = '<'
	LessEq   Op = 'L'
	Assign   Op = 'A'
	Addr     Op = '&'
	Deref    Op = 'D'
	Call     Op = 'c'
	Label    Op = 'l'
	CondJump Op = 'j'
	Jump     Op = 'J'
	Prologue Op = 'P'
	Epilogue Op = 'E'
)

// Entry is one traced instruction.
type Entry struct {
	Op    Op
	Label string // the function, variable, or label name involved, if any
}

// Log accumulates Entry values in emission order.
type Log struct {
	entries []Entry
}

// NewLog returns an empty Log.
func NewLog() *Log { return &Log{} }

// Record appends an Entry.
func (l *Log) Record(op Op, label string) {
	l.entries = append(l.entries, Entry{Op: op, Label: label})
}

// Entries returns every recorded Entry, in emission order.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Len reports how many entries have been recorded.
func (l *Log) Len() int {
	return len(l.entries)
}
