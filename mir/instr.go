package mir

import (
	"fmt"
	"strings"

	"github.com/SeppDev/eclipse-sub000/types"
)

// Instruction is a single MIR instruction.
type Instruction interface {
	Repr() string

	instruction()
}

// Label begins a new basic block.
type Label struct {
	Name string
}

// Goto jumps unconditionally to a label.
type Goto struct {
	Label string
}

// Branch jumps to one of two labels depending on a boolean.
type Branch struct {
	Cond Value
	Then string
	Else string
}

// Define evaluates an operation.  The result is stored into the destination
// register unless the destination is empty: void calls and memory copies
// produce no value.
type Define struct {
	Dest string
	Op   Operation
}

// Store writes a basic value through a pointer.
type Store struct {
	Type  types.Type
	Value Value
	Ptr   Value
}

// Return returns from the function.  The value is nil for void returns.
type Return struct {
	Type  types.Type
	Value Value
}

// Unreachable marks the end of a block that control never reaches: the end
// of a non-void function with no final return.
type Unreachable struct{}

func (l *Label) Repr() string {
	return l.Name + ":"
}

func (g *Goto) Repr() string {
	return "goto " + g.Label
}

func (b *Branch) Repr() string {
	return fmt.Sprintf("branch %s, %s, %s", b.Cond.Repr(), b.Then, b.Else)
}

func (d *Define) Repr() string {
	if d.Dest == "" {
		return d.Op.Repr()
	}

	return "%" + d.Dest + " = " + d.Op.Repr()
}

func (s *Store) Repr() string {
	return fmt.Sprintf("store %s %s, %s", s.Type.Repr(), s.Value.Repr(), s.Ptr.Repr())
}

func (r *Return) Repr() string {
	if r.Value == nil {
		return "return void"
	}

	return fmt.Sprintf("return %s %s", r.Type.Repr(), r.Value.Repr())
}

func (*Unreachable) Repr() string {
	return "unreachable"
}

func (*Label) instruction()       {}
func (*Goto) instruction()        {}
func (*Branch) instruction()      {}
func (*Define) instruction()      {}
func (*Store) instruction()       {}
func (*Return) instruction()      {}
func (*Unreachable) instruction() {}

// IsTerminator returns whether an instruction ends a basic block.
func IsTerminator(instr Instruction) bool {
	switch instr.(type) {
	case *Goto, *Branch, *Return, *Unreachable:
		return true
	}

	return false
}

// -----------------------------------------------------------------------------

// Operation is the right-hand side of a Define.
type Operation interface {
	Repr() string

	operation()
}

// Allocate reserves a stack slot for a value of a type.
type Allocate struct {
	Type types.Type
}

// Load reads a basic value through a pointer.
type Load struct {
	Type types.Type
	Ptr  Value
}

// Arg is a single argument of a call.  Aggregate arguments are pointers to
// the aggregate.
type Arg struct {
	Type  types.Type
	Value Value
}

// Call calls a function directly.
type Call struct {
	ReturnType types.Type
	Callee     string
	Args       []*Arg

	// The out-pointer the callee writes its aggregate result to.  This is nil
	// if the callee returns a basic value or nothing.
	Sret Value
}

// BinaryOp applies an arithmetic or bitwise operator.  The operator is one of
// the HLIR binary operators.
type BinaryOp struct {
	Op       int
	Type     types.Type
	Lhs, Rhs Value
}

// CompareOp compares two values.  The operator is one of the HLIR comparison
// operators.
type CompareOp struct {
	Op       int
	Type     types.Type
	Lhs, Rhs Value
}

// GetElementPtr computes an address within an aggregate.  If the element type
// is nil, then the index is a byte offset.
type GetElementPtr struct {
	ElemType types.Type
	Base     Value
	Index    Value

	// The type of the index.  This is nil for byte offsets which are always
	// 64-bit.
	IndexType types.Type
}

// XorBool negates a boolean.
type XorBool struct {
	Value Value
}

// Memcpy copies a number of bytes between two non-overlapping addresses.
type Memcpy struct {
	Dest, Src Value
	Size      int
}

// Constant materializes an immediate or global into a register.
type Constant struct {
	Type  types.Type
	Value Value
}

func (a *Allocate) Repr() string {
	return "allocate " + a.Type.Repr()
}

func (l *Load) Repr() string {
	return fmt.Sprintf("load %s, %s", l.Type.Repr(), l.Ptr.Repr())
}

func (c *Call) Repr() string {
	args := make([]string, 0, len(c.Args)+1)
	if c.Sret != nil {
		args = append(args, "sret "+c.Sret.Repr())
	}

	for _, arg := range c.Args {
		args = append(args, arg.Type.Repr()+" "+arg.Value.Repr())
	}

	return fmt.Sprintf("call %s @%s(%s)", c.ReturnType.Repr(), c.Callee, strings.Join(args, ", "))
}

// binaryOpNames is the MIR spelling of each binary operator.
var binaryOpNames = []string{"add", "sub", "mul", "div", "mod", "and", "or", "xor", "shl", "shr"}

// compareOpNames is the MIR spelling of each comparison operator.
var compareOpNames = []string{"eq", "ne", "lt", "le", "gt", "ge"}

func (b *BinaryOp) Repr() string {
	return fmt.Sprintf("%s %s %s, %s", binaryOpNames[b.Op], b.Type.Repr(), b.Lhs.Repr(), b.Rhs.Repr())
}

func (c *CompareOp) Repr() string {
	return fmt.Sprintf("cmp %s %s %s, %s", compareOpNames[c.Op], c.Type.Repr(), c.Lhs.Repr(), c.Rhs.Repr())
}

func (g *GetElementPtr) Repr() string {
	if g.ElemType == nil {
		return fmt.Sprintf("gep bytes %s, %s", g.Base.Repr(), g.Index.Repr())
	}

	return fmt.Sprintf("gep %s %s, %s %s", g.ElemType.Repr(), g.Base.Repr(), g.IndexType.Repr(), g.Index.Repr())
}

func (x *XorBool) Repr() string {
	return "not " + x.Value.Repr()
}

func (m *Memcpy) Repr() string {
	return fmt.Sprintf("memcpy %s, %s, %d", m.Dest.Repr(), m.Src.Repr(), m.Size)
}

func (c *Constant) Repr() string {
	return fmt.Sprintf("const %s %s", c.Type.Repr(), c.Value.Repr())
}

func (*Allocate) operation()      {}
func (*Load) operation()          {}
func (*Call) operation()          {}
func (*BinaryOp) operation()      {}
func (*CompareOp) operation()     {}
func (*GetElementPtr) operation() {}
func (*XorBool) operation()       {}
func (*Memcpy) operation()        {}
func (*Constant) operation()      {}
