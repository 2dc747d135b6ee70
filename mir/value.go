package mir

import (
	"strconv"
)

// Value is an operand of a MIR instruction: an immediate, a register, or a
// global.
type Value interface {
	Repr() string

	value()
}

// IntConst is an immediate integer.
type IntConst struct {
	Value int64
}

// FloatConst is an immediate floating-point number.
type FloatConst struct {
	Value float64
}

// BoolConst is an immediate boolean.
type BoolConst struct {
	Value bool
}

// Register is a named register: a local value.
type Register struct {
	Name string
}

// Global is a named global: a function or global constant.
type Global struct {
	Name string
}

// Null is the null pointer.
type Null struct{}

func (ic *IntConst) Repr() string {
	return strconv.FormatInt(ic.Value, 10)
}

func (fc *FloatConst) Repr() string {
	return strconv.FormatFloat(fc.Value, 'g', -1, 64)
}

func (bc *BoolConst) Repr() string {
	return strconv.FormatBool(bc.Value)
}

func (r *Register) Repr() string {
	return "%" + r.Name
}

func (g *Global) Repr() string {
	return "@" + g.Name
}

func (*Null) Repr() string {
	return "null"
}

func (*IntConst) value()   {}
func (*FloatConst) value() {}
func (*BoolConst) value()  {}
func (*Register) value()   {}
func (*Global) value()     {}
func (*Null) value()       {}

// NewRegister creates a new register value.
func NewRegister(name string) *Register {
	return &Register{Name: name}
}
