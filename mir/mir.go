package mir

import (
	"strings"

	"github.com/SeppDev/eclipse-sub000/types"
)

// Function is a lowered function: a flat list of instructions over named
// registers and labels.
type Function struct {
	// The source name of the function.
	Name string

	// The symbol name the function is emitted under.
	Key string

	// The incoming parameters of the function.  This does not include the
	// out-pointer of a function returning an aggregate.
	Params []*Param

	// The return type of the function.
	ReturnType types.Type

	// Whether the function returns its value through an out-pointer: the
	// register `%0`.
	Sret bool

	// Whether the function is only declared.
	External bool

	// The instructions of the function's body.
	Body []Instruction

	// The string constants used by the function.
	Strings []*StringConst
}

// StringConst is a global string constant.  It is emitted with a terminating
// null byte so that it can be passed to C functions.
type StringConst struct {
	Name  string
	Value string
}

// Param is an incoming function parameter.  Aggregate parameters are passed
// by pointer.
type Param struct {
	// The name of the register holding the incoming value.
	Name string

	Type types.Type
}

// SretName is the name of the out-pointer parameter of a function returning
// an aggregate.
const SretName = "0"

// Repr returns the textual form of the function used for debugging and
// testing.
func (fn *Function) Repr() string {
	sb := strings.Builder{}

	sb.WriteString("func @")
	sb.WriteString(fn.Key)
	sb.WriteRune('(')

	for i, param := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(param.Type.Repr())
		sb.WriteString(" %")
		sb.WriteString(param.Name)
	}

	sb.WriteString(") ")
	sb.WriteString(fn.ReturnType.Repr())

	if fn.External {
		sb.WriteRune('\n')
		return sb.String()
	}

	sb.WriteString(" {\n")
	for _, instr := range fn.Body {
		if _, ok := instr.(*Label); !ok {
			sb.WriteRune('\t')
		}

		sb.WriteString(instr.Repr())
		sb.WriteRune('\n')
	}
	sb.WriteString("}\n")

	return sb.String()
}

// Labels returns the names of every label defined in the function and the
// number of times each is defined.
func (fn *Function) Labels() map[string]int {
	labels := make(map[string]int)
	for _, instr := range fn.Body {
		if label, ok := instr.(*Label); ok {
			labels[label.Name]++
		}
	}

	return labels
}

// Targets returns the names of every label jumped to in the function.
func (fn *Function) Targets() []string {
	var targets []string
	for _, instr := range fn.Body {
		switch v := instr.(type) {
		case *Goto:
			targets = append(targets, v.Label)
		case *Branch:
			targets = append(targets, v.Then, v.Else)
		}
	}

	return targets
}
