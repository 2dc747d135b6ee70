package codegen

import (
	"fmt"
	"strings"

	"github.com/SeppDev/eclipse-sub000/mir"
	"github.com/SeppDev/eclipse-sub000/types"

	"github.com/llir/llvm/ir/constant"
)

// prologue is the runtime support every module starts with: the `print`
// built-in and the C functions it calls.
const prologue = `@.fmt = private unnamed_addr constant [4 x i8] c"%d\0A\00"

declare i32 @printf(ptr, ...)
declare i32 @fflush(ptr)
declare void @llvm.memcpy.p0.p0.i64(ptr, ptr, i64, i1)

define void @print(i32 %0) {
start:
	%1 = call i32 (ptr, ...) @printf(ptr @.fmt, i32 %0)
	%2 = call i32 @fflush(ptr null)
	ret void
}
`

// Generator converts MIR functions into an LLVM textual IR module.
type Generator struct {
	target Target

	// The module being written.
	sb strings.Builder

	// The stack allocations of the function being generated.  These are all
	// placed in its `start` block.
	allocas strings.Builder

	// The body of the function being generated.
	body strings.Builder

	// The counter used to name the extra registers the generator introduces.
	// These names contain a `.` and so never collide with MIR registers.
	tempCounter int
}

// Generate generates the LLVM module for a list of lowered functions.  The
// output only depends on its inputs.
func Generate(target Target, fns []*mir.Function) string {
	g := &Generator{target: target}

	g.sb.WriteString("target triple = \"")
	g.sb.WriteString(target.Triple())
	g.sb.WriteString("\"\n\n")

	g.sb.WriteString(prologue)

	for _, fn := range fns {
		for _, str := range fn.Strings {
			g.genString(str)
		}
	}

	// Several modules may declare the same external function.
	declared := make(map[string]struct{})

	for _, fn := range fns {
		if fn.External {
			if _, ok := declared[fn.Key]; ok {
				continue
			}

			declared[fn.Key] = struct{}{}
		}

		g.sb.WriteRune('\n')

		if fn.External {
			g.genDeclare(fn)
		} else {
			g.genFunc(fn)
		}
	}

	return g.sb.String()
}

// genString generates a null-terminated global string constant.
func (g *Generator) genString(str *mir.StringConst) {
	chars := constant.NewCharArrayFromString(str.Value + "\x00")

	fmt.Fprintf(
		&g.sb,
		"@%s = private unnamed_addr constant %s %s\n",
		str.Name, chars.Typ.LLString(), chars.Ident(),
	)
}

// genDeclare declares an external function.
func (g *Generator) genDeclare(fn *mir.Function) {
	params := make([]string, 0, len(fn.Params)+1)
	if fn.Sret {
		params = append(params, fmt.Sprintf("ptr sret(%s)", g.convType(fn.ReturnType)))
	}

	for _, param := range fn.Params {
		params = append(params, g.convValueType(param.Type))
	}

	fmt.Fprintf(
		&g.sb,
		"declare %s @%s(%s)\n",
		g.convReturnType(fn.ReturnType), fn.Key, strings.Join(params, ", "),
	)
}

// genFunc generates the definition of a function.
func (g *Generator) genFunc(fn *mir.Function) {
	params := make([]string, 0, len(fn.Params)+1)
	if fn.Sret {
		params = append(params, fmt.Sprintf("ptr sret(%s) %%%s", g.convType(fn.ReturnType), mir.SretName))
	}

	for _, param := range fn.Params {
		params = append(params, g.convValueType(param.Type)+" %"+param.Name)
	}

	fmt.Fprintf(
		&g.sb,
		"define %s @%s(%s) {\nstart:\n",
		g.convReturnType(fn.ReturnType), fn.Key, strings.Join(params, ", "),
	)

	g.allocas.Reset()
	g.body.Reset()
	g.tempCounter = 0

	for _, instr := range fn.Body {
		g.genInstr(instr)
	}

	g.sb.WriteString(g.allocas.String())
	g.sb.WriteString(g.body.String())
	g.sb.WriteString("}\n")
}

// -----------------------------------------------------------------------------

// emit writes a single instruction to the body of the current function.
func (g *Generator) emit(format string, args ...interface{}) {
	g.body.WriteRune('\t')
	fmt.Fprintf(&g.body, format, args...)
	g.body.WriteRune('\n')
}

// newTemp returns the name of a fresh generator register.
func (g *Generator) newTemp() string {
	g.tempCounter++
	return fmt.Sprintf("%%cg.%d", g.tempCounter)
}

// typedValue returns the spelling of a value preceded by its LLVM type.
func (g *Generator) typedValue(typ types.Type, value mir.Value) string {
	return g.convValueType(typ) + " " + g.convValue(value)
}
