package walk

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/SeppDev/eclipse-sub000/ast"
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/types"
)

// strRefType is the type of string literals.
var strRefType = &types.RefType{ElemType: types.PrimTypeStr, Kind: types.RefShared}

// walkLiteral walks a literal AST node.
func (w *Walker) walkLiteral(lit *ast.Literal, expected types.Type) hlir.Expr {
	switch lit.Kind {
	case ast.LitInt:
		return w.walkIntLit(lit, lit.Span(), expected, false)
	case ast.LitFloat:
		return w.walkFloatLit(lit, lit.Span(), expected, false)
	case ast.LitBool:
		return &hlir.BoolLit{
			ExprBase: hlir.NewExprBase(lit.Span(), types.PrimTypeBool),
			Value:    lit.Value == "true",
		}
	case ast.LitChar:
		return w.walkCharLit(lit)
	case ast.LitString:
		value, err := decodeEscapes(unquote(lit.Value))
		if err != nil {
			w.recError(lit.Span(), "%s", err)
		}

		return &hlir.StringLit{ExprBase: hlir.NewExprBase(lit.Span(), strRefType), Value: value}
	}

	report.ReportICE("unknown literal kind: %d", lit.Kind)
	return nil
}

// walkIntLit walks an integer literal.  The literal takes the expected type if
// it is numeric and `i32` otherwise.  Negated literals are folded so that the
// minimum value of each signed type can be written.
func (w *Walker) walkIntLit(lit *ast.Literal, span *report.TextSpan, expected types.Type, negate bool) hlir.Expr {
	if types.IsFloating(expected) {
		return w.walkFloatLit(lit, span, expected, negate)
	}

	x, err := strconv.ParseUint(lit.Value, 10, 64)
	if err != nil {
		w.error(lit.Span(), "integer literal `%s` is too large to be represented by any integer type", lit.Value)
	}

	typ := types.PrimTypeI32
	if types.IsIntegral(expected) {
		typ = expected.(types.PrimitiveType)
	}

	lo, hi := types.IntRange(typ)

	var value int64
	if negate {
		if !typ.IsSigned() {
			w.recError(span, "cannot negate a value of unsigned type `%s`", typ.Repr())
		} else if x > uint64(-(lo+1))+1 {
			w.recError(span, "integer literal `-%s` out of range for type `%s`", lit.Value, typ.Repr())
		}

		value = -int64(x)
	} else {
		if x > hi {
			w.recError(span, "integer literal `%s` out of range for type `%s`", lit.Value, typ.Repr())
		}

		value = int64(x)
	}

	return &hlir.IntLit{ExprBase: hlir.NewExprBase(span, typ), Value: value}
}

// walkFloatLit walks a floating-point literal or an integer literal used as a
// floating-point value.  The literal takes the expected type if it is a float
// type and `f64` otherwise.
func (w *Walker) walkFloatLit(lit *ast.Literal, span *report.TextSpan, expected types.Type, negate bool) hlir.Expr {
	x, err := strconv.ParseFloat(lit.Value, 64)
	if err != nil {
		w.error(lit.Span(), "float literal `%s` cannot be represented", lit.Value)
	}

	typ := types.PrimTypeF64
	if types.IsFloating(expected) {
		typ = expected.(types.PrimitiveType)
	}

	if negate {
		x = -x
	}

	if typ == types.PrimTypeF32 {
		x = float64(float32(x))
	}

	return &hlir.FloatLit{ExprBase: hlir.NewExprBase(span, typ), Value: x}
}

// walkCharLit walks a character literal.  Characters are 32-bit code points.
func (w *Walker) walkCharLit(lit *ast.Literal) hlir.Expr {
	value, err := decodeEscapes(unquote(lit.Value))
	if err != nil {
		w.error(lit.Span(), "%s", err)
	}

	r, size := utf8.DecodeRuneInString(value)
	if len(value) == 0 || size != len(value) {
		w.recError(lit.Span(), "character literal must contain exactly one character")
	}

	return &hlir.IntLit{ExprBase: hlir.NewExprBase(lit.Span(), types.PrimTypeChar), Value: int64(r)}
}

// -----------------------------------------------------------------------------

// unquote strips the quotes from a string or character literal.
func unquote(text string) string {
	if len(text) < 2 {
		return ""
	}

	return text[1 : len(text)-1]
}

// decodeEscapes interprets the escape sequences of a literal body.
func decodeEscapes(body string) (string, error) {
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}

		i++
		if i == len(body) {
			return "", errors.New("unterminated escape sequence")
		}

		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case '\\', '"', '\'':
			sb.WriteByte(body[i])
		case 'x':
			if i+3 > len(body) {
				return "", errors.New("incomplete escape sequence: `\\x` takes two hex digits")
			}

			b, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid escape sequence: `\\x%s`", body[i+1:i+3])
			}

			sb.WriteByte(byte(b))
			i += 2
		default:
			return "", fmt.Errorf("unknown escape sequence: `\\%c`", body[i])
		}
	}

	return sb.String(), nil
}
