package mixal

import (
	"regexp"

	"github.com/knuth-taocp/mixes/mix"
)

// exprAtomPattern matches one MIXAL expression: an optional leading sign,
// an atom (identifier, number or '*'), then any number of operator+atom
// pairs, mirroring Knuth's grammar for address expressions.
const exprAtomPattern = `(?:[+\-]?(?:[A-Z0-9]+|\*)(?:[+\-*/:](?:[A-Z0-9]+|\*))*)`

var (
	addressAPattern   = regexp.MustCompile(`^(` + exprAtomPattern + `)$`)
	addressAFPattern  = regexp.MustCompile(`^(` + exprAtomPattern + `)\((` + exprAtomPattern + `)\)$`)
	addressAIPattern  = regexp.MustCompile(`^(` + exprAtomPattern + `),(` + exprAtomPattern + `)$`)
	addressAIFPattern = regexp.MustCompile(`^(` + exprAtomPattern + `),(` + exprAtomPattern + `)\((` + exprAtomPattern + `)\)$`)
)

// AddressForm is the parsed A,I(F) operand of a MIX instruction line,
// each part still an unevaluated expression string (resolved against the
// symbol table during the second pass, once all labels are known).
type AddressForm struct {
	A string
	I string
	F string
}

// ParseAddressForm recognizes which of the four operand shapes (A, A(F),
// A,I, A,I(F)) addr is and splits it into its expression parts.
func ParseAddressForm(addr string) (AddressForm, error) {
	if m := addressAIFPattern.FindStringSubmatch(addr); m != nil {
		return AddressForm{A: m[1], I: m[2], F: m[3]}, nil
	}
	if m := addressAIPattern.FindStringSubmatch(addr); m != nil {
		return AddressForm{A: m[1], I: m[2]}, nil
	}
	if m := addressAFPattern.FindStringSubmatch(addr); m != nil {
		return AddressForm{A: m[1], F: m[2]}, nil
	}
	if m := addressAPattern.FindStringSubmatch(addr); m != nil {
		return AddressForm{A: m[1]}, nil
	}
	return AddressForm{}, NewError(0, addr, "malformed address expression")
}

// Resolve evaluates the A, I and F parts of form against syms, applying
// defaultF when the line supplied no explicit (F) part.
func (form AddressForm) Resolve(syms SymbolTable, defaultF int) (mix.Instruction, error) {
	var instr mix.Instruction

	a := int64(0)
	if form.A != "" {
		v, err := EvalExpr(form.A, syms)
		if err != nil {
			return instr, err
		}
		a = v
	}
	instr.Addr = int16(a)

	if form.I != "" {
		v, err := EvalExpr(form.I, syms)
		if err != nil {
			return instr, err
		}
		instr.Index = byte(v)
	}

	f := defaultF
	if form.F != "" {
		v, err := EvalExpr(form.F, syms)
		if err != nil {
			return instr, err
		}
		f = int(v)
	}
	instr.Field = mix.Field(byte(f))
	return instr, nil
}
