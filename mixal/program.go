package mixal

import (
	"strings"

	"github.com/knuth-taocp/mixes/mix"
)

// Program is the assembled output of a MIXAL source file: a flat list of
// encoded words (instructions and CON/ALF constants) addressed by ORIG,
// the resolved symbol table, and the program's entry point from END.
type Program struct {
	Words       map[uint16]mix.Word
	Symbols     map[string]int64
	EntryPoint  uint16
	Order       []uint16 // addresses in the order they were assembled, for listings
}

// symbolTable implements SymbolTable over a Program under construction.
type symbolTable struct {
	prog *Program
	loc  int64
}

func (s *symbolTable) Lookup(name string) (int64, bool) {
	v, ok := s.prog.Symbols[name]
	return v, ok
}

func (s *symbolTable) Here() int64 { return s.loc }

// rawLine pairs a parsed Line with its 1-based source line number for
// error reporting across the two passes.
type rawLine struct {
	num int
	ln  Line
}

// Assemble runs a two-pass assembly of MIXAL source text: the first pass
// walks ORIG/EQU/labels to build the symbol table (forward references
// resolve because by the time an operand expression is evaluated in pass
// two, every label has a value); the second pass evaluates every
// instruction and pseudo-op into Program.Words.
func Assemble(source string) (*Program, error) {
	lines := strings.Split(source, "\n")
	var raws []rawLine
	for i, text := range lines {
		ln, err := ParseLine(text)
		if err != nil {
			return nil, WrapError(i+1, text, "tokenize failed", err)
		}
		raws = append(raws, rawLine{num: i + 1, ln: ln})
	}

	prog := &Program{
		Words:   make(map[uint16]mix.Word),
		Symbols: make(map[string]int64),
	}
	syms := &symbolTable{prog: prog}

	loc := int64(0)
	for _, r := range raws {
		ln := r.ln
		if ln.Comment || ln.Op == "" {
			continue
		}
		upperOp := strings.ToUpper(ln.Op)
		syms.loc = loc

		switch upperOp {
		case "ORIG":
			if ln.Loc != "" {
				prog.Symbols[strings.ToUpper(ln.Loc)] = loc
			}
			v, err := EvalExpr(ln.Address, syms)
			if err != nil {
				return nil, WrapError(r.num, ln.Address, "bad ORIG operand", err)
			}
			loc = v
			continue
		case "EQU":
			if ln.Loc == "" {
				return nil, NewError(r.num, ln.Address, "EQU requires a label")
			}
			v, err := EvalExpr(ln.Address, syms)
			if err != nil {
				return nil, WrapError(r.num, ln.Address, "bad EQU operand", err)
			}
			prog.Symbols[strings.ToUpper(ln.Loc)] = v
			continue
		case "END":
			if ln.Loc != "" {
				prog.Symbols[strings.ToUpper(ln.Loc)] = loc
			}
			continue
		}

		if ln.Loc != "" {
			prog.Symbols[strings.ToUpper(ln.Loc)] = loc
		}
		if upperOp == "ALF" {
			loc++
			continue
		}
		if upperOp == "CON" {
			loc += int64(countWValues(ln.Address))
			continue
		}
		if _, ok := mnemonics[upperOp]; ok {
			loc++
			continue
		}
		return nil, NewError(r.num, ln.Op, "unknown operation: "+ln.Op)
	}

	loc = 0
	for _, r := range raws {
		ln := r.ln
		if ln.Comment || ln.Op == "" {
			continue
		}
		upperOp := strings.ToUpper(ln.Op)
		syms.loc = loc

		switch upperOp {
		case "ORIG":
			v, err := EvalExpr(ln.Address, syms)
			if err != nil {
				return nil, WrapError(r.num, ln.Address, "bad ORIG operand", err)
			}
			loc = v
			continue
		case "EQU":
			continue
		case "END":
			v, err := EvalExpr(ln.Address, syms)
			if err != nil {
				return nil, WrapError(r.num, ln.Address, "bad END operand", err)
			}
			prog.EntryPoint = uint16(v)
			continue
		}

		addr := uint16(loc)
		switch upperOp {
		case "ALF":
			w, err := assembleAlf(ln.Address)
			if err != nil {
				return nil, WrapError(r.num, ln.Address, "bad ALF operand", err)
			}
			prog.Words[addr] = w
			prog.Order = append(prog.Order, addr)
			loc++
			continue
		case "CON":
			words, err := assembleConstants(ln.Address, syms)
			if err != nil {
				return nil, WrapError(r.num, ln.Address, "bad CON operand", err)
			}
			for _, w := range words {
				prog.Words[uint16(loc)] = w
				prog.Order = append(prog.Order, uint16(loc))
				loc++
			}
			continue
		}

		info, ok := mnemonics[upperOp]
		if !ok {
			return nil, NewError(r.num, ln.Op, "unknown operation: "+ln.Op)
		}
		form, err := ParseAddressForm(strings.TrimSpace(ln.Address))
		if err != nil {
			if ln.Address == "" {
				form = AddressForm{}
			} else {
				return nil, WrapError(r.num, ln.Address, "bad operand", err)
			}
		}
		instr, err := form.Resolve(syms, info.DefaultF)
		if err != nil {
			return nil, WrapError(r.num, ln.Address, "operand evaluation failed", err)
		}
		instr.Op = info.Op
		if info.HasF && form.F == "" {
			instr.Field = mix.Field(byte(info.DefaultF))
		}
		prog.Words[addr] = instr.Encode()
		prog.Order = append(prog.Order, addr)
		loc++
	}

	return prog, nil
}

// countWValues reports how many comma-separated W-values (and thus CON
// words) an address expression contains.
func countWValues(addr string) int {
	if strings.TrimSpace(addr) == "" {
		return 1
	}
	depth := 0
	count := 1
	for _, c := range addr {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				count++
			}
		}
	}
	return count
}

// assembleConstants evaluates a CON pseudo-op's comma-separated W-value
// list into one or more full words.
func assembleConstants(addr string, syms SymbolTable) ([]mix.Word, error) {
	parts := splitWValue(addr)
	var words []mix.Word
	for _, p := range parts {
		w, err := evalWValue(p, syms)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

// splitWValue splits a W-value on top-level commas (commas inside parens
// belong to an embedded field-spec, not the value list).
func splitWValue(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// evalWValue evaluates one A(F) atom of a W-value and packs it into a
// full word, applying F's byte range (default the whole word).
func evalWValue(atom string, syms SymbolTable) (mix.Word, error) {
	form, err := ParseAddressForm(strings.TrimSpace(atom))
	if err != nil {
		// A(F) without the ",I" form still parses via ParseAddressForm's
		// A(F) branch; a bare A falls through to its A-only branch.
		return mix.Word{}, err
	}
	v, err := EvalExpr(form.A, syms)
	if err != nil {
		return mix.Word{}, err
	}
	w := mix.NewFullWord()
	w.FromInt64(v)
	if form.F == "" {
		return w, nil
	}
	fv, err := EvalExpr(form.F, syms)
	if err != nil {
		return mix.Word{}, err
	}
	field := mix.Field(byte(fv))
	// Field-restricted CON values store only within that byte range of an
	// otherwise zero word, per Knuth's W-value convention.
	out := mix.NewFullWord()
	packFieldInto(&out, w, field)
	return out, nil
}

// packFieldInto copies the low bytes of src's magnitude into dst at the
// byte range named by f, leaving the rest of dst zero.
func packFieldInto(dst *mix.Word, src mix.Word, f mix.Field) {
	l, r, signCopy := f.SignlessRange()
	if signCopy {
		dst.SetSign(!src.IsPositive())
	}
	width := r - l + 1
	if width <= 0 {
		return
	}
	srcBytes := src.Bytes()
	srcIdx := len(srcBytes) - 1
	for i := r; i >= l && i >= 1; i-- {
		if srcIdx >= 1 {
			dst.SetByte(i, srcBytes[srcIdx])
			srcIdx--
		}
	}
}

// assembleAlf packs up to five characters of a quoted ALF literal into a
// word's magnitude bytes, space-padding short literals.
func assembleAlf(addr string) (mix.Word, error) {
	text := strings.TrimSpace(addr)
	text = strings.Trim(text, "\"")
	for len(text) < 5 {
		text += " "
	}
	w := mix.NewFullWord()
	for i, r := range []rune(text) {
		if i >= 5 {
			break
		}
		b, ok := mix.CharToByte(r)
		if !ok {
			return w, NewError(0, addr, "character not in MIX alphabet")
		}
		w.SetByte(i+1, b)
	}
	return w, nil
}
