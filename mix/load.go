package mix

// execLoad dispatches LDx/LDxN to the 6-byte (A/X) or 3-byte (I1..I6)
// variant depending on which register family member fired.
func (v *VM) execLoad(instr Instruction) error {
	if !instr.Field.Valid() {
		return NewError(ErrInvalidField, v.PC, "invalid field specifier")
	}

	// Both halves of the family (LDA..LDX and LDAN..LDXN) lay registers out
	// in the same A,1,2,3,4,5,6,X order, so the slot is always relative to
	// the family's own A-opcode: 0=A, 1..6=I1..I6, 7=X.
	negate := instr.Op >= OpLdAN
	base := OpLdA
	if negate {
		base = OpLdAN
	}
	slot := registerIndex(base, instr.Op)

	addr, err := v.effectiveMemAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}
	mem, err := v.Memory.Read(addr)
	if err != nil {
		return err
	}

	l, r, signCopy := instr.Field.SignlessRange()

	if slot == 0 || slot == 7 {
		var reg *Word
		if slot == 0 {
			reg = &v.RA
		} else {
			reg = &v.RX
		}
		*reg = NewFullWord()
		reg.SetSign(negate) // understood sign: POS normally, NEG for the N variants
		copyFieldIntoRegister(reg, mem, l, r, signCopy, negate)
		return nil
	}

	// 3-byte index register: extract into a scratch FullWord, then fold
	// back only the sign and the last two magnitude bytes.
	temp := NewFullWord()
	temp.SetSign(negate)
	copyFieldIntoRegister(&temp, mem, l, r, signCopy, negate)

	reg := v.indexRegister(slot)
	reg.SetByte(0, temp.Byte(0))
	reg.SetByte(1, temp.Byte(4))
	reg.SetByte(2, temp.Byte(5))
	return nil
}

// copyFieldIntoRegister copies memory bytes [l,r] right-aligned into
// reg's bytes 1..5, and the (possibly negated) sign if the field included
// byte 0.
func copyFieldIntoRegister(reg *Word, mem Word, l, r int, signCopy, negate bool) {
	width := r - l + 1
	dst := 5
	for src := r; src >= l && width > 0; src-- {
		reg.SetByte(dst, mem.Byte(src))
		dst--
		width--
	}
	if signCopy {
		memNeg := !mem.IsPositive()
		if negate {
			memNeg = !memNeg
		}
		reg.SetSign(memNeg)
	}
}
