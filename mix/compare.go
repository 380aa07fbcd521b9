package mix

// execCompare handles CMPA, CMP1..CMP6, CMPX: sets the comparison
// indicator from the signed field comparison of a register against
// memory. +0 and -0 compare equal.
func (v *VM) execCompare(instr Instruction) error {
	l, r := instr.Field.Decode()
	if !instr.Field.Valid() {
		return NewError(ErrInvalidField, v.PC, "invalid field specifier")
	}

	addr, err := v.effectiveMemAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}
	mem, err := v.Memory.Read(addr)
	if err != nil {
		return err
	}
	memValue, _ := mem.ToInt64Ranged(l, r)

	var regValue int64
	switch instr.Op {
	case OpCmpA:
		regValue, _ = v.RA.ToInt64Ranged(l, r)
	case OpCmpX:
		regValue, _ = v.RX.ToInt64Ranged(l, r)
	default: // Cmp1..Cmp6
		slot := registerIndex(OpCmpA, instr.Op)
		padded := padIndexReg(v.RI[slot])
		full := NewFullWord()
		full.SetAll(padded[:])
		regValue, _ = full.ToInt64Ranged(l, r)
	}

	switch {
	case regValue == memValue:
		v.Comparison = CompEqual
	case regValue > memValue:
		v.Comparison = CompGreater
	default:
		v.Comparison = CompLess
	}
	return nil
}
