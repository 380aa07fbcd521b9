package mix

// execute dispatches a decoded instruction to its handler.
func (v *VM) execute(instr Instruction) error {
	switch {
	case instr.Op == OpNop:
		return nil
	case instr.Op == OpAdd || instr.Op == OpSub:
		return v.execAddSub(instr)
	case instr.Op == OpMul:
		return v.execMul(instr)
	case instr.Op == OpDiv:
		return v.execDiv(instr)
	case instr.Op == OpSpecial:
		return v.execSpecial(instr)
	case instr.Op == OpShift:
		return v.execShift(instr)
	case instr.Op == OpMove:
		return v.execMove(instr)
	case instr.Op.IsLoad():
		return v.execLoad(instr)
	case instr.Op.IsStore():
		return v.execStore(instr)
	case instr.Op == OpJbus || instr.Op == OpJred:
		return v.execJbusJred(instr)
	case instr.Op == OpIoc:
		return v.execIoc(instr)
	case instr.Op == OpIn || instr.Op == OpOut:
		return v.execInOut(instr)
	case instr.Op == OpJmp:
		return v.execJmp(instr)
	case instr.Op.IsJreg():
		return v.execJreg(instr)
	case instr.Op.IsModify():
		return v.execModify(instr)
	case instr.Op.IsCompare():
		return v.execCompare(instr)
	default:
		return NewError(ErrIllegalInstruction, v.PC, "unhandled opcode")
	}
}

// fullWordRegister returns a pointer to rA or rX for the two 6-byte
// members of a register family (slot 0 == A, slot 7 == X).
func (v *VM) fullWordRegister(base, op Opcode) *Word {
	if registerIndex(base, op) == 0 {
		return &v.RA
	}
	return &v.RX
}

// indexRegister returns a pointer to rI1..rI6 for the 3-byte members of a
// register family, given the family slot number (1..6).
func (v *VM) indexRegister(slot int) *Word {
	return &v.RI[slot]
}
