package mix

// execMove handles MOVE: copy F consecutive words from M to the address
// held in rI1's magnitude bytes, then advance rI1 by the count copied.
// F == 0 is a no-op (matches the reference simulator's loop-zero-times
// behavior rather than treating it as an error).
func (v *VM) execMove(instr Instruction) error {
	from, err := v.effectiveMemAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}
	toHi, toLo := v.RI[1].Byte(1), v.RI[1].Byte(2)
	to := uint16(toHi)<<8 | uint16(toLo)

	n := int(instr.Field)
	for i := 0; i < n; i++ {
		srcAddr := from + uint16(i)
		dstAddr := to + uint16(i)
		if int(srcAddr) >= MemorySize || int(dstAddr) >= MemorySize {
			return NewError(ErrInvalidAddress, v.PC, "MOVE address out of range")
		}
		w, err := v.Memory.Read(srcAddr)
		if err != nil {
			return err
		}
		if err := v.Memory.Write(dstAddr, w); err != nil {
			return err
		}
	}

	i1, _ := v.RI[1].ToInt64()
	overflow := v.RI[1].FromInt64(i1 + int64(n))
	if overflow {
		v.Overflow = true
	}
	return nil
}
