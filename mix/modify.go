package mix

// execModify handles the INCx/DECx/ENTx/ENNx family for both the 6-byte
// (A/X) and 3-byte (I1..I6) register members.
func (v *VM) execModify(instr Instruction) error {
	addrSigned, err := v.effectiveAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}

	switch instr.Field {
	case ModifyINC, ModifyDEC:
		offset := addrSigned
		if instr.Field == ModifyDEC {
			offset = -offset
		}
		return v.modifyAdd(instr.Op, offset)
	case ModifyENT, ModifyENN:
		return v.modifyEnter(instr.Op, addrSigned, instr.Field == ModifyENN)
	default:
		return NewError(ErrInvalidField, v.PC, "invalid modify sub-operation")
	}
}

func (v *VM) modifyAdd(op Opcode, offset int64) error {
	if op == OpModifyA || op == OpModifyX {
		reg := v.fullWordRegister(OpModifyA, op)
		value, _ := reg.ToInt64()
		overflow := reg.FromInt64(value + offset)
		if overflow {
			v.Overflow = true
		}
		return nil
	}
	slot := registerIndex(OpModifyA, op)
	reg := v.indexRegister(slot)
	value, _ := reg.ToInt64()
	overflow := reg.FromInt64(value + offset)
	if overflow {
		v.Overflow = true
	}
	return nil
}

func (v *VM) modifyEnter(op Opcode, addr int64, negate bool) error {
	if op == OpModifyA || op == OpModifyX {
		reg := v.fullWordRegister(OpModifyA, op)
		reg.FromInt64(addr)
		if negate {
			reg.FlipSign()
		}
		return nil
	}
	slot := registerIndex(OpModifyA, op)
	reg := v.indexRegister(slot)
	reg.FromInt64(addr)
	if negate {
		reg.FlipSign()
	}
	return nil
}
