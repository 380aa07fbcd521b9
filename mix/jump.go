package mix

// doJump sets PC to location. Callers invoke saveReturnAddress first
// unless the variant is JSJ.
func (v *VM) doJump(location uint16) {
	v.PC = location
}

// saveReturnAddress stores the address of the instruction after this jump
// (PC has already been advanced past the jump instruction by Step) into
// rJ's two magnitude bytes.
func (v *VM) saveReturnAddress() {
	pc := v.PC
	v.RJ.SetByte(1, byte(pc>>8))
	v.RJ.SetByte(2, byte(pc))
}

// execJmp handles JMP and its F-selected variants (JSJ, JOV, JNOV, JL,
// JE, JG, JGE, JNE, JLE).
func (v *VM) execJmp(instr Instruction) error {
	target, err := v.effectiveMemAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}

	f := int(instr.Field)
	var shouldJump bool
	switch f {
	case JmpJMP, JmpJSJ:
		shouldJump = true
	case JmpJOV:
		shouldJump = v.Overflow
	case JmpJNOV:
		shouldJump = !v.Overflow
	case JmpJL:
		shouldJump = v.Comparison == CompLess
	case JmpJE:
		shouldJump = v.Comparison == CompEqual
	case JmpJG:
		shouldJump = v.Comparison == CompGreater
	case JmpJGE:
		shouldJump = v.Comparison != CompLess
	case JmpJNE:
		shouldJump = v.Comparison != CompEqual
	case JmpJLE:
		shouldJump = v.Comparison != CompGreater
	default:
		return NewError(ErrInvalidField, v.PC, "invalid jump sub-operation")
	}

	if f == JmpJOV || f == JmpJNOV {
		v.Overflow = false
	}

	if shouldJump {
		if f != JmpJSJ {
			v.saveReturnAddress()
		}
		v.doJump(target)
	}
	return nil
}

// execJreg handles JA, J1..J6, JX: a jump conditioned on the sign of a
// register's value. Unlike JSJ, a taken register jump always saves rJ.
func (v *VM) execJreg(instr Instruction) error {
	target, err := v.effectiveMemAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}

	slot := registerIndex(OpJA, instr.Op)
	var value int64
	if slot == 0 {
		value, _ = v.RA.ToInt64()
	} else if slot == 7 {
		value, _ = v.RX.ToInt64()
	} else {
		value, _ = v.RI[slot].ToInt64()
	}
	sign := signOf(value)

	var shouldJump bool
	switch instr.Field {
	case JregN:
		shouldJump = sign < 0
	case JregZ:
		shouldJump = sign == 0
	case JregP:
		shouldJump = sign > 0
	case JregNN:
		shouldJump = sign >= 0
	case JregNZ:
		shouldJump = sign != 0
	case JregNP:
		shouldJump = sign <= 0
	default:
		return NewError(ErrInvalidField, v.PC, "invalid register-jump sub-operation")
	}

	if shouldJump {
		v.saveReturnAddress()
		v.doJump(target)
	}
	return nil
}

// execJbusJred handles JBUS (jump if device busy) and JRED (jump if
// device ready). The device unit is selected by the field byte.
func (v *VM) execJbusJred(instr Instruction) error {
	dev, err := v.device(int(instr.Field))
	if err != nil {
		return err
	}

	var shouldJump bool
	if instr.Op == OpJbus {
		shouldJump = dev.IsBusy()
	} else {
		shouldJump = dev.IsReady()
	}

	if shouldJump {
		target, err := v.effectiveMemAddress(instr.Addr, instr.Index)
		if err != nil {
			return err
		}
		v.saveReturnAddress()
		v.doJump(target)
	}
	return nil
}

func signOf(v int64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
