package mix

// execShift handles SLA/SRA/SLAX/SRAX/SLC/SRC. The effective address is
// the shift count in bytes, not bits; sign bytes are never touched.
func (v *VM) execShift(instr Instruction) error {
	count, err := v.effectiveAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}

	switch instr.Field {
	case ShiftSLA:
		mag := aMagnitude(v)
		shifted := shiftLeft(mag, count)
		setAMagnitude(v, shifted)
	case ShiftSRA:
		mag := aMagnitude(v)
		shifted := shiftRight(mag, count)
		setAMagnitude(v, shifted)
	case ShiftSLAX:
		mag := axMagnitude(v)
		shifted := shiftLeftWide(mag, count)
		setAXMagnitude(v, shifted)
	case ShiftSRAX:
		mag := axMagnitude(v)
		shifted := shiftRightWide(mag, count)
		setAXMagnitude(v, shifted)
	case ShiftSLC, ShiftSRC:
		bytes := axMagnitude(v)
		n := int(count % 10)
		if n < 0 {
			n += 10
		}
		var offset int
		if instr.Field == ShiftSLC {
			offset = n
		} else {
			offset = (10 - n) % 10
		}
		rotated := rotateLeft10(bytes, offset)
		setAXMagnitude(v, rotated)
	default:
		return NewError(ErrInvalidField, v.PC, "invalid shift sub-operation")
	}
	return nil
}

func aMagnitude(v *VM) [5]byte {
	var m [5]byte
	for i := 0; i < 5; i++ {
		m[i] = v.RA.Byte(i + 1)
	}
	return m
}

func setAMagnitude(v *VM, m [5]byte) {
	for i := 0; i < 5; i++ {
		v.RA.SetByte(i+1, m[i])
	}
}

func axMagnitude(v *VM) [10]byte {
	var m [10]byte
	for i := 0; i < 5; i++ {
		m[i] = v.RA.Byte(i + 1)
		m[i+5] = v.RX.Byte(i + 1)
	}
	return m
}

func setAXMagnitude(v *VM, m [10]byte) {
	for i := 0; i < 5; i++ {
		v.RA.SetByte(i+1, m[i])
		v.RX.SetByte(i+1, m[i+5])
	}
}

func shiftLeft(m [5]byte, count int64) [5]byte {
	var out [5]byte
	if count < 0 {
		count = 0
	}
	for i := 0; i < 5; i++ {
		src := i + int(count)
		if src < 5 {
			out[i] = m[src]
		}
	}
	return out
}

func shiftRight(m [5]byte, count int64) [5]byte {
	var out [5]byte
	if count < 0 {
		count = 0
	}
	for i := 0; i < 5; i++ {
		src := i - int(count)
		if src >= 0 {
			out[i] = m[src]
		}
	}
	return out
}

func shiftLeftWide(m [10]byte, count int64) [10]byte {
	var out [10]byte
	if count < 0 {
		count = 0
	}
	for i := 0; i < 10; i++ {
		src := i + int(count)
		if src < 10 {
			out[i] = m[src]
		}
	}
	return out
}

func shiftRightWide(m [10]byte, count int64) [10]byte {
	var out [10]byte
	if count < 0 {
		count = 0
	}
	for i := 0; i < 10; i++ {
		src := i - int(count)
		if src >= 0 {
			out[i] = m[src]
		}
	}
	return out
}

// rotateLeft10 cyclically rotates a 10-byte array left by offset bytes.
func rotateLeft10(m [10]byte, offset int) [10]byte {
	var out [10]byte
	for i := 0; i < 10; i++ {
		out[i] = m[(i+offset)%10]
	}
	return out
}
