package mix

// execIoc handles IOC: issue a device-specific control command, where the
// command value is the (unchecked, possibly negative) effective address.
func (v *VM) execIoc(instr Instruction) error {
	dev, err := v.device(int(instr.Field))
	if err != nil {
		return err
	}
	m, err := v.effectiveAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}
	if err := dev.Control(m); err != nil {
		return WrapError(ErrIOError, v.PC, "device control failed", err)
	}
	return nil
}

// execInOut handles IN and OUT: block transfer of exactly BlockSize()
// words between the device and a contiguous memory region starting at
// the effective address.
func (v *VM) execInOut(instr Instruction) error {
	dev, err := v.device(int(instr.Field))
	if err != nil {
		return err
	}
	start, err := v.effectiveMemAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}
	blockSize := dev.BlockSize()
	if int(start)+blockSize > MemorySize {
		return NewError(ErrInvalidAddress, v.PC, "IN/OUT block runs past end of memory")
	}

	switch instr.Op {
	case OpIn:
		buf := make([]Word, blockSize)
		if err := dev.Read(buf); err != nil {
			return WrapError(ErrIOError, v.PC, "device read failed", err)
		}
		for i, w := range buf {
			if err := v.Memory.Write(start+uint16(i), w); err != nil {
				return err
			}
		}
	case OpOut:
		buf := make([]Word, blockSize)
		for i := range buf {
			w, err := v.Memory.Read(start + uint16(i))
			if err != nil {
				return err
			}
			buf[i] = w
		}
		if _, err := dev.Write(buf); err != nil {
			return WrapError(ErrIOError, v.PC, "device write failed", err)
		}
	}
	return nil
}
