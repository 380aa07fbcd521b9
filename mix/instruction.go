package mix

// Instruction is the decoded (A, I, F, C) tuple: a signed address, an
// index register selector, a field specifier, and an opcode.
type Instruction struct {
	Addr  int16
	Index byte
	Field Field
	Op    Opcode
}

// DecodeInstruction unpacks a FullWord into an Instruction. Byte 0 gives
// the address sign, bytes 1-2 the address magnitude (big-endian), byte 3
// the index, byte 4 the field, byte 5 the opcode. Decoding fails only
// when byte 5 is not a legal opcode value.
func DecodeInstruction(w Word) (Instruction, error) {
	b := w.bytes
	c := b[5]
	if !OpcodeValid(c) {
		return Instruction{}, NewError(ErrIllegalInstruction, 0, "byte 5 is not a valid opcode")
	}
	mag := int16(b[1])<<8 | int16(b[2])
	addr := mag
	if !w.IsPositive() {
		addr = -mag
	}
	return Instruction{
		Addr:  addr,
		Index: b[3],
		Field: Field(b[4]),
		Op:    Opcode(c),
	}, nil
}

// Encode packs the instruction back into a FullWord.
func (in Instruction) Encode() Word {
	w := NewFullWord()
	mag := in.Addr
	neg := mag < 0
	if neg {
		mag = -mag
	}
	w.SetSign(neg)
	w.SetByte(1, byte(mag>>8))
	w.SetByte(2, byte(mag))
	w.SetByte(3, in.Index)
	w.SetByte(4, byte(in.Field))
	w.SetByte(5, byte(in.Op))
	return w
}
