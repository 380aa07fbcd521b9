package mix

import "math/big"

// execAddSub handles ADD and SUB: rA <- rA (+/-) CONTENT(M, F).
func (v *VM) execAddSub(instr Instruction) error {
	addr, err := v.effectiveMemAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}
	mem, err := v.Memory.Read(addr)
	if err != nil {
		return err
	}
	l, r := instr.Field.Decode()
	if !instr.Field.Valid() {
		return NewError(ErrInvalidField, v.PC, "invalid field specifier")
	}

	target, _ := mem.ToInt64Ranged(l, r)
	if instr.Op == OpSub {
		target = -target
	}

	orig, _ := v.RA.ToInt64()
	sum := orig + target
	overflow := v.RA.FromInt64(sum)
	if overflow {
		v.Overflow = true
	}
	return nil
}

// execMul handles MUL: rAX <- rA * CONTENT(M, F), a full 10-byte product.
func (v *VM) execMul(instr Instruction) error {
	addr, err := v.effectiveMemAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}
	mem, err := v.Memory.Read(addr)
	if err != nil {
		return err
	}
	l, r := instr.Field.Decode()
	if !instr.Field.Valid() {
		return NewError(ErrInvalidField, v.PC, "invalid field specifier")
	}

	a, _ := v.RA.ToInt64()
	m, _ := mem.ToInt64Ranged(l, r)

	overflow := false
	// int64*int64 can overflow 63 bits; widen manually via a 32x32->64
	// split-and-carry multiply rather than pull in a bignum dependency.
	hi, lo := mul64(absInt64(a), absInt64(m))
	negProduct := (a < 0) != (m < 0)

	var wide [16]byte
	tmpLo, tmpHi := lo, hi
	for i := 15; i >= 8; i-- {
		wide[i] = byte(tmpLo & 0xFF)
		tmpLo >>= 8
	}
	for i := 7; i >= 0; i-- {
		wide[i] = byte(tmpHi & 0xFF)
		tmpHi >>= 8
	}
	var bytes10 [10]byte
	copy(bytes10[:], wide[6:16])
	// any nonzero byte above the 80 bits the registers hold signals overflow
	for _, b := range wide[:6] {
		if b != 0 {
			overflow = true
		}
	}

	for i := 0; i < 5; i++ {
		v.RA.SetByte(i+1, bytes10[i])
		v.RX.SetByte(i+1, bytes10[i+5])
	}
	v.RA.SetSign(negProduct)
	v.RX.SetSign(negProduct)
	if overflow {
		v.Overflow = true
	}
	return nil
}

// execDiv handles DIV: (rA,rX) as a 10-byte dividend / CONTENT(M,F),
// quotient into rA, remainder into rX. A zero divisor or an overflowing
// quotient sets the overflow flag but still writes zeros into rA/rX,
// matching the reference simulator's observed (if curious) behavior.
func (v *VM) execDiv(instr Instruction) error {
	addr, err := v.effectiveMemAddress(instr.Addr, instr.Index)
	if err != nil {
		return err
	}
	mem, err := v.Memory.Read(addr)
	if err != nil {
		return err
	}
	l, r := instr.Field.Decode()
	if !instr.Field.Valid() {
		return NewError(ErrInvalidField, v.PC, "invalid field specifier")
	}
	divisor, _ := mem.ToInt64Ranged(l, r)

	// rA:rX holds a 10-byte (80-bit) magnitude, too wide for a uint64,
	// so the dividend is assembled and divided with math/big, matching
	// the wider native integer type the reference simulator promotes
	// to for this same instruction.
	dividendBytes := make([]byte, 0, 10)
	for i := 1; i <= 5; i++ {
		dividendBytes = append(dividendBytes, v.RA.Byte(i))
	}
	for i := 1; i <= 5; i++ {
		dividendBytes = append(dividendBytes, v.RX.Byte(i))
	}
	dividendMag := new(big.Int).SetBytes(dividendBytes)
	aWasPositive := v.RA.IsPositive()

	var quotient, remainder uint64
	overflow := false
	if divisor == 0 {
		overflow = true
	} else {
		divMag := big.NewInt(absInt64(divisor))
		q, rem := new(big.Int).QuoRem(dividendMag, divMag, new(big.Int))
		if q.BitLen() > 40 { // more than 5 bytes (40 bits)
			overflow = true
		} else {
			quotient = q.Uint64()
			remainder = rem.Uint64()
		}
	}

	newSignPositive := aWasPositive == (divisor >= 0)

	v.RX.SetSign(!aWasPositive) // remainder keeps rA's original sign
	v.RA.SetSign(!newSignPositive)
	for i := 0; i < 5; i++ {
		shift := uint(8 * (4 - i))
		v.RA.SetByte(i+1, byte(quotient>>shift))
		v.RX.SetByte(i+1, byte(remainder>>shift))
	}
	if overflow {
		v.Overflow = true
	}
	return nil
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// mul64 returns the 128-bit product of two non-negative 64-bit values as
// (high, low) 64-bit halves.
func mul64(a, b int64) (hi, lo uint64) {
	ua, ub := uint64(a), uint64(b)
	aLo, aHi := ua&0xFFFFFFFF, ua>>32
	bLo, bHi := ub&0xFFFFFFFF, ub>>32

	lowLow := aLo * bLo
	lowHigh := aLo * bHi
	highLow := aHi * bLo
	highHigh := aHi * bHi

	mid := lowHigh + highLow
	carry := uint64(0)
	if mid < lowHigh {
		carry = 1 << 32
	}

	lo = lowLow + (mid << 32)
	loCarry := uint64(0)
	if lo < lowLow {
		loCarry = 1
	}
	hi = highHigh + (mid >> 32) + carry + loCarry
	return hi, lo
}
