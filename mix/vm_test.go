package mix

import "testing"

func TestVM_NewVM_Defaults(t *testing.T) {
	v := NewVM()
	if v.PC != 0 {
		t.Errorf("expected PC=0, got %d", v.PC)
	}
	if v.Comparison != CompEqual {
		t.Error("expected initial comparison to be EQUAL")
	}
	if v.Halted {
		t.Error("a fresh VM should not be halted")
	}
}

func TestVM_Step_LDA(t *testing.T) {
	v := NewVM()
	mem := NewFullWord()
	mem.FromInt64(42)
	if err := v.Memory.Write(100, mem); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	instr := Instruction{Addr: 100, Field: NewField(0, 5), Op: OpLdA}
	if err := v.Memory.Write(0, instr.Encode()); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	got, _ := v.RA.ToInt64()
	if got != 42 {
		t.Errorf("expected rA=42, got %d", got)
	}
	if v.PC != 1 {
		t.Errorf("expected PC=1 after one step, got %d", v.PC)
	}
	if v.CycleCount != 1 {
		t.Errorf("expected CycleCount=1, got %d", v.CycleCount)
	}
}

func TestVM_Step_STA(t *testing.T) {
	v := NewVM()
	v.RA.FromInt64(77)

	instr := Instruction{Addr: 500, Field: NewField(0, 5), Op: OpStA}
	v.Memory.Write(0, instr.Encode())

	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	word, err := v.Memory.Read(500)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	got, _ := word.ToInt64()
	if got != 77 {
		t.Errorf("expected memory[500]=77, got %d", got)
	}
}

func TestVM_Step_AddSub(t *testing.T) {
	v := NewVM()
	v.RA.FromInt64(10)
	mem := NewFullWord()
	mem.FromInt64(5)
	v.Memory.Write(200, mem)

	instr := Instruction{Addr: 200, Field: NewField(0, 5), Op: OpAdd}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	got, _ := v.RA.ToInt64()
	if got != 15 {
		t.Errorf("expected rA=15 after ADD, got %d", got)
	}
}

func TestVM_ExecMul(t *testing.T) {
	v := NewVM()
	v.RA.FromInt64(6)
	mem := NewFullWord()
	mem.FromInt64(7)
	v.Memory.Write(300, mem)

	instr := Instruction{Addr: 300, Field: NewField(0, 5), Op: OpMul}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	gotA, _ := v.RA.ToInt64()
	gotX, _ := v.RX.ToInt64()
	if gotA != 0 || gotX != 42 {
		t.Errorf("expected rA:rX = 0:42 for 6*7, got %d:%d", gotA, gotX)
	}
}

func TestVM_ExecDiv(t *testing.T) {
	v := NewVM()
	// (rA,rX) holds the 10-byte dividend; set rX to the dividend's value.
	v.RX.FromInt64(17)
	mem := NewFullWord()
	mem.FromInt64(5)
	v.Memory.Write(400, mem)

	instr := Instruction{Addr: 400, Field: NewField(0, 5), Op: OpDiv}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	quotient, _ := v.RA.ToInt64()
	remainder, _ := v.RX.ToInt64()
	if quotient != 3 || remainder != 2 {
		t.Errorf("expected 17/5 = q3 r2, got q%d r%d", quotient, remainder)
	}
}

func TestVM_ExecDiv_ByZero_SetsOverflow(t *testing.T) {
	v := NewVM()
	v.RX.FromInt64(10)
	mem := NewFullWord() // zero divisor
	v.Memory.Write(400, mem)

	instr := Instruction{Addr: 400, Field: NewField(0, 5), Op: OpDiv}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	if !v.Overflow {
		t.Error("expected Overflow set after dividing by zero")
	}
}

func TestVM_ExecDiv_WideDividendUsesAllOfRAAndRX(t *testing.T) {
	v := NewVM()
	// rA:rX together hold a 10-byte (80-bit) magnitude. Set rA's low
	// byte so the dividend is 2^40: its only set bit lies in rA, above
	// all 40 bits of rX's magnitude.
	v.RA.SetByte(5, 1)
	mem := NewFullWord()
	mem.FromInt64(1_000_000_000_000)
	v.Memory.Write(400, mem)

	instr := Instruction{Addr: 400, Field: NewField(0, 5), Op: OpDiv}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	if v.Overflow {
		t.Fatal("expected no overflow: quotient fits in 40 bits")
	}
	quotient, _ := v.RA.ToInt64()
	remainder, _ := v.RX.ToInt64()
	if quotient != 1 || remainder != 99_511_627_776 {
		t.Errorf("expected 2^40/1e12 = q1 r99511627776, got q%d r%d", quotient, remainder)
	}
}

func TestVM_ExecCompare(t *testing.T) {
	v := NewVM()
	v.RA.FromInt64(5)
	mem := NewFullWord()
	mem.FromInt64(9)
	v.Memory.Write(600, mem)

	instr := Instruction{Addr: 600, Field: NewField(0, 5), Op: OpCmpA}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	if v.Comparison != CompLess {
		t.Errorf("expected LESS comparing 5 to 9, got %s", v.Comparison)
	}
}

func TestVM_ExecCompare_PositiveNegativeZeroAreEqual(t *testing.T) {
	v := NewVM()
	v.RA.SetSign(true) // -0
	mem := NewFullWord()
	mem.SetSign(false) // +0
	v.Memory.Write(600, mem)

	instr := Instruction{Addr: 600, Field: NewField(0, 5), Op: OpCmpA}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	if v.Comparison != CompEqual {
		t.Errorf("expected +0 == -0, got %s", v.Comparison)
	}
}

func TestVM_ExecJmp_SavesRJ(t *testing.T) {
	v := NewVM()
	instr := Instruction{Addr: 900, Field: JmpJMP, Op: OpJmp}
	v.Memory.Write(10, instr.Encode())
	v.PC = 10

	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	if v.PC != 900 {
		t.Errorf("expected PC=900 after JMP, got %d", v.PC)
	}
	rj, _ := v.RJ.ToInt64()
	if rj != 11 {
		t.Errorf("expected rJ=11 (instruction after the jump), got %d", rj)
	}
}

func TestVM_ExecJmp_JSJ_DoesNotSaveRJ(t *testing.T) {
	v := NewVM()
	v.RJ.FromInt64(123)
	instr := Instruction{Addr: 900, Field: JmpJSJ, Op: OpJmp}
	v.Memory.Write(0, instr.Encode())

	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	rj, _ := v.RJ.ToInt64()
	if rj != 123 {
		t.Errorf("JSJ must not touch rJ, got %d", rj)
	}
}

func TestVM_ExecModify_ENTA(t *testing.T) {
	v := NewVM()
	instr := Instruction{Addr: 55, Field: ModifyENT, Op: OpModifyA}
	v.Memory.Write(0, instr.Encode())

	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	got, _ := v.RA.ToInt64()
	if got != 55 {
		t.Errorf("expected rA=55 after ENTA 55, got %d", got)
	}
}

func TestVM_ExecModify_INC1(t *testing.T) {
	v := NewVM()
	v.RI[1].FromInt64(10)
	instr := Instruction{Addr: 5, Field: ModifyINC, Op: OpModify1}
	v.Memory.Write(0, instr.Encode())

	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	got, _ := v.RI[1].ToInt64()
	if got != 15 {
		t.Errorf("expected rI1=15 after INC1 5, got %d", got)
	}
}

func TestVM_ExecMove(t *testing.T) {
	v := NewVM()
	for i := int64(0); i < 3; i++ {
		w := NewFullWord()
		w.FromInt64(100 + i)
		v.Memory.Write(uint16(1000+i), w)
	}
	v.RI[1].FromInt64(2000)

	instr := Instruction{Addr: 1000, Field: Field(3), Op: OpMove}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	for i := int64(0); i < 3; i++ {
		w, _ := v.Memory.Read(uint16(2000 + i))
		got, _ := w.ToInt64()
		if got != 100+i {
			t.Errorf("expected memory[%d]=%d after MOVE, got %d", 2000+i, 100+i, got)
		}
	}
	i1, _ := v.RI[1].ToInt64()
	if i1 != 2003 {
		t.Errorf("expected rI1=2003 after MOVE advances it by 3, got %d", i1)
	}
}

func TestVM_ExecMove_ZeroFieldIsNoOp(t *testing.T) {
	v := NewVM()
	v.RI[1].FromInt64(2000)
	instr := Instruction{Addr: 1000, Field: Field(0), Op: OpMove}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	i1, _ := v.RI[1].ToInt64()
	if i1 != 2000 {
		t.Errorf("MOVE with F=0 must not advance rI1, got %d", i1)
	}
}

func TestVM_Step_HLT_HaltsWithoutError(t *testing.T) {
	v := NewVM()
	instr := Instruction{Field: SpecialHLT, Op: OpSpecial}
	v.Memory.Write(0, instr.Encode())

	if err := v.Step(); err != nil {
		t.Fatalf("HLT should not itself be an error, got %v", err)
	}
	if !v.Halted {
		t.Error("expected Halted=true after HLT")
	}
}

func TestVM_Step_OnHaltedMachine_Errors(t *testing.T) {
	v := NewVM()
	v.Halted = true
	if err := v.Step(); err == nil {
		t.Error("expected an error stepping an already-halted machine")
	}
}

func TestVM_Run_StopsAtBreakpoint(t *testing.T) {
	v := NewVM()
	nop := Instruction{Op: OpNop}
	for addr := uint16(0); addr < 5; addr++ {
		v.Memory.Write(addr, nop.Encode())
	}
	err := v.Run(0, func(v *VM) bool { return v.PC == 3 })
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if v.PC != 3 {
		t.Errorf("expected Run to stop at PC=3, got %d", v.PC)
	}
}

func TestVM_Reset(t *testing.T) {
	v := NewVM()
	v.RA.FromInt64(1)
	v.PC = 42
	v.Overflow = true
	v.Halted = true

	v.Reset()
	if v.PC != 0 || v.Overflow || v.Halted {
		t.Error("Reset should clear PC, Overflow and Halted")
	}
	ra, _ := v.RA.ToInt64()
	if ra != 0 {
		t.Errorf("Reset should clear rA, got %d", ra)
	}
}

func TestMemory_OutOfRange(t *testing.T) {
	m := NewMemory()
	if _, err := m.Read(MemorySize); err == nil {
		t.Error("expected an error reading past MemorySize")
	}
	if err := m.Write(MemorySize, NewFullWord()); err == nil {
		t.Error("expected an error writing past MemorySize")
	}
}

func TestAlphabet_RoundTrip(t *testing.T) {
	for b := byte(0); b < 56; b++ {
		r, ok := ByteToChar(b)
		if !ok {
			t.Fatalf("byte %d should be a valid alphabet code", b)
		}
		back, ok := CharToByte(r)
		if !ok || back != b {
			t.Errorf("round trip failed for byte %d: got %d", b, back)
		}
	}
}

func TestAlphabet_InvalidByte(t *testing.T) {
	if _, ok := ByteToChar(200); ok {
		t.Error("byte 200 is out of range for the 56-symbol alphabet")
	}
}

func TestVM_Step_FetchPastMemory_Halts(t *testing.T) {
	v := NewVM()
	v.PC = MemorySize // one past the last addressable word, no HLT there

	if err := v.Step(); err == nil {
		t.Fatal("expected an error fetching past the end of memory")
	}
	if !v.Halted {
		t.Fatal("expected Halted=true after a fetch failure")
	}

	// Halt stickiness: subsequent Step calls must keep returning Halted
	// rather than repeating the same out-of-range fetch.
	if err := v.Step(); err == nil {
		t.Error("expected Step on a halted machine to error")
	}
}

func TestVM_Device_InvalidFieldVsUnknownDevice(t *testing.T) {
	v := NewVM()

	_, err := v.device(NumDevices)
	mixErr, ok := err.(*Error)
	if !ok || mixErr.Code != ErrInvalidField {
		t.Errorf("expected ErrInvalidField for a unit past NumDevices, got %v", err)
	}

	_, err = v.device(5)
	mixErr, ok = err.(*Error)
	if !ok || mixErr.Code != ErrUnknownDevice {
		t.Errorf("expected ErrUnknownDevice for an empty slot, got %v", err)
	}
}
