package mix

import "testing"

// These cover the family register-slot mapping (A,1,2,3,4,5,6,X) shared by
// LDx/STx/CMPx/modify-family instructions, where the dispatcher must land
// on RI[n] for the "n" member of the family rather than RI[0] (the
// permanently-zero register) or RI[n-1].

func TestVM_ExecLoad_LD1_TargetsRI1NotRA(t *testing.T) {
	v := NewVM()
	mem := NewFullWord()
	mem.FromInt64(123)
	v.Memory.Write(700, mem)

	instr := Instruction{Addr: 700, Field: NewField(0, 5), Op: OpLd1}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}

	got, _ := v.RI[1].ToInt64()
	if got != 123 {
		t.Errorf("expected rI1=123 after LD1, got %d", got)
	}
	if ra, _ := v.RA.ToInt64(); ra != 0 {
		t.Errorf("LD1 must not touch rA, got %d", ra)
	}
}

func TestVM_ExecLoad_LD6_TargetsRI6(t *testing.T) {
	v := NewVM()
	mem := NewFullWord()
	mem.FromInt64(6)
	v.Memory.Write(700, mem)

	instr := Instruction{Addr: 700, Field: NewField(0, 5), Op: OpLd6}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}

	got, _ := v.RI[6].ToInt64()
	if got != 6 {
		t.Errorf("expected rI6=6 after LD6, got %d", got)
	}
	if i5, _ := v.RI[5].ToInt64(); i5 != 0 {
		t.Errorf("LD6 must not touch rI5, got %d", i5)
	}
}

func TestVM_ExecStore_ST3_ReadsRI3(t *testing.T) {
	v := NewVM()
	v.RI[3].FromInt64(55)

	instr := Instruction{Addr: 800, Field: NewField(0, 5), Op: OpSt3}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}

	w, _ := v.Memory.Read(800)
	got, _ := w.ToInt64()
	if got != 55 {
		t.Errorf("expected memory[800]=55 from ST3 on rI3, got %d", got)
	}
}

func TestVM_ExecModify_INC6(t *testing.T) {
	v := NewVM()
	v.RI[6].FromInt64(1)

	instr := Instruction{Addr: 9, Field: ModifyINC, Op: OpModify6}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}

	got, _ := v.RI[6].ToInt64()
	if got != 10 {
		t.Errorf("expected rI6=10 after INC6 9, got %d", got)
	}
}

func TestVM_ExecCompare_CMP1_ReadsRI1(t *testing.T) {
	v := NewVM()
	v.RI[1].FromInt64(4)
	mem := NewFullWord()
	mem.FromInt64(4)
	v.Memory.Write(900, mem)

	instr := Instruction{Addr: 900, Field: NewField(0, 5), Op: OpCmp1}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	if v.Comparison != CompEqual {
		t.Errorf("expected EQUAL comparing rI1=4 to memory=4, got %s", v.Comparison)
	}
}

func TestVM_ExecShift_SLA(t *testing.T) {
	v := NewVM()
	v.RA.SetByte(1, 1)
	v.RA.SetByte(2, 2)
	v.RA.SetByte(3, 3)
	v.RA.SetByte(4, 4)
	v.RA.SetByte(5, 5)

	instr := Instruction{Addr: 1, Field: ShiftSLA, Op: OpShift}
	v.Memory.Write(0, instr.Encode())
	if err := v.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}

	want := [5]byte{2, 3, 4, 5, 0}
	for i, w := range want {
		if got := v.RA.Byte(i + 1); got != w {
			t.Errorf("byte %d: expected %d, got %d", i+1, w, got)
		}
	}
}
