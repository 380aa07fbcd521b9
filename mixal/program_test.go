package mixal

import (
	"testing"

	"github.com/knuth-taocp/mixes/mix"
)

func TestAssemble_SimpleProgram(t *testing.T) {
	source := "" +
		"START STJ EXIT\n" +
		"      LDA  VALUE\n" +
		"      INCA 1\n" +
		"EXIT  HLT\n" +
		"VALUE CON  41\n" +
		"      END  START\n"

	prog, err := Assemble(source)
	if err != nil {
		t.Fatalf("unexpected assembly error: %v", err)
	}

	if prog.EntryPoint != 0 {
		t.Errorf("expected entry point 0 (START), got %d", prog.EntryPoint)
	}
	if _, ok := prog.Symbols["VALUE"]; !ok {
		t.Fatal("expected VALUE to be a resolved symbol")
	}
	if prog.Symbols["VALUE"] != 4 {
		t.Errorf("expected VALUE at address 4, got %d", prog.Symbols["VALUE"])
	}

	w, ok := prog.Words[4]
	if !ok {
		t.Fatal("expected a word assembled at address 4 for VALUE")
	}
	v, _ := w.ToInt64()
	if v != 41 {
		t.Errorf("expected CON 41 to assemble to 41, got %d", v)
	}

	ldaWord, ok := prog.Words[1]
	if !ok {
		t.Fatal("expected a word assembled at address 1 for LDA")
	}
	instr, err := mix.DecodeInstruction(ldaWord)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if instr.Op != mix.OpLdA {
		t.Errorf("expected OpLdA, got %v", instr.Op)
	}
	if instr.Addr != 4 {
		t.Errorf("expected LDA to address VALUE (4), got %d", instr.Addr)
	}
}

func TestAssemble_EQU(t *testing.T) {
	source := "" +
		"LIMIT EQU  100\n" +
		"START ENTA LIMIT\n" +
		"      HLT\n" +
		"      END  START\n"

	prog, err := Assemble(source)
	if err != nil {
		t.Fatalf("unexpected assembly error: %v", err)
	}
	if prog.Symbols["LIMIT"] != 100 {
		t.Errorf("expected LIMIT=100, got %d", prog.Symbols["LIMIT"])
	}
}

func TestAssemble_ORIG(t *testing.T) {
	source := "" +
		"      ORIG 3000\n" +
		"START HLT\n" +
		"      END  START\n"

	prog, err := Assemble(source)
	if err != nil {
		t.Fatalf("unexpected assembly error: %v", err)
	}
	if prog.Symbols["START"] != 3000 {
		t.Errorf("expected START=3000 after ORIG, got %d", prog.Symbols["START"])
	}
	if _, ok := prog.Words[3000]; !ok {
		t.Error("expected a word assembled at address 3000")
	}
}

func TestAssemble_UnknownOperation(t *testing.T) {
	source := "START BOGUS 100\n      END START\n"
	if _, err := Assemble(source); err == nil {
		t.Error("expected an error for an unknown mnemonic")
	}
}

func TestAssemble_ALF(t *testing.T) {
	source := "TEXT  ALF  \"HI\"\n      END TEXT\n"
	prog, err := Assemble(source)
	if err != nil {
		t.Fatalf("unexpected assembly error: %v", err)
	}
	w, ok := prog.Words[0]
	if !ok {
		t.Fatal("expected a word assembled for the ALF literal")
	}
	r, ok := mix.ByteToChar(w.Byte(1))
	if !ok || r != 'H' {
		t.Errorf("expected the first ALF byte to decode to 'H', got %q (ok=%v)", r, ok)
	}
}
