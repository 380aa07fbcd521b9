package loader

import (
	"testing"

	"github.com/knuth-taocp/mixes/mix"
	"github.com/knuth-taocp/mixes/mixal"
)

func TestLoadProgramIntoVM(t *testing.T) {
	source := "START LDA  VALUE\n      HLT\nVALUE CON  9\n      END  START\n"
	prog, err := mixal.Assemble(source)
	if err != nil {
		t.Fatalf("unexpected assembly error: %v", err)
	}

	machine := mix.NewVM()
	if err := LoadProgramIntoVM(machine, prog); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if machine.PC != prog.EntryPoint {
		t.Errorf("expected PC=%d (entry point), got %d", prog.EntryPoint, machine.PC)
	}

	if err := machine.Step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	got, _ := machine.RA.ToInt64()
	if got != 9 {
		t.Errorf("expected rA=9 after loading and running LDA VALUE, got %d", got)
	}
}
