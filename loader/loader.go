// Package loader places an assembled MIXAL program into a VM's memory.
package loader

import (
	"fmt"

	"github.com/knuth-taocp/mixes/mix"
	"github.com/knuth-taocp/mixes/mixal"
)

// LoadProgramIntoVM writes every word of prog into machine's memory at its
// assembled address and sets the program counter to the program's entry
// point (the operand of its END line).
func LoadProgramIntoVM(machine *mix.VM, prog *mixal.Program) error {
	for _, addr := range prog.Order {
		w, ok := prog.Words[addr]
		if !ok {
			continue
		}
		if err := machine.Memory.Write(addr, w); err != nil {
			return fmt.Errorf("failed to write word at %04d: %w", addr, err)
		}
	}
	machine.PC = prog.EntryPoint
	return nil
}
