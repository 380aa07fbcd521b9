package mixal

import "github.com/knuth-taocp/mixes/mix"

// mnemonicInfo gives the opcode and the implied field value (if the
// mnemonic fixes F, as with JMP/JSJ or INCA/DECA) for a MIXAL op-code
// mnemonic. DefaultF is the F the assembler uses when the operand has no
// (F) part; an explicit (F) always takes its place.
type mnemonicInfo struct {
	Op       mix.Opcode
	DefaultF int
	HasF     bool // true if F is fixed by the mnemonic itself
}

var mnemonics map[string]mnemonicInfo

var regNames = [8]string{"A", "1", "2", "3", "4", "5", "6", "X"}

func init() {
	mnemonics = make(map[string]mnemonicInfo)
	mnemonics["NOP"] = mnemonicInfo{Op: mix.OpNop}
	mnemonics["ADD"] = mnemonicInfo{Op: mix.OpAdd, DefaultF: 5}
	mnemonics["SUB"] = mnemonicInfo{Op: mix.OpSub, DefaultF: 5}
	mnemonics["MUL"] = mnemonicInfo{Op: mix.OpMul, DefaultF: 5}
	mnemonics["DIV"] = mnemonicInfo{Op: mix.OpDiv, DefaultF: 5}
	mnemonics["MOVE"] = mnemonicInfo{Op: mix.OpMove, DefaultF: 1}

	mnemonics["NUM"] = mnemonicInfo{Op: mix.OpSpecial, DefaultF: mix.SpecialNUM, HasF: true}
	mnemonics["CHAR"] = mnemonicInfo{Op: mix.OpSpecial, DefaultF: mix.SpecialCHAR, HasF: true}
	mnemonics["HLT"] = mnemonicInfo{Op: mix.OpSpecial, DefaultF: mix.SpecialHLT, HasF: true}

	mnemonics["SLA"] = mnemonicInfo{Op: mix.OpShift, DefaultF: mix.ShiftSLA, HasF: true}
	mnemonics["SRA"] = mnemonicInfo{Op: mix.OpShift, DefaultF: mix.ShiftSRA, HasF: true}
	mnemonics["SLAX"] = mnemonicInfo{Op: mix.OpShift, DefaultF: mix.ShiftSLAX, HasF: true}
	mnemonics["SRAX"] = mnemonicInfo{Op: mix.OpShift, DefaultF: mix.ShiftSRAX, HasF: true}
	mnemonics["SLC"] = mnemonicInfo{Op: mix.OpShift, DefaultF: mix.ShiftSLC, HasF: true}
	mnemonics["SRC"] = mnemonicInfo{Op: mix.OpShift, DefaultF: mix.ShiftSRC, HasF: true}

	for i, r := range regNames {
		ld := mix.OpLdA + mix.Opcode(i)
		ldn := mix.OpLdAN + mix.Opcode(i)
		st := mix.OpStA + mix.Opcode(i)
		mnemonics["LD"+r] = mnemonicInfo{Op: ld, DefaultF: 5}
		mnemonics["LD"+r+"N"] = mnemonicInfo{Op: ldn, DefaultF: 5}
		mnemonics["ST"+r] = mnemonicInfo{Op: st, DefaultF: 5}

		jreg := mix.OpJA + mix.Opcode(i)
		mnemonics["J"+r+"N"] = mnemonicInfo{Op: jreg, DefaultF: mix.JregN, HasF: true}
		mnemonics["J"+r+"Z"] = mnemonicInfo{Op: jreg, DefaultF: mix.JregZ, HasF: true}
		mnemonics["J"+r+"P"] = mnemonicInfo{Op: jreg, DefaultF: mix.JregP, HasF: true}
		mnemonics["J"+r+"NN"] = mnemonicInfo{Op: jreg, DefaultF: mix.JregNN, HasF: true}
		mnemonics["J"+r+"NZ"] = mnemonicInfo{Op: jreg, DefaultF: mix.JregNZ, HasF: true}
		mnemonics["J"+r+"NP"] = mnemonicInfo{Op: jreg, DefaultF: mix.JregNP, HasF: true}

		mod := mix.OpModifyA + mix.Opcode(i)
		mnemonics["INC"+r] = mnemonicInfo{Op: mod, DefaultF: mix.ModifyINC, HasF: true}
		mnemonics["DEC"+r] = mnemonicInfo{Op: mod, DefaultF: mix.ModifyDEC, HasF: true}
		mnemonics["ENT"+r] = mnemonicInfo{Op: mod, DefaultF: mix.ModifyENT, HasF: true}
		mnemonics["ENN"+r] = mnemonicInfo{Op: mod, DefaultF: mix.ModifyENN, HasF: true}

		cmp := mix.OpCmpA + mix.Opcode(i)
		mnemonics["CMP"+r] = mnemonicInfo{Op: cmp, DefaultF: 5}
	}
	mnemonics["STJ"] = mnemonicInfo{Op: mix.OpStJ, DefaultF: 2}
	mnemonics["STZ"] = mnemonicInfo{Op: mix.OpStZ, DefaultF: 5}

	mnemonics["JBUS"] = mnemonicInfo{Op: mix.OpJbus}
	mnemonics["IOC"] = mnemonicInfo{Op: mix.OpIoc}
	mnemonics["IN"] = mnemonicInfo{Op: mix.OpIn}
	mnemonics["OUT"] = mnemonicInfo{Op: mix.OpOut}
	mnemonics["JRED"] = mnemonicInfo{Op: mix.OpJred}

	mnemonics["JMP"] = mnemonicInfo{Op: mix.OpJmp, DefaultF: mix.JmpJMP, HasF: true}
	mnemonics["JSJ"] = mnemonicInfo{Op: mix.OpJmp, DefaultF: mix.JmpJSJ, HasF: true}
	mnemonics["JOV"] = mnemonicInfo{Op: mix.OpJmp, DefaultF: mix.JmpJOV, HasF: true}
	mnemonics["JNOV"] = mnemonicInfo{Op: mix.OpJmp, DefaultF: mix.JmpJNOV, HasF: true}
	mnemonics["JL"] = mnemonicInfo{Op: mix.OpJmp, DefaultF: mix.JmpJL, HasF: true}
	mnemonics["JE"] = mnemonicInfo{Op: mix.OpJmp, DefaultF: mix.JmpJE, HasF: true}
	mnemonics["JG"] = mnemonicInfo{Op: mix.OpJmp, DefaultF: mix.JmpJG, HasF: true}
	mnemonics["JGE"] = mnemonicInfo{Op: mix.OpJmp, DefaultF: mix.JmpJGE, HasF: true}
	mnemonics["JNE"] = mnemonicInfo{Op: mix.OpJmp, DefaultF: mix.JmpJNE, HasF: true}
	mnemonics["JLE"] = mnemonicInfo{Op: mix.OpJmp, DefaultF: mix.JmpJLE, HasF: true}
}

// pseudoOps are handled directly by the assembler rather than looked up
// in mnemonics: EQU, ORIG, CON, ALF, END.
var pseudoOps = map[string]bool{
	"EQU": true, "ORIG": true, "CON": true, "ALF": true, "END": true,
}
