package mix

// Opcode is the closed set of 64 MIX operation codes, numbered exactly as
// Knuth assigns them.
type Opcode byte

const (
	OpNop     Opcode = 0
	OpAdd     Opcode = 1
	OpSub     Opcode = 2
	OpMul     Opcode = 3
	OpDiv     Opcode = 4
	OpSpecial Opcode = 5
	OpShift   Opcode = 6
	OpMove    Opcode = 7
	OpLdA     Opcode = 8
	OpLd1     Opcode = 9
	OpLd2     Opcode = 10
	OpLd3     Opcode = 11
	OpLd4     Opcode = 12
	OpLd5     Opcode = 13
	OpLd6     Opcode = 14
	OpLdX     Opcode = 15
	OpLdAN    Opcode = 16
	OpLd1N    Opcode = 17
	OpLd2N    Opcode = 18
	OpLd3N    Opcode = 19
	OpLd4N    Opcode = 20
	OpLd5N    Opcode = 21
	OpLd6N    Opcode = 22
	OpLdXN    Opcode = 23
	OpStA     Opcode = 24
	OpSt1     Opcode = 25
	OpSt2     Opcode = 26
	OpSt3     Opcode = 27
	OpSt4     Opcode = 28
	OpSt5     Opcode = 29
	OpSt6     Opcode = 30
	OpStX     Opcode = 31
	OpStJ     Opcode = 32
	OpStZ     Opcode = 33
	OpJbus    Opcode = 34
	OpIoc     Opcode = 35
	OpIn      Opcode = 36
	OpOut     Opcode = 37
	OpJred    Opcode = 38
	OpJmp     Opcode = 39
	OpJA      Opcode = 40
	OpJ1      Opcode = 41
	OpJ2      Opcode = 42
	OpJ3      Opcode = 43
	OpJ4      Opcode = 44
	OpJ5      Opcode = 45
	OpJ6      Opcode = 46
	OpJX      Opcode = 47
	OpModifyA Opcode = 48
	OpModify1 Opcode = 49
	OpModify2 Opcode = 50
	OpModify3 Opcode = 51
	OpModify4 Opcode = 52
	OpModify5 Opcode = 53
	OpModify6 Opcode = 54
	OpModifyX Opcode = 55
	OpCmpA    Opcode = 56
	OpCmp1    Opcode = 57
	OpCmp2    Opcode = 58
	OpCmp3    Opcode = 59
	OpCmp4    Opcode = 60
	OpCmp5    Opcode = 61
	OpCmp6    Opcode = 62
	OpCmpX    Opcode = 63
)

// Sub-operation selectors for the Special, Shift and Jmp opcodes, chosen
// by the instruction's F field.
const (
	SpecialNUM  = 0
	SpecialCHAR = 1
	SpecialHLT  = 2
)

const (
	ShiftSLA  = 0
	ShiftSRA  = 1
	ShiftSLAX = 2
	ShiftSRAX = 3
	ShiftSLC  = 4
	ShiftSRC  = 5
)

const (
	JmpJMP  = 0
	JmpJSJ  = 1
	JmpJOV  = 2
	JmpJNOV = 3
	JmpJL   = 4
	JmpJE   = 5
	JmpJG   = 6
	JmpJGE  = 7
	JmpJNE  = 8
	JmpJLE  = 9
)

// Sub-operation selectors shared by the register-conditional jump family
// (JA, J1..J6, JX).
const (
	JregN  = 0
	JregZ  = 1
	JregP  = 2
	JregNN = 3
	JregNZ = 4
	JregNP = 5
)

// Sub-operation selectors shared by the register-modify family
// (ModifyA, Modify1..Modify6, ModifyX).
const (
	ModifyINC = 0
	ModifyDEC = 1
	ModifyENT = 2
	ModifyENN = 3
)

// opcodeNames gives the mnemonic printed for each opcode's base name; the
// F-selected sub-operation families append their own suffix at the call
// site (disassembly, error messages).
var opcodeNames = [64]string{
	"NOP", "ADD", "SUB", "MUL", "DIV", "SPECIAL", "SHIFT", "MOVE",
	"LDA", "LD1", "LD2", "LD3", "LD4", "LD5", "LD6", "LDX",
	"LDAN", "LD1N", "LD2N", "LD3N", "LD4N", "LD5N", "LD6N", "LDXN",
	"STA", "ST1", "ST2", "ST3", "ST4", "ST5", "ST6", "STX",
	"STJ", "STZ", "JBUS", "IOC", "IN", "OUT", "JRED", "JMP",
	"JA", "J1", "J2", "J3", "J4", "J5", "J6", "JX",
	"MODIFYA", "MODIFY1", "MODIFY2", "MODIFY3", "MODIFY4", "MODIFY5", "MODIFY6", "MODIFYX",
	"CMPA", "CMP1", "CMP2", "CMP3", "CMP4", "CMP5", "CMP6", "CMPX",
}

// OpcodeValid reports whether b is a decodable opcode value. Every value
// 0..63 is assigned, so only the out-of-range byte 5 values (above 63)
// that the wire decode path may see are rejected.
func OpcodeValid(b byte) bool {
	return b <= 63
}

func (op Opcode) String() string {
	if int(op) >= len(opcodeNames) {
		return "INVALID"
	}
	return opcodeNames[op]
}

// IsLoad reports whether op is one of the LDx/LDxN load instructions.
func (op Opcode) IsLoad() bool {
	return op >= OpLdA && op <= OpLdXN
}

// IsStore reports whether op is one of the STx/STJ/STZ store instructions.
func (op Opcode) IsStore() bool {
	return op >= OpStA && op <= OpStZ
}

// IsJreg reports whether op is one of the register-conditional jumps.
func (op Opcode) IsJreg() bool {
	return op >= OpJA && op <= OpJX
}

// IsModify reports whether op is one of the INC/DEC/ENT/ENN register-
// modify instructions.
func (op Opcode) IsModify() bool {
	return op >= OpModifyA && op <= OpModifyX
}

// IsCompare reports whether op is one of the CMPx instructions.
func (op Opcode) IsCompare() bool {
	return op >= OpCmpA && op <= OpCmpX
}

// registerIndex maps an opcode that addresses "a register family" (load,
// store, jreg, modify, compare) to the index register slot it targets:
// 0 means rA, 1..6 means rI1..rI6, 7 means rX. The families
// are laid out in identical register order (A,1,2,3,4,5,6,X) starting at
// their respective base opcode.
func registerIndex(base, op Opcode) int {
	return int(op - base)
}
