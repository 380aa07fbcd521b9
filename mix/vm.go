package mix

// Comparison is the three-valued result of the last CMPx instruction.
type Comparison int

const (
	CompLess Comparison = iota
	CompEqual
	CompGreater
)

func (c Comparison) String() string {
	switch c {
	case CompLess:
		return "LESS"
	case CompEqual:
		return "EQUAL"
	case CompGreater:
		return "GREATER"
	default:
		return "UNKNOWN"
	}
}

// VM is the complete MIX machine state: registers, memory, flags and the
// attached I/O devices.
type VM struct {
	RA Word // FullWord accumulator
	RX Word // FullWord extension

	// RI holds the six index registers at indices 1..6; index 0 is
	// permanently zero and never accessed by instruction decoding, which
	// keeps register-family indexing (opcode - base == register number)
	// a direct array index.
	RI [7]Word
	RJ Word // PosHalfWord jump register

	PC uint16

	Overflow   bool
	Comparison Comparison
	Halted     bool

	Memory  *Memory
	Devices [NumDevices]IODevice

	CycleCount int64

	// Tracer, if set, is notified after every successfully executed
	// instruction. Step never blocks on it; implementations own their
	// own buffering and flushing.
	Tracer Tracer
}

// StepTrace is the machine state snapshot handed to a Tracer after one
// successfully executed instruction.
type StepTrace struct {
	Sequence   int64
	PC         uint16
	Opcode     Opcode
	RA, RX, RJ Word
	RI         [7]Word
	Overflow   bool
	Comparison Comparison
}

// Tracer receives a StepTrace after each instruction Step executes
// successfully. Implementations are free to filter, buffer, and flush
// entries however they choose.
type Tracer interface {
	RecordStep(StepTrace)
}

// NewVM returns a freshly reset machine: all registers and memory zeroed,
// PC at 0, comparison EQUAL, not halted.
func NewVM() *VM {
	v := &VM{
		RA:     NewFullWord(),
		RX:     NewFullWord(),
		RJ:     NewPosHalfWord(),
		Memory: NewMemory(),
	}
	for i := 1; i <= 6; i++ {
		v.RI[i] = NewHalfWord()
	}
	v.Comparison = CompEqual
	return v
}

// Reset restores every register, memory cell and flag to zero/default
// without touching attached devices.
func (v *VM) Reset() {
	v.RA = NewFullWord()
	v.RX = NewFullWord()
	v.RJ = NewPosHalfWord()
	for i := 1; i <= 6; i++ {
		v.RI[i] = NewHalfWord()
	}
	v.PC = 0
	v.Overflow = false
	v.Comparison = CompEqual
	v.Halted = false
	v.Memory = NewMemory()
	v.CycleCount = 0
}

// Restart clears the halted flag and sets PC, leaving registers, memory
// and devices untouched. Used by a host to resume after fixing state that
// caused a halt.
func (v *VM) Restart(pc uint16) {
	v.Halted = false
	v.PC = pc
}

// AttachDevice installs dev at unit number unit (0..20).
func (v *VM) AttachDevice(unit int, dev IODevice) error {
	if unit < 0 || unit >= NumDevices {
		return NewError(ErrUnknownDevice, v.PC, "device unit out of range")
	}
	v.Devices[unit] = dev
	return nil
}

func (v *VM) device(unit int) (IODevice, error) {
	if unit < 0 || unit >= NumDevices {
		return nil, NewError(ErrInvalidField, v.PC, "device unit out of range")
	}
	if v.Devices[unit] == nil {
		return nil, NewError(ErrUnknownDevice, v.PC, "no device attached at this unit")
	}
	return v.Devices[unit], nil
}

// effectiveAddress computes M = addr + rIndex[i], where i == 0 means no
// indexing is applied.
func (v *VM) effectiveAddress(addr int16, index byte) (int64, error) {
	m := int64(addr)
	if index != 0 {
		if int(index) > 6 {
			return 0, NewError(ErrInvalidIndex, v.PC, "index register out of range")
		}
		iv, _ := v.RI[index].ToInt64()
		m += iv
	}
	return m, nil
}

// effectiveMemAddress is effectiveAddress further validated to lie within
// the addressable memory range, returned as a uint16.
func (v *VM) effectiveMemAddress(addr int16, index byte) (uint16, error) {
	m, err := v.effectiveAddress(addr, index)
	if err != nil {
		return 0, err
	}
	if m < 0 || m >= MemorySize {
		return 0, NewError(ErrInvalidAddress, v.PC, "effective address out of range")
	}
	return uint16(m), nil
}

// Step fetches, decodes and executes a single instruction. Any fetch,
// decode or execution error sets Halted and is returned; HLT halts the
// machine without returning an error. Stepping a halted machine returns
// ErrHalted.
func (v *VM) Step() error {
	if v.Halted {
		return NewError(ErrHalted, v.PC, "machine is halted")
	}

	word, err := v.Memory.Read(v.PC)
	if err != nil {
		v.Halted = true
		return WrapError(ErrMemAccessError, v.PC, "fetch failed", err)
	}

	instr, err := DecodeInstruction(word)
	if err != nil {
		v.Halted = true
		return WrapError(ErrIllegalInstruction, v.PC, "decode failed", err)
	}

	pc := v.PC
	v.PC++
	if err := v.execute(instr); err != nil {
		v.Halted = true
		return err
	}
	v.CycleCount++
	if v.Tracer != nil {
		v.Tracer.RecordStep(StepTrace{
			Sequence:   v.CycleCount,
			PC:         pc,
			Opcode:     instr.Op,
			RA:         v.RA,
			RX:         v.RX,
			RI:         v.RI,
			RJ:         v.RJ,
			Overflow:   v.Overflow,
			Comparison: v.Comparison,
		})
	}
	return nil
}

// Run executes Step repeatedly until the machine halts, a breakpoint
// predicate (if non-nil) returns true, or an error occurs. maxCycles <= 0
// means unlimited.
func (v *VM) Run(maxCycles int64, shouldBreak func(v *VM) bool) error {
	for {
		if v.Halted {
			return nil
		}
		if maxCycles > 0 && v.CycleCount >= maxCycles {
			return NewError(ErrGeneralError, v.PC, "cycle limit reached")
		}
		if shouldBreak != nil && shouldBreak(v) {
			return nil
		}
		if err := v.Step(); err != nil {
			if e, ok := err.(*Error); ok && e.Code == ErrHalted {
				return nil
			}
			return err
		}
	}
}
