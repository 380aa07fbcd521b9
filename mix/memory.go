package mix

// MemorySize is the fixed number of addressable FullWord cells.
const MemorySize = 4000

// Memory is a flat array of exactly MemorySize FullWords.
type Memory struct {
	cells [MemorySize]Word
}

// NewMemory returns a zeroed memory bank.
func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.cells {
		m.cells[i] = NewFullWord()
	}
	return m
}

// Read returns the word at addr. InvalidAddress if addr is out of range.
func (m *Memory) Read(addr uint16) (Word, error) {
	if int(addr) >= MemorySize {
		return Word{}, NewError(ErrInvalidAddress, 0, "memory address out of range")
	}
	return m.cells[addr], nil
}

// Write stores w at addr. InvalidAddress if addr is out of range.
func (m *Memory) Write(addr uint16, w Word) error {
	if int(addr) >= MemorySize {
		return NewError(ErrInvalidAddress, 0, "memory address out of range")
	}
	m.cells[addr] = w
	return nil
}
