package debugger

// TUI Display Update Constants
const (
	// DisplayUpdateFrequency controls how often the TUI display updates during continuous execution
	// (every N cycles to keep display responsive without overwhelming the terminal)
	DisplayUpdateFrequency = 100
)

// Code View Context Constants
const (
	// CodeContextLinesBefore is the default number of lines to show before PC in the full code view
	CodeContextLinesBefore = 20

	// CodeContextLinesAfter is the default number of lines to show after PC in the full code view
	CodeContextLinesAfter = 80

	// CodeContextLinesBeforeCompact is the number of lines to show before PC in compact views
	CodeContextLinesBeforeCompact = 5

	// CodeContextLinesAfterCompact is the number of lines to show after PC in compact views
	CodeContextLinesAfterCompact = 10
)

// Memory Display Constants
const (
	// MemoryDisplayRows is the number of rows to show in the memory dump view
	MemoryDisplayRows = 16

	// MemoryDisplayWords is the number of MIX words displayed per row
	MemoryDisplayWords = 8
)

// Jump Register Display Constants
const (
	// JumpInspectionMaxOffset is a word count around PC for jump inspection.
	// The "info jump" view does not read it; it prints only PC and rJ.
	JumpInspectionMaxOffset = 16
)

// Register Display Constants
const (
	// RegisterViewRows is the fixed height of the register view panel
	// (rA, rX, six index registers, rJ, overflow/comparison, borders)
	RegisterViewRows = 12

	// RegisterGroupSize is a registers-per-row count. The register view does
	// not read it; it lays out the index registers three per row.
	RegisterGroupSize = 4
)
