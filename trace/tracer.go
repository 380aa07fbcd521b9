// Package trace records MIX execution steps to a structured, replayable
// log, the way the teacher's vm.ExecutionTrace records ARM instructions.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/knuth-taocp/mixes/config"
	"github.com/knuth-taocp/mixes/mix"
)

// entry is the JSON-encoded record for a single instruction step.
type entry struct {
	Sequence   int64            `json:"seq"`
	PC         uint16           `json:"pc"`
	Opcode     string           `json:"op"`
	Registers  map[string]int64 `json:"registers,omitempty"`
	Overflow   bool             `json:"overflow,omitempty"`
	Comparison string           `json:"comparison,omitempty"`
	ElapsedNS  int64            `json:"elapsed_ns,omitempty"`
}

// StepTracer is an in-process ring of structured step entries flushed
// through an io.Writer, JSON-encoded one event per line. It implements
// mix.Tracer and is driven entirely by VM.Step; callers decide when to
// Flush (e.g. at program exit or on a periodic timer).
type StepTracer struct {
	mu sync.Mutex

	w            io.Writer
	filterRegs   map[string]bool
	includeFlags bool
	includeTime  bool
	maxEntries   int

	start   time.Time
	entries []entry
}

// NewStepTracer builds a tracer from the emulator's [trace] config
// section. w is typically the file opened at cfg.OutputFile. An empty
// FilterRegs records every register; otherwise only the named ones
// ("rA", "rX", "rJ", "rI1".."rI6") are kept.
func NewStepTracer(w io.Writer, cfg config.TraceConfig) *StepTracer {
	filter := make(map[string]bool)
	for _, name := range strings.Split(cfg.FilterRegs, ",") {
		name = strings.TrimSpace(strings.ToUpper(name))
		if name != "" {
			filter[name] = true
		}
	}
	return &StepTracer{
		w:            w,
		filterRegs:   filter,
		includeFlags: cfg.IncludeFlags,
		includeTime:  cfg.IncludeTiming,
		maxEntries:   cfg.MaxEntries,
		start:        time.Now(),
	}
}

// RecordStep implements mix.Tracer. It is called once per successfully
// executed instruction; once the configured MaxEntries is reached,
// further steps are dropped rather than growing the ring unbounded.
func (t *StepTracer) RecordStep(s mix.StepTrace) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.maxEntries > 0 && len(t.entries) >= t.maxEntries {
		return
	}

	e := entry{
		Sequence: s.Sequence,
		PC:       s.PC,
		Opcode:   s.Opcode.String(),
	}

	regs := make(map[string]int64)
	t.addRegister(regs, "RA", s.RA)
	t.addRegister(regs, "RX", s.RX)
	t.addRegister(regs, "RJ", s.RJ)
	for i := 1; i <= 6; i++ {
		t.addRegister(regs, fmt.Sprintf("RI%d", i), s.RI[i])
	}
	if len(regs) > 0 {
		e.Registers = regs
	}

	if t.includeFlags {
		e.Overflow = s.Overflow
		e.Comparison = s.Comparison.String()
	}
	if t.includeTime {
		e.ElapsedNS = int64(time.Since(t.start))
	}

	t.entries = append(t.entries, e)
}

func (t *StepTracer) addRegister(regs map[string]int64, name string, w mix.Word) {
	if len(t.filterRegs) > 0 && !t.filterRegs[name] {
		return
	}
	v, _ := w.ToInt64()
	regs[name] = v
}

// Flush writes every buffered entry to the underlying writer, one
// JSON object per line, and clears the ring.
func (t *StepTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.w == nil {
		t.entries = t.entries[:0]
		return nil
	}

	enc := json.NewEncoder(t.w)
	for _, e := range t.entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	t.entries = t.entries[:0]
	return nil
}

// Len returns the number of entries currently buffered, awaiting Flush.
func (t *StepTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
