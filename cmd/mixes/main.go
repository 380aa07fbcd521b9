// Command mixes runs and assembles programs for the Knuth MIX virtual
// machine.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/knuth-taocp/mixes/config"
	"github.com/knuth-taocp/mixes/debugger"
	"github.com/knuth-taocp/mixes/devices"
	"github.com/knuth-taocp/mixes/loader"
	"github.com/knuth-taocp/mixes/mix"
	"github.com/knuth-taocp/mixes/mixal"
	"github.com/knuth-taocp/mixes/trace"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	rootCmd := &cobra.Command{
		Use:   "mixes",
		Short: "Knuth MIX virtual machine: assemble and run MIXAL programs",
	}
	rootCmd.AddCommand(newRunCmd(cfg), newAsmCmd(), newDebugCmd(), newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("mixes %s (%s)\n", version, commit)
			return nil
		},
	}
}

func newAsmCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "asm [source.mixal]",
		Short: "Assemble a MIXAL source file and report its entry point and symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0]) // #nosec G304 -- user-specified source path
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			prog, err := mixal.Assemble(string(src))
			if err != nil {
				return fmt.Errorf("assembly failed: %w", err)
			}
			fmt.Printf("Assembled %d words, entry point %04d\n", len(prog.Words), prog.EntryPoint)
			if output != "" {
				out, err := os.Create(output) // #nosec G304 -- user-specified output path
				if err != nil {
					return err
				}
				defer out.Close()
				for _, addr := range prog.Order {
					w := prog.Words[addr]
					fmt.Fprintf(out, "%04d: %v\n", addr, w.Bytes())
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write a listing of assembled words to this file")
	return cmd
}

func newRunCmd(cfg *config.Config) *cobra.Command {
	var maxCycles int64
	var verbose bool
	var traceFlag bool

	cmd := &cobra.Command{
		Use:   "run [source.mixal]",
		Short: "Assemble and execute a MIXAL program directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machine, _, err := buildMachine(args[0])
			if err != nil {
				return err
			}

			if verbose {
				fmt.Printf("Entry point: %04d\n", machine.PC)
			}

			var tracer *trace.StepTracer
			if traceFlag || cfg.Execution.EnableTrace {
				out, closeTrace, err := openTraceOutput(cfg.Trace.OutputFile)
				if err != nil {
					return fmt.Errorf("opening trace output: %w", err)
				}
				defer closeTrace()
				tracer = trace.NewStepTracer(out, cfg.Trace)
				machine.Tracer = tracer
			}

			stepErr := machine.Run(maxCycles, func(v *mix.VM) bool {
				return false
			})

			if tracer != nil {
				if err := tracer.Flush(); err != nil {
					return fmt.Errorf("flushing trace: %w", err)
				}
			}

			if stepErr != nil && !machine.Halted {
				return fmt.Errorf("runtime error at PC=%04d: %w", machine.PC, stepErr)
			}

			if verbose {
				fmt.Printf("Execution halted after %d cycles\n", machine.CycleCount)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&maxCycles, "max-cycles", int64(cfg.Execution.MaxCycles), "maximum instructions to execute before giving up")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print entry point and cycle count")
	cmd.Flags().BoolVar(&traceFlag, "trace", false, "record a step-by-step execution trace to the configured trace output file")
	return cmd
}

func newDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug [source.mixal]",
		Short: "Assemble a program and start the interactive debugger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machine, prog, err := buildMachine(args[0])
			if err != nil {
				return err
			}

			dbg := debugger.NewDebugger(machine)
			symbols := make(map[string]uint16, len(prog.Symbols))
			for name, v := range prog.Symbols {
				symbols[name] = uint16(v)
			}
			dbg.LoadSymbols(symbols)

			fmt.Println("MIX Debugger - Type 'help' for commands")
			fmt.Printf("Program loaded: %s\n", args[0])
			fmt.Println()
			return debugger.RunCLI(dbg)
		},
	}
	return cmd
}

// openTraceOutput opens path for the step tracer to write to, creating it
// if necessary. An empty path traces to stdout instead of a file. The
// returned close func is always safe to call, even for stdout.
func openTraceOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path) // #nosec G304 -- user-configured trace output path
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// buildMachine assembles path, attaches the standard device set, and
// loads the program into a fresh VM. Units 0-7 are tape drives, unit 16
// a card reader, unit 18 the console printer, matching Knuth's usual
// device numbering.
func buildMachine(path string) (*mix.VM, *mixal.Program, error) {
	src, err := os.ReadFile(path) // #nosec G304 -- user-specified source path
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	prog, err := mixal.Assemble(string(src))
	if err != nil {
		return nil, nil, fmt.Errorf("assembly failed: %w", err)
	}

	machine := mix.NewVM()
	for unit := 0; unit < 8; unit++ {
		machine.AttachDevice(unit, devices.NewTapeDevice(100))
	}
	machine.AttachDevice(16, devices.NewCardReaderDevice(nil))
	machine.AttachDevice(18, devices.NewConsoleDevice(os.Stdout))

	if err := loader.LoadProgramIntoVM(machine, prog); err != nil {
		return nil, nil, fmt.Errorf("loading program: %w", err)
	}
	return machine, prog, nil
}
