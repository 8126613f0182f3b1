package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/ntm/internal/machine"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompilationResult holds the compiled machines.
type CompilationResult struct {
	Machines []CompiledMachine `json:"machines"`
}

// CompiledMachine is a machine with states and symbols replaced by their
// indices, the form the engine runs.
type CompiledMachine struct {
	Name        string         `json:"name"`
	Hash        string         `json:"hash"`
	States      []string       `json:"states"`
	Alphabet    []string       `json:"alphabet"`
	Accept      machine.State  `json:"accept"`
	Reject      machine.State  `json:"reject"`
	Transitions []CompiledRule `json:"transitions"`
}

// CompiledRule is one transition in index form.
type CompiledRule struct {
	From  machine.State  `json:"from"`
	Read  machine.Symbol `json:"read"`
	To    machine.State  `json:"to"`
	Write machine.Symbol `json:"write"`
	Right bool           `json:"right"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <machine-file>",
		Short: "Compile machines to index form",
		Long: `Compile machine definitions to the index form used by the engine.

States and symbols are numbered in declaration order; state 0 starts and
symbol 0 is the blank. Each machine carries its content hash, which the run
history uses to match renamed machines.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	descs, loadErrs := loadMachines(path)
	if len(loadErrs) > 0 {
		for _, e := range loadErrs {
			_ = formatter.Error(e.Code, e.Error(), nil)
		}
		// Compilation errors are command-level errors (exit code 2)
		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(loadErrs)))
	}

	result := &CompilationResult{Machines: make([]CompiledMachine, 0, len(descs))}
	for _, d := range descs {
		formatter.VerboseLog("Compiling machine: %s", d.Name)
		result.Machines = append(result.Machines, compileMachine(d))
	}

	// Write to file if --output specified
	if opts.Output != "" {
		if err := writeCompiled(result, opts.Output); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	}

	return outputCompileSuccess(formatter, result, opts.Output)
}

func compileMachine(d *machine.Description) CompiledMachine {
	rules := d.Rules()
	cm := CompiledMachine{
		Name:        d.Name,
		Hash:        d.Hash(),
		States:      d.States,
		Alphabet:    d.Alphabet,
		Accept:      d.Accept,
		Reject:      d.Reject,
		Transitions: make([]CompiledRule, len(rules)),
	}
	for i, r := range rules {
		cm.Transitions[i] = CompiledRule{From: r.From, Read: r.Read, To: r.To, Write: r.Write, Right: r.Right}
	}
	return cm
}

func writeCompiled(result *CompilationResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s Compiled %d machine(s)\n\n", passMark(), len(result.Machines))
	for _, m := range result.Machines {
		fmt.Fprintf(formatter.Writer, "  %s: %d transition(s), hash %s\n", m.Name, len(m.Transitions), m.Hash[:12])
	}

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "\nWrote compiled machines to %s\n", outputFile)
	}

	return nil
}
