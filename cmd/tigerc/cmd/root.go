// Package cmd implements the tigerc CLI, following the teacher's cobra
// command layout (CWBudde-go-dws/cmd/dwscript/cmd): a root command that
// does the real work, a persistent --verbose flag, and a version
// subcommand populated from build-time variables.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tiger-lang/tigerc/internal/codegen"
	"github.com/tiger-lang/tigerc/internal/errors"
	"github.com/tiger-lang/tigerc/internal/lexer"
	"github.com/tiger-lang/tigerc/internal/parser"
)

// Build-time metadata, set via -ldflags, mirroring the teacher's version
// command wiring.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	output  string
	emitIR  bool
)

var rootCmd = &cobra.Command{
	Use:   "tigerc <input>",
	Short: "tigerc compiles a Tiger source file to LLVM IR",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,

	// Diagnostics are already printed to stderr in tigerc's own wire
	// format (internal/errors); cobra's default "Error: ..." wrapping and
	// usage dump would just repeat and clutter that.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// errSilent is returned once a diagnostic has already been written to
// stderr, so Execute's caller knows to exit non-zero without printing
// anything further.
type errSilent struct{}

func (errSilent) Error() string { return "" }

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline stage timings to stderr")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <input> with a .ll extension)")
	rootCmd.Flags().BoolVar(&emitIR, "emit-ir", false, "print textual LLVM IR to stdout instead of writing a file")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command; main's sole responsibility is calling
// this and translating its error into a process exit code.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print tigerc's build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tigerc %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func runCompile(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	stageStart := time.Now()
	logStage := func(name string) {
		if verbose {
			fmt.Fprintf(os.Stderr, "tigerc: %s (%s)\n", name, time.Since(stageStart))
			stageStart = time.Now()
		}
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	logStage("read source")

	l := lexer.New(string(source))
	p := parser.New(l)
	program := p.ParseProgram()
	logStage("lex+parse")

	if errs := p.Errors(); len(errs) > 0 {
		first := errs[0]
		ce := errors.New(lexer.Position{Line: first.Pos.Line, Column: first.Pos.Column}, first.Message)
		fmt.Fprintln(os.Stderr, ce.Error())
		return errSilent{}
	}

	module, compileErr := codegen.New(inputPath).Compile(program)
	logStage("lower to IR")

	if compileErr != nil {
		se, ok := compileErr.(*codegen.SemaError)
		if !ok {
			return compileErr
		}
		ce := errors.New(lexer.Position{Line: se.Pos.Line, Column: se.Pos.Col}, se.Message)
		fmt.Fprintln(os.Stderr, ce.Error())
		return errSilent{}
	}

	text := module.String()
	if emitIR {
		fmt.Println(text)
		logStage("emit IR (stdout)")
		return nil
	}

	outPath := output
	if outPath == "" {
		outPath = defaultOutputPath(inputPath)
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return err
	}
	logStage("write output")
	return nil
}

func defaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".ll"
}
