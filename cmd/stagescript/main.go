// Package main provides the StageScript CLI application entry point.
// StageScript runs scripted dialogues: each stage speaks a line, then
// either reads free-form input into a variable or routes on the user's
// answer until the script exits.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stagescript/internal/interpreter"
	"stagescript/internal/logger"
	"stagescript/internal/output"
	"stagescript/internal/parser"
	"stagescript/internal/scanner"
	"stagescript/internal/terminal"
	"stagescript/internal/version"
	"stagescript/pkg/stagetypes"
)

// Exit codes, one per error kind of the pipeline taxonomy.
const (
	exitUsage   = 64
	exitParse   = 65
	exitScan    = 67
	exitRuntime = 70
	exitIO      = 74
)

var (
	logLevel string
	logFile  string
)

// rootCmd runs a script: scan, parse, interpret. With no argument it asks
// for a script path interactively.
var rootCmd = &cobra.Command{
	Use:   "stagescript [script]",
	Short: "StageScript - scripted dialogue interpreter",
	Long: `StageScript interprets line-oriented dialogue scripts. A script defines
named stages; each stage speaks a line, then reads input into a variable or
matches the answer against patterns to pick the next stage.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScript,
}

// checkCmd validates a script without executing it.
var checkCmd = &cobra.Command{
	Use:   "check <script>",
	Short: "Validate a script without running it",
	Long: `Scan and parse a script, report the first diagnostic if any, and print
the compiled stages. The script is never executed.`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

// versionCmd shows build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: warn]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")

	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
		os.Exit(exitUsage)
	}
	if err := viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-file flag: %v\n", err)
		os.Exit(exitUsage)
	}

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Optional .env for STAGESCRIPT_LOG_LEVEL and friends.
	_ = godotenv.Load()

	if err := logger.Configure(logLevel, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(exitIO)
	}
}

func runScript(_ *cobra.Command, args []string) {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		line, err := terminal.PromptLine("Please input the script path you wanna use: ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitIO)
		}
		path = strings.TrimSpace(line)
	}

	logger.Info("running script", "path", path)
	if err := run(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func run(path string) error {
	stages, err := compileFile(path)
	if err != nil {
		return err
	}

	reader, err := terminal.NewReader()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer func() { _ = reader.Close() }()

	return interpreter.New(reader, output.NewPrinter()).Interpret(stages)
}

func runCheck(_ *cobra.Command, args []string) {
	stages, err := compileFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}

	printer := output.NewPrinter()
	names := make([]string, 0, len(stages))
	for name := range stages {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_ = printer.Print(stages[name].String())
	}
	_ = printer.Println(fmt.Sprintf("%d stages, no problems found", len(stages)))
}

// compileFile loads and compiles a script into a stage map.
func compileFile(path string) (stagetypes.StageMap, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	commands, err := scanner.New(string(source)).Scan()
	if err != nil {
		return nil, err
	}
	return parser.New().Parse(commands)
}

// exitCodeFor maps the error taxonomy to process exit codes.
func exitCodeFor(err error) int {
	var scanErr *stagetypes.ScanError
	var parseErr *stagetypes.ParseError
	var runtimeErr *stagetypes.RuntimeError
	switch {
	case errors.As(err, &scanErr):
		return exitScan
	case errors.As(err, &parseErr):
		return exitParse
	case errors.As(err, &runtimeErr):
		return exitRuntime
	default:
		return exitIO
	}
}
