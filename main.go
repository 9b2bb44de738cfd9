package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mcncl/configdefs/internal/analyzer"
	"github.com/mcncl/configdefs/internal/config"
	"github.com/mcncl/configdefs/internal/diff"
	"github.com/mcncl/configdefs/internal/errors"
	"github.com/mcncl/configdefs/internal/formatter"
	"github.com/mcncl/configdefs/internal/generator"
	"github.com/mcncl/configdefs/internal/logger"
	"github.com/mcncl/configdefs/internal/models"
	"github.com/mcncl/configdefs/internal/parser"
	"github.com/mcncl/configdefs/internal/watcher"
	"github.com/romdo/go-debounce"
	"github.com/spf13/afero"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON or YAML file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output TypeScript file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string `help:"Path to configuration file. Defaults to the nearest .configdefs.yml." short:"c" type:"path"`
	Format      string `help:"Input format: auto, json or yaml."`
	ExportCase  string `help:"Case applied to export names: camel, pascal, snake, screaming_snake or kebab."`
	Header      string `help:"Comment placed at the top of the generated file."`
	NoIndexKeys bool   `help:"Render list members without their index label."`
	NoComments  bool   `help:"Reject comments and trailing commas in JSON input."`
	Check       bool   `help:"Fail if the output file is not up to date instead of writing it."`
	Watch       bool   `help:"Regenerate whenever the input file changes." short:"w"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	LogJSON     bool   `help:"Write logs as JSON."`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger logger.Logger
	Fs     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
	// Color enables ANSI colours in --check diffs.
	Color bool
}

// Version information
const (
	Version = "0.1.0"
)

const watchDebounce = 100 * time.Millisecond

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("configdefs"),
		kong.Description("Generate TypeScript declarations from JSON or YAML configuration"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("configdefs version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	if CLI.Watch {
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = watch(sigCtx, ctx)
	} else {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: configdefs --help\n")
		os.Exit(1)
	}
}

// newContext loads configuration with CLI precedence and sets up logging
func newContext() (*Context, error) {
	fs := afero.NewOsFs()

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(fs, configPath, config.Overrides{
		Format:      CLI.Format,
		ExportCase:  CLI.ExportCase,
		FileHeader:  CLI.Header,
		NoIndexKeys: CLI.NoIndexKeys,
		NoComments:  CLI.NoComments,
		Debug:       CLI.Debug,
		LogJSON:     CLI.LogJSON,
	})
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.Log.Level),
		Output:     os.Stderr,
		JSON:       cfg.Log.JSON,
		Timestamps: cfg.Log.JSON,
		TimeFormat: "15:04:05",
	})
	if configPath != "" {
		log.Debug("loaded configuration", "path", configPath)
	}

	return &Context{
		Debug:  CLI.Debug,
		Config: cfg,
		Logger: log,
		Fs:     fs,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Color:  !color.NoColor && isTerminal(os.Stdout),
	}, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	code, err := generate(ctx)
	if err != nil {
		return err
	}

	if CLI.Check {
		return checkOutput(ctx, code)
	}
	return writeOutput(ctx, code)
}

// generate parses the input and returns the formatted declarations
func generate(ctx *Context) (string, error) {
	ir, err := parseInput(ctx)
	if err != nil {
		return "", err
	}

	summary := analyzer.NewAnalyzerWithConfig(ctx.Config).Analyze(ir)
	ctx.Logger.Debug("analyzed input",
		"format", ir.Format,
		"records", summary.Records,
		"lists", summary.Lists,
		"scalars", summary.Scalars,
		"depth", summary.MaxDepth,
	)
	for _, finding := range summary.Unsupported {
		ctx.Logger.Error("unsupported value", "path", finding.Path, "reason", finding.Reason)
	}

	code, err := generator.NewGeneratorWithConfig(ctx.Config).Compile(ir.Root)
	if err != nil {
		return "", errors.NewCompileError("failed to compile definitions", err)
	}

	formatted, err := formatter.NewFormatterWithConfig(ctx.Config).Format(code)
	if err != nil {
		return "", errors.NewFormatError("failed to format definitions", err)
	}
	return formatted, nil
}

func parseOptions(ctx *Context) parser.Options {
	return parser.Options{
		Format:        ctx.Config.Input.Format,
		AllowComments: ctx.Config.Input.AllowComments,
	}
}

// parseInput reads the document from file or stdin
func parseInput(ctx *Context) (models.IntermediateRepresentation, error) {
	opts := parseOptions(ctx)
	if CLI.Input != "" {
		return parser.ParseFileFS(ctx.Fs, CLI.Input, opts)
	}

	// Interactive mode or piped input
	if f, ok := ctx.Stdin.(*os.File); ok {
		if isTerminal(f) {
			// Terminal is interactive (not piped)
			if CLI.Interactive {
				return readInteractiveInput(ctx, opts)
			}
			return models.IntermediateRepresentation{}, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	opts.Format = parser.ResolveFormat(opts.Format, "")
	return parser.ParseBytes(data, opts)
}

// writeOutput writes code to file or stdout
func writeOutput(ctx *Context, code string) error {
	if CLI.Output != "" {
		if err := ctx.Fs.MkdirAll(filepath.Dir(CLI.Output), 0o755); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to create directory for '%s'", CLI.Output), err)
		}
		if err := afero.WriteFile(ctx.Fs, CLI.Output, []byte(code), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		ctx.Logger.Info("definitions written", "path", CLI.Output)
		return nil
	}

	if _, err := io.WriteString(ctx.Stdout, code); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// checkOutput compares code with the existing output file and prints a diff when they differ
func checkOutput(ctx *Context, code string) error {
	if CLI.Output == "" {
		return errors.NewInputError("--check requires --output", errors.ErrInvalidFilePath)
	}

	existing, err := afero.ReadFile(ctx.Fs, CLI.Output)
	if err != nil && !os.IsNotExist(err) {
		return errors.NewOutputError(fmt.Sprintf("failed to read '%s'", CLI.Output), err)
	}

	d := diff.Unified(CLI.Output, string(existing), code)
	if d == "" {
		ctx.Logger.Info("definitions are up to date", "path", CLI.Output)
		return nil
	}

	if _, err := io.WriteString(ctx.Stdout, diff.Colorize(d, ctx.Color)); err != nil {
		return errors.NewOutputError("failed to write diff", err)
	}
	return errors.NewOutputError(fmt.Sprintf("'%s' is out of date", CLI.Output), errors.ErrOutOfDate)
}

// watch regenerates the output every time the input file changes until parent is done.
// Failures are logged and the watcher keeps running.
func watch(parent context.Context, ctx *Context) error {
	if CLI.Input == "" {
		return errors.NewInputError("--watch requires --input", errors.ErrNoInput)
	}

	log := ctx.Logger.With("input", CLI.Input)
	parent = logger.ContextWithLogger(parent, log)

	w, err := watcher.NewWatcher(ctx.Logger)
	if err != nil {
		return errors.NewInputError("failed to start watcher", err)
	}
	defer w.Close()

	// editors often write a file several times per save
	changes := make(chan struct{}, 1)
	debounced, cancelDebounce := debounce.New(watchDebounce, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer cancelDebounce()
	w.OnChange(func(path string) {
		log.Debug("input changed", "path", path)
		debounced()
	})
	if err := w.Watch(parent, CLI.Input); err != nil {
		return errors.NewInputError(fmt.Sprintf("failed to watch '%s'", CLI.Input), err)
	}

	regenerate := func() {
		if err := run(ctx); err != nil {
			log.Error("regeneration failed", "error", errors.UserFriendlyError(err))
		}
	}

	log.Info("watching for changes")
	regenerate()
	for {
		select {
		case <-parent.Done():
			log.Info("stopped watching")
			return nil
		case <-changes:
			regenerate()
		}
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// readInteractiveInput lets users paste a document and signal completion with Ctrl+D (EOF)
func readInteractiveInput(ctx *Context, opts parser.Options) (models.IntermediateRepresentation, error) {
	fmt.Fprintln(os.Stderr, "configdefs Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON or YAML below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(ctx.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.IntermediateRepresentation{}, errors.NewInputError("error reading input", err)
		}
	}

	data := builder.String()
	if strings.TrimSpace(data) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing input...")
	opts.Format = parser.ResolveFormat(opts.Format, "")
	return parser.ParseBytes([]byte(data), opts)
}
