package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/mcncl/jsv/internal/config"
	"github.com/mcncl/jsv/internal/decoder"
	"github.com/mcncl/jsv/internal/errors"
	"github.com/mcncl/jsv/internal/projector"
	"github.com/mcncl/jsv/internal/sink"
)

// CLI defines the command-line interface
var CLI struct {
	Input      string   `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output     string   `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Columns    []string `help:"Ordered, comma-delimited list of columns to output." short:"c" required:""`
	Sep        string   `help:"Field separator used in the output." short:"s" default:","`
	Raw        bool     `help:"Disable quoting of string values." short:"r"`
	NoHeaders  bool     `help:"Suppress the header line."`
	NoRoot     bool     `help:"Treat the input as concatenated JSON documents with no enclosing array."`
	HeaderCase string   `help:"Case transform for printed header names (original, snake, camel, pascal, kebab, screaming)." default:"original"`
	Config     string   `help:"Path to YAML config file. If not specified, searches for .jsv.yml in this and parent directories." type:"path"`
	Version    bool     `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsv"),
		kong.Description("Convert JSON input to CSV/TSV"),
		kong.UsageOnError(),
	)

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsv version %s\n", Version)
		return
	}

	cfg, err := resolveConfig()
	if err == nil {
		err = run(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// resolveConfig builds the run configuration: defaults, then the config file
// if one is given or found, then explicit CLI flags on top
func resolveConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg := config.NewConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, errors.NewConfigError(err.Error(), err)
		}
		cfg = loaded
	}

	// Boolean flags can only turn behavior on, so a false flag leaves the
	// config file's setting alone; string flags override when they differ
	// from their defaults.
	cfg.Columns = CLI.Columns
	if CLI.Sep != "," {
		cfg.Separator = CLI.Sep
	}
	if CLI.NoHeaders {
		cfg.ShowHeaders = false
	}
	if CLI.Raw {
		cfg.Raw = true
	}
	if CLI.NoRoot {
		cfg.NoRoot = true
	}
	if CLI.HeaderCase != config.HeaderCaseOriginal {
		cfg.HeaderCase = CLI.HeaderCase
	}
	cfg.InputPath = CLI.Input
	cfg.OutputPath = CLI.Output

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

// run executes the conversion described by the configuration
func run(cfg *config.Config) error {
	input, err := openInput(cfg)
	if err != nil {
		return err
	}
	if closer, ok := input.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	out, err := openSink(cfg)
	if err != nil {
		return err
	}

	seq, err := sequenceFor(cfg, input)
	if err != nil {
		// Still flush whatever the sink buffered (nothing yet), then
		// surface the decode error
		_ = out.Close()
		return err
	}

	if _, err := projector.Convert(seq, cfg, out); err != nil {
		_ = out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return errors.NewOutputError("failed to flush output", err)
	}
	return nil
}

// openInput selects the input stream: a named file, or stdin when data is
// piped in. An interactive stdin with no input file fails fast instead of
// hanging.
func openInput(cfg *config.Config) (io.Reader, error) {
	if cfg.InputPath != "" {
		file, err := os.Open(cfg.InputPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewInputError(
					fmt.Sprintf("file '%s' not found", cfg.InputPath),
					errors.ErrFileNotFound,
				)
			}
			return nil, errors.NewInputError(
				fmt.Sprintf("failed to open file '%s'", cfg.InputPath),
				err,
			)
		}
		return file, nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}
	return os.Stdin, nil
}

// openSink selects the output sink: a buffered named file, or stdout with
// TTY-aware buffering
func openSink(cfg *config.Config) (sink.Sink, error) {
	if cfg.OutputPath != "" {
		out, err := sink.NewFile(cfg.OutputPath)
		if err != nil {
			return nil, errors.NewOutputError(
				fmt.Sprintf("failed to create file '%s'", cfg.OutputPath),
				err,
			)
		}
		return out, nil
	}
	return sink.NewStream(os.Stdout), nil
}

// sequenceFor constructs the value sequence for the selected decode mode
func sequenceFor(cfg *config.Config, input io.Reader) (decoder.Sequence, error) {
	if cfg.NoRoot {
		return decoder.NewConcatenated(input), nil
	}
	return decoder.NewSingle(input)
}
