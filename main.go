package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsondoc/internal/config"
	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/logging"
	"github.com/mcncl/jsondoc/internal/parser"
	"github.com/mcncl/jsondoc/internal/printer"
	"github.com/mcncl/jsondoc/internal/resource"
	"github.com/mcncl/jsondoc/internal/value"
	"github.com/rs/zerolog"
)

// CLI defines the command-line interface
var CLI struct {
	Config      string `help:"Path to configuration file. Defaults to the nearest .jsondoc.yml." short:"c" type:"path"`
	Strict      bool   `help:"Require commas between elements and reject data after the document." short:"s"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct document input with Ctrl+D to process." short:"I"`

	Fmt     FmtCmd     `cmd:"" default:"withargs" help:"Reformat a document (default command)."`
	Get     GetCmd     `cmd:"" help:"Print the value at a path such as 'items[0].name'."`
	Check   CheckCmd   `cmd:"" help:"Parse a document and report the first syntax error."`
	Texture TextureCmd `cmd:"" help:"Decode a texture descriptor and print its fields."`
}

// Context holds the runtime context shared by all commands
type Context struct {
	Config *config.Config
	Logger zerolog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cli := kong.Must(&CLI,
		kong.Name("jsondoc"),
		kong.Description("A tool to reformat, query and check lenient JSON documents"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	kctx, err := cli.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsondoc version %s\n", Version)
		return
	}

	ctx, err := newContext(CLI.Config, CLI.Strict, CLI.Debug)
	if err == nil {
		err = kctx.Run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsondoc --help\n")
		os.Exit(1)
	}
}

// newContext loads the configuration, applying CLI flags on top, and builds the logger
func newContext(configPath string, strict, debug bool) (*Context, error) {
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, strict, debug)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), nil)
	}

	logger := logging.New(cfg.Logging, os.Stderr)
	if configPath != "" {
		logger.Debug().Str("path", configPath).Msg("using config file")
	}

	return &Context{
		Config: cfg,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Parser builds a document parser from the configuration
func (c *Context) Parser() *parser.Parser {
	return parser.New(
		parser.Options{Strict: c.Config.Parser.Strict},
		logging.Component(c.Logger, "parser"),
	)
}

// Printer builds a document printer from the configuration
func (c *Context) Printer() *printer.Printer {
	return printer.New(printer.Options{
		Indent:      c.Config.Printer.Indent,
		InlineLimit: c.Config.Printer.InlineArrayLimit,
	})
}

// FmtCmd reformats a document
type FmtCmd struct {
	Input  string `help:"Path to input document. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	YAML   bool   `help:"Render the document as YAML." name:"yaml" short:"y"`
}

// Run executes the fmt command
func (f *FmtCmd) Run(ctx *Context) error {
	doc, err := readDocument(ctx, f.Input)
	if err != nil {
		return err
	}

	text, err := render(ctx, doc, f.YAML)
	if err != nil {
		return err
	}
	return writeOutput(ctx, f.Output, text)
}

// GetCmd prints the sub-value at a path
type GetCmd struct {
	Path  string `arg:"" help:"Path to the value, e.g. 'Layers[2].Source'. An empty path selects the document."`
	Input string `help:"Path to input document. If not specified, reads from stdin." short:"i" type:"path"`
	Raw   bool   `help:"Print strings without quotes." short:"r"`
}

// Run executes the get command
func (g *GetCmd) Run(ctx *Context) error {
	doc, err := readDocument(ctx, g.Input)
	if err != nil {
		return err
	}

	v, ok := doc.Lookup(g.Path)
	if !ok {
		return errors.NewQueryError(fmt.Sprintf("path '%s' not found", g.Path), errors.ErrPathNotFound)
	}
	ctx.Logger.Debug().Str("path", g.Path).Str("type", v.Type().String()).Msg("path resolved")

	if g.Raw && v.IsString() {
		return writeOutput(ctx, "", v.AsString())
	}
	text, err := render(ctx, v, false)
	if err != nil {
		return err
	}
	return writeOutput(ctx, "", text)
}

// CheckCmd validates a document without printing it
type CheckCmd struct {
	Input string `help:"Path to input document. If not specified, reads from stdin." short:"i" type:"path"`
}

// Run executes the check command
func (c *CheckCmd) Run(ctx *Context) error {
	doc, err := readDocument(ctx, c.Input)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("ok: %s", doc.Type())
	if doc.IsContainer() {
		summary = fmt.Sprintf("%s with %d entries", summary, doc.Len())
	}
	return writeOutput(ctx, "", summary)
}

// TextureCmd decodes a texture descriptor
type TextureCmd struct {
	Path string `arg:"" help:"Texture descriptor (.json) or image file." type:"path"`
	YAML bool   `help:"Render the descriptor as YAML." name:"yaml" short:"y"`
}

// Run executes the texture command
func (t *TextureCmd) Run(ctx *Context) error {
	cache := resource.NewCache(
		resource.Standard(ctx.Parser()),
		resource.DirOpener(filepath.Dir(t.Path)),
		logging.Component(ctx.Logger, "resource"),
	)

	res, err := cache.Get(resource.TextureTypeName, filepath.Base(t.Path))
	if err != nil {
		return err
	}
	tex, ok := res.(*resource.Texture)
	if !ok {
		return errors.NewDescriptorError(fmt.Sprintf("'%s' is not a texture", t.Path), nil)
	}

	desc := tex.Desc()
	doc := value.Object(
		value.Entry{Key: "Type", Value: value.String(string(desc.Type))},
		value.Entry{Key: "Source", Value: value.String(desc.Source)},
		value.Entry{Key: "FlipX", Value: value.Bool(desc.FlipX)},
		value.Entry{Key: "FlipY", Value: value.Bool(desc.FlipY)},
		value.Entry{Key: "UseCompression", Value: value.Bool(desc.UseCompression)},
	)

	text, err := render(ctx, doc, t.YAML)
	if err != nil {
		return err
	}
	return writeOutput(ctx, "", text)
}

// render prints v as text, or as YAML when asked for by flag or configuration
func render(ctx *Context, v *value.Value, asYAML bool) (string, error) {
	p := ctx.Printer()
	if asYAML || ctx.Config.Printer.Format == "yaml" {
		out, err := p.ToYAML(v)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return p.Print(v), nil
}

// readDocument parses a document from file or stdin
func readDocument(ctx *Context, input string) (*value.Value, error) {
	p := ctx.Parser()
	if input != "" {
		return p.ParseFile(input)
	}

	if f, ok := ctx.Stdin.(*os.File); ok {
		stdinInfo, err := f.Stat()
		if err != nil {
			return nil, errors.NewInputError("failed to access stdin", err)
		}

		if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
			// Terminal is interactive (not piped)
			if CLI.Interactive {
				return readInteractiveInput(ctx, p)
			}
			return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	return p.ParseReader(ctx.Stdin)
}

// writeOutput writes text to file or stdout
func writeOutput(ctx *Context, output, text string) error {
	if output != "" {
		err := os.WriteFile(output, []byte(text), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", output), err)
		}
		fmt.Fprintf(ctx.Stderr, "Document written to %s\n", output)
		return nil
	}

	_, err := fmt.Fprintln(ctx.Stdout, strings.TrimRight(text, "\n"))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste a document
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(ctx *Context, p *parser.Parser) (*value.Value, error) {
	fmt.Fprintln(ctx.Stderr, "jsondoc Interactive Mode")
	fmt.Fprintln(ctx.Stderr, "Paste your document below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(ctx.Stdin)
	var docBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		docBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
	}

	fmt.Fprintln(ctx.Stderr, "\nProcessing document...")
	return p.ParseReader(strings.NewReader(docBuilder.String()))
}
