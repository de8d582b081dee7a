package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsondoc/internal/config"
	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testIO struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newTestContext(stdin string) (*Context, *testIO) {
	out := &testIO{}
	return &Context{
		Config: config.NewConfig(),
		Logger: zerolog.Nop(),
		Stdin:  strings.NewReader(stdin),
		Stdout: &out.stdout,
		Stderr: &out.stderr,
	}, out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFmt_FromFile(t *testing.T) {
	input := writeFile(t, t.TempDir(), "doc.json", `{"name": "John", "tags": [1 2 3], "nested": {"ok": true}}`)
	ctx, out := newTestContext("")

	require.NoError(t, (&FmtCmd{Input: input}).Run(ctx))

	expected := "{\n\t\"name\" : \"John\",\n\t\"tags\" : [1, 2, 3],\n\t\"nested\" : {\n\t\t\"ok\" : true\n\t}\n}\n"
	assert.Equal(t, expected, out.stdout.String())
}

func TestFmt_FromStdin(t *testing.T) {
	ctx, out := newTestContext("[1, 2.5, \"x\"] // trailing comment\n")

	require.NoError(t, (&FmtCmd{}).Run(ctx))
	assert.Equal(t, "[1, 2.500000, \"x\"]\n", out.stdout.String())
}

func TestFmt_FromPipedStdin(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(`{"item": "apple"}`)
	}()
	defer func() { _ = r.Close() }()

	ctx, out := newTestContext("")
	ctx.Stdin = r

	require.NoError(t, (&FmtCmd{}).Run(ctx))
	assert.Equal(t, "{\n\t\"item\" : \"apple\"\n}\n", out.stdout.String())
}

func TestFmt_YAML(t *testing.T) {
	ctx, out := newTestContext(`{"name": "bricks", "size": [4, 4]}`)

	require.NoError(t, (&FmtCmd{YAML: true}).Run(ctx))
	assert.Equal(t, "name: bricks\nsize: [4, 4]\n", out.stdout.String())
}

func TestFmt_YAMLFromConfig(t *testing.T) {
	ctx, out := newTestContext(`{"a": null}`)
	ctx.Config.Printer.Format = "yaml"

	require.NoError(t, (&FmtCmd{}).Run(ctx))
	assert.Equal(t, "a: null\n", out.stdout.String())
}

func TestFmt_PrinterConfig(t *testing.T) {
	ctx, out := newTestContext(`{"list": [1, 2]}`)
	ctx.Config.Printer.Indent = "  "
	ctx.Config.Printer.InlineArrayLimit = 2

	require.NoError(t, (&FmtCmd{}).Run(ctx))
	assert.Equal(t, "{\n  \"list\" : [\n    1,\n    2\n  ]\n}\n", out.stdout.String())
}

func TestFmt_ToOutputFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.json")
	ctx, out := newTestContext(`[true]`)

	require.NoError(t, (&FmtCmd{Output: output}).Run(ctx))

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "[true]", string(content))
	assert.Contains(t, out.stderr.String(), "Document written to")
	assert.Empty(t, out.stdout.String())
}

func TestFmt_Errors(t *testing.T) {
	t.Run("empty stdin", func(t *testing.T) {
		ctx, _ := newTestContext("  \n")
		err := (&FmtCmd{}).Run(ctx)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
	})

	t.Run("syntax error", func(t *testing.T) {
		ctx, _ := newTestContext(`{"invalid": json}`)
		err := (&FmtCmd{}).Run(ctx)
		require.Error(t, err)
		assert.Equal(t,
			"Parsing error: failed to parse document: 1:13: unknown symbol",
			errors.UserFriendlyError(err),
		)
	})

	t.Run("strict mode", func(t *testing.T) {
		ctx, _ := newTestContext(`[1 2]`)
		ctx.Config.Parser.Strict = true
		err := (&FmtCmd{}).Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1:4: expected ',' not found")
	})

	t.Run("missing file", func(t *testing.T) {
		ctx, _ := newTestContext("")
		err := (&FmtCmd{Input: filepath.Join(t.TempDir(), "nope.json")}).Run(ctx)
		assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))
	})

	t.Run("unwritable output", func(t *testing.T) {
		ctx, _ := newTestContext(`1`)
		err := (&FmtCmd{Output: "/non/existent/dir/out.json"}).Run(ctx)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, &errors.AppError{Type: errors.ErrorTypeOutput}))
	})
}

func TestGet(t *testing.T) {
	doc := `{"Layers": [{"Source": "a.png"}, {"Source": "b.png", "Size": [64, 64]}]}`

	tests := []struct {
		name     string
		cmd      GetCmd
		expected string
	}{
		{"string value", GetCmd{Path: "Layers[1].Source"}, "\"b.png\"\n"},
		{"raw string", GetCmd{Path: "Layers[1].Source", Raw: true}, "b.png\n"},
		{"array value", GetCmd{Path: "Layers[1].Size"}, "[64, 64]\n"},
		{"number", GetCmd{Path: "Layers[1].Size[0]"}, "64\n"},
		{"whole document", GetCmd{Path: "Layers[0]"}, "{\n\t\"Source\" : \"a.png\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := newTestContext(doc)
			require.NoError(t, tt.cmd.Run(ctx))
			assert.Equal(t, tt.expected, out.stdout.String())
		})
	}

	t.Run("missing path", func(t *testing.T) {
		ctx, _ := newTestContext(doc)
		err := (&GetCmd{Path: "Layers[5]"}).Run(ctx)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrPathNotFound))
		assert.Equal(t, "Query error: path 'Layers[5]' not found", errors.UserFriendlyError(err))
	})
}

func TestCheck(t *testing.T) {
	ctx, out := newTestContext(`{"a": 1, "b": [] /* fine */}`)
	require.NoError(t, (&CheckCmd{}).Run(ctx))
	assert.Equal(t, "ok: object with 2 entries\n", out.stdout.String())

	ctx, out = newTestContext(`"text"`)
	require.NoError(t, (&CheckCmd{}).Run(ctx))
	assert.Equal(t, "ok: string\n", out.stdout.String())

	input := writeFile(t, t.TempDir(), "bad.json", "{\n  \"a\" : ,\n}")
	ctx, _ = newTestContext("")
	err := (&CheckCmd{Input: input}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, errors.UserFriendlyError(err), "bad.json")
	assert.Contains(t, errors.UserFriendlyError(err), "2:9: unknown symbol")
}

func TestTexture(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clouds.json", `{"type": "Volume", "source": "clouds.png", "flip_y": true}`)

	ctx, out := newTestContext("")
	require.NoError(t, (&TextureCmd{Path: path}).Run(ctx))

	expected := "{\n" +
		"\t\"Type\" : \"volume\",\n" +
		"\t\"Source\" : \"clouds.png\",\n" +
		"\t\"FlipX\" : false,\n" +
		"\t\"FlipY\" : true,\n" +
		"\t\"UseCompression\" : false\n" +
		"}\n"
	assert.Equal(t, expected, out.stdout.String())

	ctx, out = newTestContext("")
	require.NoError(t, (&TextureCmd{Path: path, YAML: true}).Run(ctx))
	assert.Contains(t, out.stdout.String(), "Type: volume\n")
	assert.Contains(t, out.stdout.String(), "FlipY: true\n")
}

func TestTexture_InvalidDescriptor(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.json", `{"FlipX": true}`)

	ctx, _ := newTestContext("")
	err := (&TextureCmd{Path: path}).Run(ctx)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.AppError{Type: errors.ErrorTypeDescriptor}))
	assert.Equal(t, "Descriptor error: invalid texture descriptor", errors.UserFriendlyError(err))
}

func TestNewContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jsondoc.yml", "printer:\n  format: yaml\nlogging:\n  level: warn\n")

	ctx, err := newContext(path, true, false)
	require.NoError(t, err)
	assert.Equal(t, "yaml", ctx.Config.Printer.Format)
	assert.True(t, ctx.Config.Parser.Strict)
	assert.Equal(t, zerolog.WarnLevel, ctx.Logger.GetLevel())

	ctx, err = newContext(path, false, true)
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, ctx.Logger.GetLevel())

	bad := writeFile(t, t.TempDir(), "bad.yml", "printer:\n  format: xml\n")
	_, err = newContext(bad, false, false)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.AppError{Type: errors.ErrorTypeConfig}))
}

func TestCLI_CommandSelection(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{}, "fmt"},
		{[]string{"get", "a.b[0]"}, "get <path>"},
		{[]string{"--strict", "check"}, "check"},
		{[]string{"texture", "sky.json"}, "texture <path>"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			cli, err := kong.New(&CLI, kong.Name("jsondoc"))
			require.NoError(t, err)

			kctx, err := cli.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kctx.Command())
		})
	}

}
