package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/pkg/pipeline"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{"pack": false, "formats": false, "completion": false}
	for _, cmd := range root.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestFormatsCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"formats"})
	if err := root.Execute(); err != nil {
		t.Fatalf("formats error: %v", err)
	}

	out := buf.String()
	for _, format := range []string{"json", "jsonarray", "yaml", "starling", "css", "plist"} {
		if !strings.Contains(out, format) {
			t.Errorf("formats output missing %q:\n%s", format, out)
		}
	}
}

func TestApplyConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spritepack.toml")
	config := `
out = "dist"
algorithm = "vertical"
trim = true
ext = "png"
fuzz = 5.0
formats = ["css", "plist"]
padding = 4
`
	if err := os.WriteFile(path, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{}
	var opts pipeline.Options
	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", ".", "")
	cmd.Flags().StringVar(&opts.Algorithm, "algorithm", "", "")
	cmd.Flags().BoolVar(&opts.Trim, "trim", false, "")
	cmd.Flags().StringVar(&opts.Ext, "ext", "", "")
	cmd.Flags().Float64Var(&opts.Fuzz, "fuzz", 0, "")
	cmd.Flags().IntVar(&opts.Padding, "padding", 0, "")
	var formatsStr string
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "")

	// --algorithm set on the command line beats the file.
	if err := cmd.Flags().Set("algorithm", "horizontal"); err != nil {
		t.Fatal(err)
	}

	if err := applyConfig(cmd, &opts, path); err != nil {
		t.Fatalf("applyConfig error: %v", err)
	}

	if opts.Algorithm != "horizontal" {
		t.Errorf("flag should beat file: algorithm = %q", opts.Algorithm)
	}
	if opts.OutDir != "dist" || !opts.Trim || opts.Ext != "png" || opts.Fuzz != 5.0 || opts.Padding != 4 {
		t.Errorf("file values not applied: %+v", opts)
	}
	if len(opts.Formats) != 2 || opts.Formats[0] != "css" {
		t.Errorf("formats = %v", opts.Formats)
	}
}

func TestApplyConfigMissingFile(t *testing.T) {
	cmd := &cobra.Command{}
	var opts pipeline.Options
	if err := applyConfig(cmd, &opts, filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing config file should error")
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"json", 1},
		{"json,css", 2},
		{" json , css ,", 2},
	}
	for _, tt := range tests {
		if got := parseList(tt.in); len(got) != tt.want {
			t.Errorf("parseList(%q) = %v, want %d entries", tt.in, got, tt.want)
		}
	}
}
