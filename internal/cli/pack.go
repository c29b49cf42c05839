package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/pipeline"
)

// apiKeyEnv is consulted when --api-key is not given.
const apiKeyEnv = "SPRITEPACK_API_KEY"

// packCommand creates the pack command, the main entry point of the tool.
//
// Default settings:
//   - algorithm: growing-binpacking (canvas grows as needed)
//   - sort: maxside
//   - format: json
//   - scale: 100, fuzz: 0, padding: 0
func (c *CLI) packCommand() *cobra.Command {
	var (
		opts       pipeline.Options
		formatsStr string
		cssOrder   string
		configPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "pack [dir]",
		Short: "Pack a directory of images into an atlas",
		Long: `Pack decodes every image in a directory, optionally trims transparent
borders, packs the sprites onto a single canvas, and writes the atlas PNG
plus one descriptor file per requested format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SrcDir = "."
			if len(args) == 1 {
				opts.SrcDir = args[0]
			}
			opts.Formats = parseFormats(formatsStr)
			opts.CSSOrder = parseList(cssOrder)
			if opts.APIKey == "" {
				opts.APIKey = os.Getenv(apiKeyEnv)
			}

			if configPath != "" {
				if err := applyConfig(cmd, &opts, configPath); err != nil {
					return err
				}
			}

			return c.runPack(cmd, &opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.Name, "name", "", "atlas base name (default: source directory name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "descriptor format(s): json (default), jsonarray, yaml, xml, starling, sparrow, easeljs, css, plist (comma-separated)")
	cmd.Flags().StringVar(&opts.TemplatePath, "template", "", "custom descriptor template file")
	cmd.Flags().StringVar(&opts.TemplateExt, "template-ext", "txt", "file extension for the custom template output")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "prefix prepended to every frame name")
	cmd.Flags().BoolVar(&opts.FullPath, "fullpath", false, "keep the full relative path in frame names")
	cmd.Flags().StringVar(&opts.Ext, "ext", "", "only pack source files with this extension (default: any decodable image)")
	cmd.Flags().BoolVar(&opts.Trim, "trim", false, "trim transparent borders from sprites")
	cmd.Flags().Float64Var(&opts.Fuzz, "fuzz", 0, "trim color tolerance in percent (implies background matching)")
	cmd.Flags().IntVar(&opts.Scale, "scale", 100, "scale percentage applied to source images")
	cmd.Flags().StringVar(&opts.Algorithm, "algorithm", "", "packing algorithm: growing-binpacking (default), binpacking, vertical, horizontal")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort strategy: maxside (default), area, width, height, none")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "fixed canvas width (binpacking only)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "fixed canvas height (binpacking only)")
	cmd.Flags().IntVar(&opts.Padding, "padding", 0, "padding around every sprite in pixels")
	cmd.Flags().BoolVar(&opts.Square, "square", false, "expand the canvas to a square")
	cmd.Flags().BoolVar(&opts.PowerOfTwo, "power-of-two", false, "expand canvas dimensions to powers of two")
	cmd.Flags().BoolVar(&opts.DivisibleByTwo, "divisible-by-two", false, "expand canvas dimensions to even numbers")
	cmd.Flags().BoolVar(&opts.Validate, "validate", false, "verify the packed layout has no overlaps")
	cmd.Flags().StringVar(&cssOrder, "css-order", "", "frame names emitted first in the css format (comma-separated)")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "image optimization service credential (default: $"+apiKeyEnv+")")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file (flags override file values)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable optimizer response caching")

	return cmd
}

func (c *CLI) runPack(cmd *cobra.Command, opts *pipeline.Options, noCache bool) error {
	runner := c.newRunner(noCache)
	opts.Logger = c.Logger

	p := newProgress(c.Logger)

	spinner := newSpinnerWithContext(cmd.Context(), "packing sprites")
	spinner.Start()
	result, err := runner.Execute(cmd.Context(), *opts)
	spinner.Stop()

	if err != nil {
		if spinner.Cancelled() {
			return cmd.Context().Err()
		}
		printError("%s", errors.UserMessage(err))
		return err
	}

	p.done("Packed " + opts.Name)
	printSuccess("Wrote atlas %s", opts.Name+".png")
	printStats(result.Stats.ImageCount, result.Plan.Width, result.Plan.Height, result.Stats.FillRatio)
	for _, path := range result.Paths {
		printFile(path)
	}
	if opts.APIKey != "" && !result.Stats.Optimized {
		printWarning("optimizer unavailable, kept unoptimized atlas")
	}
	return nil
}

// parseFormats parses the --format flag into a slice of descriptor formats.
// An empty flag means the pipeline default.
func parseFormats(s string) []string {
	return parseList(s)
}

// parseList splits a comma-separated flag value, dropping empty entries.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
