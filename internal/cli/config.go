package cli

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/pipeline"
)

// fileConfig mirrors the pack command's flags for TOML config files.
// Precedence is flag > file > default: a file value only applies when the
// corresponding flag was not set on the command line.
type fileConfig struct {
	Out            string   `toml:"out"`
	Name           string   `toml:"name"`
	Formats        []string `toml:"formats"`
	Template       string   `toml:"template"`
	TemplateExt    string   `toml:"template_ext"`
	Prefix         string   `toml:"prefix"`
	Ext            string   `toml:"ext"`
	FullPath       *bool    `toml:"fullpath"`
	Trim           *bool    `toml:"trim"`
	Fuzz           *float64 `toml:"fuzz"`
	Scale          *int     `toml:"scale"`
	Algorithm      string   `toml:"algorithm"`
	Sort           string   `toml:"sort"`
	Width          *int     `toml:"width"`
	Height         *int     `toml:"height"`
	Padding        *int     `toml:"padding"`
	Square         *bool    `toml:"square"`
	PowerOfTwo     *bool    `toml:"power_of_two"`
	DivisibleByTwo *bool    `toml:"divisible_by_two"`
	Validate       *bool    `toml:"validate"`
	CSSOrder       []string `toml:"css_order"`
	APIKey         string   `toml:"api_key"`
}

// applyConfig loads a TOML config file and fills in every option whose flag
// was left at its default.
func applyConfig(cmd *cobra.Command, opts *pipeline.Options, path string) error {
	var file fileConfig
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	changed := cmd.Flags().Changed

	setString := func(flag string, dst *string, v string) {
		if !changed(flag) && v != "" {
			*dst = v
		}
	}
	setBool := func(flag string, dst *bool, v *bool) {
		if !changed(flag) && v != nil {
			*dst = *v
		}
	}
	setInt := func(flag string, dst *int, v *int) {
		if !changed(flag) && v != nil {
			*dst = *v
		}
	}

	setString("out", &opts.OutDir, file.Out)
	setString("name", &opts.Name, file.Name)
	setString("template", &opts.TemplatePath, file.Template)
	setString("template-ext", &opts.TemplateExt, file.TemplateExt)
	setString("prefix", &opts.Prefix, file.Prefix)
	setString("ext", &opts.Ext, file.Ext)
	setString("algorithm", &opts.Algorithm, file.Algorithm)
	setString("sort", &opts.Sort, file.Sort)
	setString("api-key", &opts.APIKey, file.APIKey)

	setBool("fullpath", &opts.FullPath, file.FullPath)
	setBool("trim", &opts.Trim, file.Trim)
	setBool("square", &opts.Square, file.Square)
	setBool("power-of-two", &opts.PowerOfTwo, file.PowerOfTwo)
	setBool("divisible-by-two", &opts.DivisibleByTwo, file.DivisibleByTwo)
	setBool("validate", &opts.Validate, file.Validate)

	setInt("width", &opts.Width, file.Width)
	setInt("height", &opts.Height, file.Height)
	setInt("padding", &opts.Padding, file.Padding)
	setInt("scale", &opts.Scale, file.Scale)

	if !changed("fuzz") && file.Fuzz != nil {
		opts.Fuzz = *file.Fuzz
	}
	if !changed("format") && len(file.Formats) > 0 {
		opts.Formats = file.Formats
	}
	if !changed("css-order") && len(file.CSSOrder) > 0 {
		opts.CSSOrder = file.CSSOrder
	}

	return nil
}
