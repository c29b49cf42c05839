package emit

import (
	"bytes"
	"os"
	"regexp"
	"text/template"

	"github.com/matzehuels/spritepack/pkg/errors"
)

func init() {
	register(FormatYAML, mustTemplate("yaml", "yaml", yamlTemplate))
	register(FormatXML, mustTemplate("xml", "xml", xmlTemplate))
	register(FormatStarling, mustTemplate("starling", "xml", starlingTemplate))
	register(FormatSparrow, mustTemplate("sparrow", "xml", starlingTemplate))
	register(FormatEaselJS, mustTemplate("easeljs", "js", easelTemplate))
	register(FormatCSS, mustTemplate("css", "css", cssTemplate))
	register(FormatPlist, mustTemplate("plist", "plist", plistTemplate))
}

// funcs are the helpers available to all descriptor templates.
var funcs = template.FuncMap{
	"neg": func(n int) int { return -n },
	"css": cssClass,
	"sub": func(a, b int) int { return a - b },
}

var cssUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// cssClass turns a frame name into a safe CSS class name: path separators,
// dots, and other unsafe runes become hyphens.
func cssClass(name string) string {
	return cssUnsafe.ReplaceAllString(name, "-")
}

// templateRenderer renders a Sheet through a text/template.
type templateRenderer struct {
	name string
	ext  string
	tmpl *template.Template
}

func mustTemplate(name, ext, text string) *templateRenderer {
	return &templateRenderer{
		name: name,
		ext:  ext,
		tmpl: template.Must(template.New(name).Funcs(funcs).Parse(text)),
	}
}

// NewTemplateFile loads a caller-supplied descriptor template from path. The
// template receives the *Sheet as its data and may use the neg, css, and sub
// helpers. ext is the output file extension (without dot).
func NewTemplateFile(path, ext string) (Renderer, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedFmt, err, "read template %s", path)
	}
	tmpl, err := template.New("custom").Funcs(funcs).Parse(string(text))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedFmt, err, "parse template %s", path)
	}
	return &templateRenderer{name: "custom", ext: ext, tmpl: tmpl}, nil
}

func (r *templateRenderer) Ext() string { return r.ext }

func (r *templateRenderer) Render(s *Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s descriptor", r.name)
	}
	return buf.Bytes(), nil
}

const yamlTemplate = `image: {{.Image}}
size:
  w: {{.Width}}
  h: {{.Height}}
frames:
{{- range .Frames}}
  {{.Name}}:
    x: {{.X}}
    y: {{.Y}}
    w: {{.Width}}
    h: {{.Height}}
    offsetX: {{.OffsetX}}
    offsetY: {{.OffsetY}}
    sourceW: {{.SourceWidth}}
    sourceH: {{.SourceHeight}}
    trimmed: {{.Trimmed}}
    rotated: {{.Rotated}}
{{- end}}
`

const xmlTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<atlas imagePath="{{.Image}}" width="{{.Width}}" height="{{.Height}}">
{{- range .Frames}}
    <sprite name="{{.Name}}" x="{{.X}}" y="{{.Y}}" w="{{.Width}}" h="{{.Height}}" oX="{{.OffsetX}}" oY="{{.OffsetY}}" oW="{{.SourceWidth}}" oH="{{.SourceHeight}}"/>
{{- end}}
</atlas>
`

// starlingTemplate serves both the starling and sparrow identifiers; the two
// families share the TextureAtlas schema. frameX/frameY are the negated trim
// offsets, per the schema's convention.
const starlingTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<TextureAtlas imagePath="{{.Image}}">
{{- range .Frames}}
    <SubTexture name="{{.Name}}" x="{{.X}}" y="{{.Y}}" width="{{.Width}}" height="{{.Height}}"{{if .Trimmed}} frameX="{{neg .OffsetX}}" frameY="{{neg .OffsetY}}" frameWidth="{{.SourceWidth}}" frameHeight="{{.SourceHeight}}"{{end}}/>
{{- end}}
</TextureAtlas>
`

const easelTemplate = `var {{.Name}} = {
    "images": ["{{.Image}}"],
    "frames": [
{{- range $i, $f := .Frames}}
        {{- if $i}},{{end}}
        [{{$f.X}}, {{$f.Y}}, {{$f.Width}}, {{$f.Height}}, 0, {{$f.OffsetX}}, {{$f.OffsetY}}]
{{- end}}
    ],
    "animations": {
{{- range $i, $f := .Frames}}
        {{- if $i}},{{end}}
        "{{$f.Name}}": { "frames": [{{$i}}] }
{{- end}}
    }
};
`

const cssTemplate = `{{- $image := .Image}}
{{- range .OrderedFrames}}
.{{css .Name}} {
    background-image: url('{{$image}}');
    background-position: -{{.X}}px -{{.Y}}px;
    width: {{.Width}}px;
    height: {{.Height}}px;
}
{{end}}`

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple Computer//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>frames</key>
    <dict>
{{- range .Frames}}
        <key>{{.Name}}</key>
        <dict>
            <key>frame</key>
            <string>{{"{{"}}{{.X}},{{.Y}}{{"},{"}}{{.Width}},{{.Height}}{{"}}"}}</string>
            <key>offset</key>
            <string>{{"{"}}{{.OffsetX}},{{.OffsetY}}{{"}"}}</string>
            <key>rotated</key>
            {{if .Rotated}}<true/>{{else}}<false/>{{end}}
            <key>sourceSize</key>
            <string>{{"{"}}{{.SourceWidth}},{{.SourceHeight}}{{"}"}}</string>
        </dict>
{{- end}}
    </dict>
    <key>metadata</key>
    <dict>
        <key>format</key>
        <integer>2</integer>
        <key>textureFileName</key>
        <string>{{.Image}}</string>
        <key>size</key>
        <string>{{"{"}}{{.Width}},{{.Height}}{{"}"}}</string>
    </dict>
</dict>
</plist>
`
