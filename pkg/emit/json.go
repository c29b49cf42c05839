package emit

import (
	"encoding/json"

	"github.com/matzehuels/spritepack/pkg/errors"
)

func init() {
	register(FormatJSON, jsonRenderer{})
	register(FormatJSONArray, jsonArrayRenderer{})
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename         string   `json:"filename,omitempty"`
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonMeta struct {
	App   string   `json:"app"`
	Image string   `json:"image"`
	Size  jsonSize `json:"size"`
	Scale string   `json:"scale"`
}

func buildJSONFrame(f Frame) jsonFrame {
	return jsonFrame{
		Frame:   jsonRect{X: f.X, Y: f.Y, W: f.Width, H: f.Height},
		Rotated: f.Rotated,
		Trimmed: f.Trimmed,
		SpriteSourceSize: jsonRect{
			X: f.OffsetX, Y: f.OffsetY,
			W: f.Width, H: f.Height,
		},
		SourceSize: jsonSize{W: f.SourceWidth, H: f.SourceHeight},
	}
}

func buildJSONMeta(s *Sheet) jsonMeta {
	return jsonMeta{
		App:   "spritepack",
		Image: s.Image,
		Size:  jsonSize{W: s.Width, H: s.Height},
		Scale: "1",
	}
}

// jsonRenderer emits the object-of-frames JSON format: frames keyed by name.
type jsonRenderer struct{}

func (jsonRenderer) Ext() string { return "json" }

func (jsonRenderer) Render(s *Sheet) ([]byte, error) {
	out := struct {
		Frames map[string]jsonFrame `json:"frames"`
		Meta   jsonMeta             `json:"meta"`
	}{
		Frames: make(map[string]jsonFrame, len(s.Frames)),
		Meta:   buildJSONMeta(s),
	}
	for _, f := range s.Frames {
		out.Frames[f.Name] = buildJSONFrame(f)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal json descriptor")
	}
	return data, nil
}

// jsonArrayRenderer emits the array-of-frames JSON format: each frame carries
// its name in a filename field, preserving pipeline order.
type jsonArrayRenderer struct{}

func (jsonArrayRenderer) Ext() string { return "json" }

func (jsonArrayRenderer) Render(s *Sheet) ([]byte, error) {
	out := struct {
		Frames []jsonFrame `json:"frames"`
		Meta   jsonMeta    `json:"meta"`
	}{
		Frames: make([]jsonFrame, len(s.Frames)),
		Meta:   buildJSONMeta(s),
	}
	for i, f := range s.Frames {
		jf := buildJSONFrame(f)
		jf.Filename = f.Name
		out.Frames[i] = jf
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal jsonarray descriptor")
	}
	return data, nil
}
