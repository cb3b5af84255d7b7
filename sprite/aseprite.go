package sprite

import (
	"encoding/json"
	"fmt"
	"image"
)

// aseData mirrors the subset of Aseprite's `--format json-array --list-tags
// --list-slices` export this package reads.
type aseData struct {
	Frames []aseFrame `json:"frames"`
	Meta   aseMeta    `json:"meta"`
}

type aseFrame struct {
	Frame    aseRect `json:"frame"`
	Duration int     `json:"duration"`
}

type aseRect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r aseRect) rect() image.Rectangle {
	x, y := int(r.X), int(r.Y)
	return image.Rect(x, y, x+int(r.W), y+int(r.H))
}

type aseMeta struct {
	FrameTags []aseTag   `json:"frameTags"`
	Slices    []aseSlice `json:"slices"`
}

type aseTag struct {
	Name string `json:"name"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

type aseSlice struct {
	Name string        `json:"name"`
	Keys []aseSliceKey `json:"keys"`
}

type aseSliceKey struct {
	Frame  int     `json:"frame"`
	Bounds aseRect `json:"bounds"`
}

func parseSheet(data []byte) (*aseData, error) {
	var ase aseData
	if err := json.Unmarshal(data, &ase); err != nil {
		return nil, err
	}
	if len(ase.Frames) == 0 {
		return nil, fmt.Errorf("sheet has no frames")
	}
	for _, tag := range ase.Meta.FrameTags {
		if tag.From < 0 || tag.To >= len(ase.Frames) || tag.From > tag.To {
			return nil, fmt.Errorf("tag %q: frame range %d..%d out of bounds", tag.Name, tag.From, tag.To)
		}
	}
	return &ase, nil
}
