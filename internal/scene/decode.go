package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (Document, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	default:
		return decodeYAML(data)
	}
}

func decodeYAML(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return doc, nil
}

func decodeJSON(data []byte) (Document, error) {
	if !gjson.ValidBytes(data) {
		return Document{}, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return Document{}, fmt.Errorf("%w: top level must be an object", ErrInvalidDocument)
	}
	return Document{
		StyleScript: res.Get("style_script").String(),
		Root:        nodeFromJSON(res.Get("root")),
	}, nil
}

func nodeFromJSON(r gjson.Result) NodeSpec {
	n := NodeSpec{
		ID:       r.Get("id").String(),
		X:        int(r.Get("x").Int()),
		Y:        int(r.Get("y").Int()),
		Width:    int(r.Get("width").Int()),
		Height:   int(r.Get("height").Int()),
		Z:        int(r.Get("z").Int()),
		Stacking: r.Get("stacking").Bool(),
		Position: r.Get("position").String(),
		Hidden:   r.Get("hidden").Bool(),

		Text:       r.Get("text").String(),
		Color:      r.Get("color").String(),
		Background: r.Get("background").String(),

		Bold:          r.Get("bold").Bool(),
		Dim:           r.Get("dim").Bool(),
		Italic:        r.Get("italic").Bool(),
		Underline:     r.Get("underline").Bool(),
		Inverse:       r.Get("inverse").Bool(),
		Strikethrough: r.Get("strikethrough").Bool(),

		Style: r.Get("style").String(),
	}

	if b := r.Get("border"); b.IsObject() {
		n.Border = &BorderSpec{
			Style:      b.Get("style").String(),
			Color:      b.Get("color").String(),
			Background: b.Get("background").String(),
			Sides:      stringsFromJSON(b.Get("sides")),
		}
	}

	if in := r.Get("interactive"); in.IsObject() {
		n.Interactive = &InteractiveSpec{
			Type:         in.Get("type").String(),
			Open:         in.Get("open").Bool(),
			Disabled:     in.Get("disabled").Bool(),
			Options:      stringsFromJSON(in.Get("options")),
			MaxVisible:   int(in.Get("max_visible").Int()),
			ScrollOffset: int(in.Get("scroll_offset").Int()),
			DropUp:       in.Get("drop_up").Bool(),
		}
	}

	r.Get("children").ForEach(func(_, child gjson.Result) bool {
		n.Children = append(n.Children, nodeFromJSON(child))
		return true
	})
	return n
}

func stringsFromJSON(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}
