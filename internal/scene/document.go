// Package scene loads declarative scene files into a paint-node tree.
//
// A scene is YAML or JSON describing already-positioned nodes:
//
//	style_script: styles.lua
//	root:
//	  id: app
//	  width: 80
//	  height: 24
//	  background: blue
//	  children:
//	    - id: ok
//	      x: 2
//	      y: 20
//	      width: 8
//	      height: 3
//	      z: 1
//	      text: OK
//	      border: { style: double, color: white }
//	      interactive: { type: button }
//	      style: primary
//
// Nodes without an id get a random one. The style field names a function
// in the style script.
package scene

import "errors"

// Errors returned while loading scenes.
var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor
	// JSON.
	ErrUnsupportedFormat = errors.New("unsupported scene format")
	// ErrInvalidDocument is returned when a scene cannot be decoded.
	ErrInvalidDocument = errors.New("invalid scene document")
	// ErrInvalidNode is returned when a node fails validation.
	ErrInvalidNode = errors.New("invalid scene node")
)

// Format is a scene file encoding.
type Format uint8

const (
	FormatYAML Format = iota
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// Document is a decoded scene file.
type Document struct {
	// StyleScript is a Lua file, relative to the scene, defining style
	// functions.
	StyleScript string `yaml:"style_script" json:"style_script"`
	Root        NodeSpec `yaml:"root" json:"root"`
}

// NodeSpec is one node as written in a scene file.
type NodeSpec struct {
	ID       string `yaml:"id"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Z        int    `yaml:"z"`
	Stacking bool   `yaml:"stacking"`
	Position string `yaml:"position"`
	Hidden   bool   `yaml:"hidden"`

	Text       string `yaml:"text"`
	Color      string `yaml:"color"`
	Background string `yaml:"background"`

	Bold          bool `yaml:"bold"`
	Dim           bool `yaml:"dim"`
	Italic        bool `yaml:"italic"`
	Underline     bool `yaml:"underline"`
	Inverse       bool `yaml:"inverse"`
	Strikethrough bool `yaml:"strikethrough"`

	Border      *BorderSpec      `yaml:"border"`
	Interactive *InteractiveSpec `yaml:"interactive"`
	Style       string           `yaml:"style"`

	Children []NodeSpec `yaml:"children"`
}

// BorderSpec describes a border. Empty Sides draws all four.
type BorderSpec struct {
	Style      string   `yaml:"style"`
	Color      string   `yaml:"color"`
	Background string   `yaml:"background"`
	Sides      []string `yaml:"sides"`
}

// InteractiveSpec describes a node's input state.
type InteractiveSpec struct {
	Type         string   `yaml:"type"`
	Open         bool     `yaml:"open"`
	Disabled     bool     `yaml:"disabled"`
	Options      []string `yaml:"options"`
	MaxVisible   int      `yaml:"max_visible"`
	ScrollOffset int      `yaml:"scroll_offset"`
	DropUp       bool     `yaml:"drop_up"`
}
