// Package scene loads node trees from YAML files.
//
// A scene file looks like:
//
//	width: 320
//	height: 200
//	stylesheet: |
//	  .button { padding: 4; background: #ddd }
//	root:
//	  id: main
//	  style: "flow: horizontal; gap: 8"
//	  children:
//	    - {id: ok, class: [button], text: OK}
//	    - {id: cancel, class: [button], tags: [hover], text: Cancel}
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"imstyle/pkg/css"
	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// ErrInvalid is wrapped by every scene that cannot be built.
var ErrInvalid = errors.New("invalid scene")

// File is the YAML form of a scene.
type File struct {
	Stylesheet string   `yaml:"stylesheet,omitempty"`
	Width      float64  `yaml:"width,omitempty"`
	Height     float64  `yaml:"height,omitempty"`
	Scripts    []string `yaml:"scripts,omitempty"`
	Root       Node     `yaml:"root"`
}

// Node is the YAML form of one node.
type Node struct {
	ID       string   `yaml:"id,omitempty"`
	Class    []string `yaml:"class,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
	Style    string   `yaml:"style,omitempty"`
	Text     string   `yaml:"text,omitempty"`
	Children []Node   `yaml:"children,omitempty"`
}

// Scene is a built tree plus the viewport it was authored for.
type Scene struct {
	Tree     *dom.Tree
	Viewport geom.Rect
	Scripts  []string
}

// Load reads and builds the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML and builds the scene. Unknown keys are errors.
func Parse(data []byte) (*Scene, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return f.Build()
}

// Build creates a tree from f. The stylesheet is attached to the root.
func (f *File) Build() (*Scene, error) {
	w, h := f.Width, f.Height
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("%w: negative viewport %vx%v", ErrInvalid, w, h)
	}
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}

	t := dom.NewTree()
	root := t.Root()
	if f.Stylesheet != "" {
		sheet, err := css.ParseStylesheet(f.Stylesheet)
		if err != nil {
			return nil, fmt.Errorf("stylesheet: %w", err)
		}
		if err := root.SetStylesheet(sheet); err != nil {
			return nil, err
		}
	}
	if err := f.Root.apply(root, "root"); err != nil {
		return nil, err
	}

	return &Scene{
		Tree:     t,
		Viewport: geom.Rect{Width: w, Height: h},
		Scripts:  f.Scripts,
	}, nil
}

func (sn *Node) apply(n dom.Node, path string) error {
	if err := n.SetElementID(sn.ID); err != nil {
		return err
	}
	if err := n.AddClass(sn.Class...); err != nil {
		return err
	}
	if err := n.AddTag(sn.Tags...); err != nil {
		return err
	}
	if sn.Style != "" {
		if err := n.SetInlineText(sn.Style); err != nil {
			return fmt.Errorf("%s: style: %w", path, err)
		}
	}
	if err := n.SetText(sn.Text); err != nil {
		return err
	}

	for i := range sn.Children {
		c := &sn.Children[i]
		child := n.Tree().NewNode("")
		if err := n.AppendChild(child); err != nil {
			return err
		}
		if err := c.apply(child, childPath(path, i, c.ID)); err != nil {
			return err
		}
	}
	return nil
}

func childPath(parent string, i int, id string) string {
	if id != "" {
		return parent + "/#" + id
	}
	return fmt.Sprintf("%s/%d", parent, i)
}

// FromTree captures the structure of the subtree at n. Inline styles are not
// captured.
func FromTree(n dom.Node) Node {
	sn := Node{
		ID:    n.ElementID(),
		Class: n.Classes(),
		Tags:  n.Tags(),
		Text:  n.Text(),
	}
	for _, c := range n.Children() {
		sn.Children = append(sn.Children, FromTree(c))
	}
	return sn
}

// Marshal encodes f as YAML.
func (f *File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
