package host

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Value is a host model value together with the expression it was
// computed from. In documents it may be written as a bare number.
type Value struct {
	Value      float64 `yaml:"value" json:"value"`
	Expression string  `yaml:"expression,omitempty" json:"expression,omitempty"`
}

// UnmarshalYAML accepts both `2.5` and `{value: 2.5, expression: "w / 2"}`.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("line %d: expected a number: %w", node.Line, err)
		}
		*v = Value{Value: f}
		return nil
	}

	type plain Value
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*v = Value(p)
	return nil
}

// Document is a design exported from the host as YAML or JSON.
type Document struct {
	DesignName string      `yaml:"name"`
	Params     []Parameter `yaml:"parameters"`
	Sketches   []Sketch    `yaml:"sketches"`
	Timeline   []Entity    `yaml:"timeline"`

	sketchIndex map[string]*Sketch
}

// LoadDocument reads and parses a design document. JSON documents are
// accepted since JSON is valid YAML.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read design file: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument parses a design document from memory.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	doc.sketchIndex = make(map[string]*Sketch, len(doc.Sketches))
	for i := range doc.Sketches {
		sk := &doc.Sketches[i]
		if sk.Name == "" {
			return nil, fmt.Errorf("sketch %d: name is required", i)
		}
		if _, dup := doc.sketchIndex[sk.Name]; dup {
			return nil, fmt.Errorf("duplicate sketch name %q", sk.Name)
		}
		doc.sketchIndex[sk.Name] = sk
	}

	return &doc, nil
}

// Name returns the design name.
func (d *Document) Name() string {
	return d.DesignName
}

// Parameters returns the user parameters in document order.
func (d *Document) Parameters() ([]Parameter, error) {
	return d.Params, nil
}

// TimelineCount returns the number of timeline entries.
func (d *Document) TimelineCount() int {
	return len(d.Timeline)
}

// Item resolves the timeline entry at index i. A sketch or profile reference
// that does not resolve returns ErrStaleReference.
func (d *Document) Item(i int) (Entity, error) {
	if i < 0 || i >= len(d.Timeline) {
		return Entity{}, fmt.Errorf("%w: timeline index %d out of range", ErrStaleReference, i)
	}

	e := d.Timeline[i]
	e.Index = i
	if e.Name == "" {
		e.Name = fmt.Sprintf("feature_%d", i)
	}

	if e.SketchName == "" {
		return e, nil
	}

	sk, ok := d.sketchIndex[e.SketchName]
	if !ok {
		return Entity{}, fmt.Errorf("%w: %s references unknown sketch %q", ErrStaleReference, e.Name, e.SketchName)
	}

	e.Plane = sk.Plane
	refs := e.ProfileRefs
	if len(refs) == 0 {
		// No explicit selection means every profile of the sketch
		refs = make([]int, len(sk.Profiles))
		for j := range refs {
			refs[j] = j
		}
	}

	e.Profiles = make([]Profile, 0, len(refs))
	for _, ref := range refs {
		if ref < 0 || ref >= len(sk.Profiles) {
			return Entity{}, fmt.Errorf("%w: %s references profile %d of sketch %q which has %d profile(s)",
				ErrStaleReference, e.Name, ref, sk.Name, len(sk.Profiles))
		}
		e.Profiles = append(e.Profiles, sk.Profiles[ref])
	}

	return e, nil
}
