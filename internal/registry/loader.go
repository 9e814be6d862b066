package registry

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// fieldDoc mirrors one field record of the YAML source. Unknown keys are
// ignored; missing optional keys default to empty.
type fieldDoc struct {
	Name        string         `yaml:"name"`
	Path        string         `yaml:"path"`
	Datatype    string         `yaml:"datatype"`
	Description string         `yaml:"description"`
	Examples    []string       `yaml:"examples"`
	Synonyms    []string       `yaml:"synonyms"`
	Constraints constraintsDoc `yaml:"constraints"`
}

// constraintsDoc mirrors the loosely structured constraints record of the
// source. Load converts it into the tagged Constraint variant.
type constraintsDoc struct {
	TargetSubjectsOf string            `yaml:"targetSubjectsOf"`
	TargetObjectsOf  string            `yaml:"targetObjectsOf"`
	Datatype         string            `yaml:"datatype"`
	AllowedValues    []allowedValueDoc `yaml:"allowed_values"`
	MaxCount         string            `yaml:"maxCount"`
}

type allowedValueDoc struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// validator accumulates load-time schema violations so a single load pass
// reports every problem.
type validator struct {
	problems []string
}

func newValidator() *validator {
	return &validator{}
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &MalformedRegistryError{Problems: v.problems}
}

// checkField applies the semantic rules shared by Load and New.
func (v *validator) checkField(f Field) {
	label := f.Name
	if label == "" {
		label = "(unnamed)"
	}
	if f.Name == "" {
		v.addf("field %s: missing name", label)
	}
	if f.Path == "" {
		v.addf("field %s: missing path", label)
	}
	if f.Constraint.MaxCount < 0 {
		v.addf("field %s: negative maxCount %d", label, f.Constraint.MaxCount)
	}
	switch f.Constraint.Kind {
	case KindEnumerated:
		if len(f.Constraint.Values) == 0 {
			v.addf("field %s: enumerated constraint without allowed values", label)
		}
		seen := make(map[string]bool, len(f.Constraint.Values))
		for _, av := range f.Constraint.Values {
			if av.ID == "" {
				v.addf("field %s: allowed value with empty id", label)
				continue
			}
			if seen[av.ID] {
				v.addf("field %s: duplicate allowed value id %q", label, av.ID)
			}
			seen[av.ID] = true
		}
	case KindNone:
		if len(f.Constraint.Values) > 0 {
			v.addf("field %s: allowed values on an unconstrained field", label)
		}
	}
}

// Load parses a YAML registry source into a validated, immutable Registry.
// The source is one top-level mapping keyed by field name; declaration
// order is preserved. Any schema violation fails the whole load with
// MalformedRegistryError.
func Load(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read registry source: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &MalformedRegistryError{
			Problems: []string{fmt.Sprintf("invalid YAML: %v", err)},
		}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		// Empty document: an empty but well-formed catalogue.
		return &Registry{fields: map[string]Field{}}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &MalformedRegistryError{
			Problems: []string{"registry source must be a mapping keyed by field name"},
		}
	}

	v := newValidator()
	reg := &Registry{fields: make(map[string]Field)}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, valNode := doc.Content[i], doc.Content[i+1]
		key := keyNode.Value

		var fd fieldDoc
		if err := valNode.Decode(&fd); err != nil {
			v.addf("field %s: %v", key, err)
			continue
		}

		f, ok := buildField(key, fd, v)
		if !ok {
			continue
		}
		v.checkField(f)

		if _, dup := reg.fields[f.Name]; dup {
			v.addf("duplicate field name %q", f.Name)
			continue
		}
		reg.fields[f.Name] = f
		reg.order = append(reg.order, f.Name)
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadFile loads a registry from a file path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is the operator-supplied catalogue location
	if err != nil {
		return nil, fmt.Errorf("open registry source: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// buildField converts a raw document record into a Field, choosing the
// constraint variant. Returns ok=false when the record is too broken to
// produce a usable Field; problems are recorded on the validator either way.
func buildField(key string, fd fieldDoc, v *validator) (Field, bool) {
	if fd.Name != "" && fd.Name != key {
		v.addf("field %s: name %q does not match its mapping key", key, fd.Name)
	}

	f := Field{
		Name:        fd.Name,
		Path:        fd.Path,
		Datatype:    fd.Datatype,
		Description: fd.Description,
		Synonyms:    append([]string(nil), fd.Synonyms...),
	}
	for _, raw := range fd.Examples {
		f.Examples = append(f.Examples, parseExample(raw))
	}

	c := fd.Constraints
	f.Constraint.TargetSubjectsOf = c.TargetSubjectsOf
	f.Constraint.TargetObjectsOf = c.TargetObjectsOf

	hasDatatype := c.Datatype != ""
	hasValues := len(c.AllowedValues) > 0

	switch {
	case hasDatatype && hasValues:
		// Ambiguous encoding: flag rather than silently pick one.
		v.addf("field %s: both datatype and allowed_values present", key)
		return Field{}, false
	case hasValues:
		f.Constraint.Kind = KindEnumerated
		for _, av := range c.AllowedValues {
			f.Constraint.Values = append(f.Constraint.Values, AllowedValue{
				ID:    av.ID,
				Label: av.Label,
			})
		}
	case hasDatatype:
		st, ok := ParseScalarType(c.Datatype)
		if !ok {
			v.addf("field %s: unsupported constraint datatype %q", key, c.Datatype)
			return Field{}, false
		}
		f.Constraint.Kind = KindScalar
		f.Constraint.Datatype = st
	default:
		f.Constraint.Kind = KindNone
	}

	if c.MaxCount != "" {
		n, err := strconv.Atoi(c.MaxCount)
		if err != nil || n <= 0 {
			v.addf("field %s: maxCount %q is not a positive-integer string", key, c.MaxCount)
			return Field{}, false
		}
		f.Constraint.MaxCount = n
	}

	return f, true
}
