package registry

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Save re-encodes the registry to its YAML source schema, preserving field
// declaration order and the "Label (value-id)" example encoding, so a
// loaded catalogue round-trips losslessly.
func (r *Registry) Save(w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, name := range r.order {
		f := r.fields[name]
		root.Content = append(root.Content,
			scalarNode(name),
			fieldNode(f),
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the registry to a file path.
func (r *Registry) SaveFile(path string) error {
	f, err := os.Create(path) //nolint:gosec // G304: path is the operator-supplied catalogue location
	if err != nil {
		return fmt.Errorf("create registry file: %w", err)
	}
	defer f.Close()
	return r.Save(f)
}

func fieldNode(f Field) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	appendPair(node, "name", scalarNode(f.Name))
	appendPair(node, "path", scalarNode(f.Path))
	appendPair(node, "datatype", scalarNode(f.Datatype))
	appendPair(node, "description", scalarNode(f.Description))

	examples := &yaml.Node{Kind: yaml.SequenceNode}
	for _, ex := range f.Examples {
		examples.Content = append(examples.Content, scalarNode(encodeExample(ex)))
	}
	appendPair(node, "examples", examples)

	synonyms := &yaml.Node{Kind: yaml.SequenceNode}
	for _, syn := range f.Synonyms {
		synonyms.Content = append(synonyms.Content, scalarNode(syn))
	}
	appendPair(node, "synonyms", synonyms)

	appendPair(node, "constraints", constraintNode(f.Constraint))
	return node
}

func constraintNode(c Constraint) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	if c.TargetSubjectsOf != "" {
		appendPair(node, "targetSubjectsOf", scalarNode(c.TargetSubjectsOf))
	}
	if c.TargetObjectsOf != "" {
		appendPair(node, "targetObjectsOf", scalarNode(c.TargetObjectsOf))
	}
	switch c.Kind {
	case KindScalar:
		appendPair(node, "datatype", scalarNode(c.Datatype.String()))
	case KindEnumerated:
		values := &yaml.Node{Kind: yaml.SequenceNode}
		for _, av := range c.Values {
			value := &yaml.Node{Kind: yaml.MappingNode}
			appendPair(value, "id", scalarNode(av.ID))
			appendPair(value, "label", scalarNode(av.Label))
			values.Content = append(values.Content, value)
		}
		appendPair(node, "allowed_values", values)
	}
	if c.MaxCount > 0 {
		// maxCount is string-encoded in the source schema.
		quoted := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Style: yaml.SingleQuotedStyle,
			Value: strconv.Itoa(c.MaxCount),
		}
		appendPair(node, "maxCount", quoted)
	}
	return node
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalarNode(key), value)
}
