package distill

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a YAML document into a Value tree. Mapping order is
// preserved and the scalar tags keep the int/float distinction, so YAML
// payloads distill under the same policies as JSON ones. Aliases are
// resolved; cyclic anchors are rejected to keep the tree acyclic.
func DecodeYAML(data []byte) (*Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Null(), nil
	}
	return yamlValue(root.Content[0], make(map[*yaml.Node]bool))
}

func yamlValue(n *yaml.Node, resolving map[*yaml.Node]bool) (*Value, error) {
	if n == nil {
		return Null(), nil
	}
	if resolving[n] {
		return nil, fmt.Errorf("yaml: line %d: cyclic alias", n.Line)
	}
	resolving[n] = true
	defer delete(resolving, n)

	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(n.Alias, resolving)
	case yaml.ScalarNode:
		return yamlScalar(n)
	case yaml.SequenceNode:
		elems := make([]*Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c, resolving)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return List(elems...), nil
	case yaml.MappingNode:
		fields := make([]Field, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("yaml: line %d: non-scalar mapping key", key.Line)
			}
			v, err := yamlValue(n.Content[i+1], resolving)
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Name: key.Value, Value: v})
		}
		return Map(fields...), nil
	default:
		return nil, fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func yamlScalar(n *yaml.Node) (*Value, error) {
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("yaml: line %d: invalid bool %q", n.Line, n.Value)
		}
		return Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			// Out-of-range integers degrade to float rather than fail.
			f, ferr := strconv.ParseFloat(n.Value, 64)
			if ferr != nil {
				return nil, fmt.Errorf("yaml: line %d: invalid int %q", n.Line, n.Value)
			}
			return Float(f), nil
		}
		return Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("yaml: line %d: invalid float %q", n.Line, n.Value)
		}
		return Float(f), nil
	default:
		// Strings, timestamps, and unknown tags are carried as text.
		return Text(n.Value), nil
	}
}
