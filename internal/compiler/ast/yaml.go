package ast

import "gopkg.in/yaml.v3"

// yamlNode is the YAML dump shape of a Node, used by `climb parse --format yaml`.
type yamlNode struct {
	Kind    string    `yaml:"kind"`
	Value   *float64  `yaml:"value,omitempty"`
	Name    string    `yaml:"name,omitempty"`
	Op      string    `yaml:"op,omitempty"`
	Operand *yamlNode `yaml:"operand,omitempty"`
	Left    *yamlNode `yaml:"left,omitempty"`
	Right   *yamlNode `yaml:"right,omitempty"`
	Callee  *yamlNode `yaml:"callee,omitempty"`
	Arg     *yamlNode `yaml:"arg,omitempty"`
}

func toYAMLNode(n Node) *yamlNode {
	switch node := n.(type) {
	case *Constant:
		v := node.Value
		return &yamlNode{Kind: "constant", Value: &v}
	case *Identifier:
		return &yamlNode{Kind: "identifier", Name: node.Name}
	case *Negate:
		return &yamlNode{Kind: "negate", Operand: toYAMLNode(node.Operand)}
	case *Binary:
		return &yamlNode{Kind: "binary", Op: node.Op.String(), Left: toYAMLNode(node.Left), Right: toYAMLNode(node.Right)}
	case *Call:
		return &yamlNode{Kind: "call", Callee: toYAMLNode(node.Callee), Arg: toYAMLNode(node.Arg)}
	}
	return nil
}

// MarshalYAML dumps the tree rooted at n as nested YAML mappings.
func MarshalYAML(n Node) ([]byte, error) {
	return yaml.Marshal(toYAMLNode(n))
}
