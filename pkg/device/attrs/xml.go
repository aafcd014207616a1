package attrs

import (
	"os"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
	xmlx "github.com/jteeuwen/go-pkg-xmlx"
)

type xmlNode struct {
	node *xmlx.Node
}

// Wraps a parsed xmlx node
func FromXmlx(node *xmlx.Node) Node {
	if node == nil {
		return nil
	}

	return &xmlNode{node: node}
}

func (n *xmlNode) Tag() string {
	if n.node.Type != xmlx.NT_ELEMENT {
		return ""
	}

	return n.node.Name.Local
}

func (n *xmlNode) Attr(name string) (string, bool) {
	name = localName(name)

	for _, attr := range n.node.Attributes {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}

	return "", false
}

func (n *xmlNode) Children() []Node {
	children := make([]Node, 0, len(n.node.Children))

	for _, child := range n.node.Children {
		if child.Type == xmlx.NT_ELEMENT {
			children = append(children, &xmlNode{node: child})
		}
	}

	return children
}

func (n *xmlNode) Parent() Node {
	return FromXmlx(n.node.Parent)
}

func (n *xmlNode) Text() string {
	var builder strings.Builder

	builder.WriteString(n.node.Value)

	for _, child := range n.node.Children {
		if child.Type == xmlx.NT_TEXT {
			builder.WriteString(child.Value)
		}
	}

	return strings.TrimSpace(builder.String())
}

// Parses an XML document and returns its root node
func LoadXML(data []byte) (Node, error) {
	doc := xmlx.New()

	if err := doc.LoadBytes(data, nil); err != nil {
		return nil, utils.MakeError(model.ErrMalformedDescription, "parsing xml: %v", err)
	}

	return FromXmlx(doc.Root), nil
}

// Reads and parses an XML description file
func LoadFile(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	root, err := LoadXML(data)
	if err != nil {
		return nil, utils.MakeError(err, "%v", path)
	}

	return root, nil
}
