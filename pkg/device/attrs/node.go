// Package attrs implements typed attribute lookup and filtered child search over
// device description trees, independently of the backing store.
package attrs

import (
	"fmt"
	"strings"
)

// A node of a description tree
type Node interface {
	// Tag name of the node, without namespace prefix. Empty for document roots
	Tag() string

	// Returns the value of an attribute by local name
	Attr(name string) (string, bool)

	// Child element nodes in document order
	Children() []Node

	// Parent node, nil for roots
	Parent() Node

	// Character data directly contained in the node
	Text() string
}

// Returns the local part of a possibly prefixed name ("edc:cname" -> "cname")
func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// Returns a short human readable location of the node, used in error messages
func Path(n Node) string {
	var parts []string

	for ; n != nil; n = n.Parent() {
		if n.Tag() == "" {
			continue
		}

		part := n.Tag()

		if name, hasName := n.Attr("name"); hasName {
			part += fmt.Sprintf("[name=%v]", name)
		} else if name, hasName := n.Attr("cname"); hasName {
			part += fmt.Sprintf("[cname=%v]", name)
		}

		parts = append(parts, part)
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return "/" + strings.Join(parts, "/")
}
