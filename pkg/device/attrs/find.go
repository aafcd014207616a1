package attrs

import (
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

// Child node predicate
type Filter func(Node) bool

// Matches nodes whose attribute has the given value
func Where(name, value string) Filter {
	return func(n Node) bool {
		actual, ok := n.Attr(name)
		return ok && actual == value
	}
}

// Matches nodes defining the given attribute
func Has(name string) Filter {
	return func(n Node) bool {
		_, ok := n.Attr(name)
		return ok
	}
}

func matches(n Node, tag string, filters []Filter) bool {
	if tag != "" && n.Tag() != tag {
		return false
	}

	for _, filter := range filters {
		if !filter(n) {
			return false
		}
	}

	return true
}

// Returns the direct children with the given tag (any tag if empty) accepted by all filters
func Find(n Node, tag string, filters ...Filter) []Node {
	var result []Node

	for _, child := range n.Children() {
		if matches(child, tag, filters) {
			result = append(result, child)
		}
	}

	return result
}

// Returns the first direct child matching tag and filters
func FindFirst(n Node, tag string, filters ...Filter) (Node, bool) {
	for _, child := range n.Children() {
		if matches(child, tag, filters) {
			return child, true
		}
	}

	return nil, false
}

// Returns all descendants matching tag and filters, in document order
func FindDeep(n Node, tag string, filters ...Filter) []Node {
	var result []Node

	for _, child := range n.Children() {
		if matches(child, tag, filters) {
			result = append(result, child)
		}

		result = append(result, FindDeep(child, tag, filters...)...)
	}

	return result
}

// Returns the first direct child matching tag and filters, failing if there is none
func Require(n Node, tag string, filters ...Filter) (Node, error) {
	if child, ok := FindFirst(n, tag, filters...); ok {
		return child, nil
	}

	return nil, utils.MakeError(model.ErrMalformedDescription, "%v: missing child '%v'", Path(n), tag)
}

// Follows a sequence of tags from n, taking the first match at each step
func Walk(n Node, tags ...string) (Node, error) {
	for _, tag := range tags {
		child, err := Require(n, tag)
		if err != nil {
			return nil, err
		}

		n = child
	}

	return n, nil
}
