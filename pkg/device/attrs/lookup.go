package attrs

import (
	"strconv"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

// Returns a string attribute, or fallback if absent
func String(n Node, name string, fallback string) string {
	if value, ok := n.Attr(name); ok {
		return value
	}

	return fallback
}

// Returns an int attribute, or fallback if absent or not a number
func Int(n Node, name string, fallback int) int {
	return int(Int64(n, name, int64(fallback)))
}

// Returns an int64 attribute, or fallback if absent or not a number
func Int64(n Node, name string, fallback int64) int64 {
	if value, ok := n.Attr(name); ok {
		if parsed, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64); err == nil {
			return parsed
		}
	}

	return fallback
}

// Returns an uint64 attribute, or fallback if absent or not a number
func Uint64(n Node, name string, fallback uint64) uint64 {
	if value, ok := n.Attr(name); ok {
		if parsed, err := utils.ParseUint(value); err == nil {
			return parsed
		}
	}

	return fallback
}

// Returns a bool attribute, or fallback if absent or not a boolean
func Bool(n Node, name string, fallback bool) bool {
	if value, ok := n.Attr(name); ok {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}

	return fallback
}

// Returns a string attribute the description must define
func RequireString(n Node, name string) (string, error) {
	if value, ok := n.Attr(name); ok {
		return value, nil
	}

	return "", utils.MakeError(model.ErrMalformedDescription, "%v: missing attribute '%v'", Path(n), name)
}

// Returns an uint64 attribute the description must define
func RequireUint64(n Node, name string) (uint64, error) {
	value, err := RequireString(n, name)
	if err != nil {
		return 0, err
	}

	parsed, err := utils.ParseUint(value)
	if err != nil {
		return 0, utils.MakeError(model.ErrMalformedDescription, "%v: attribute '%v' is not a number: '%v'", Path(n), name, value)
	}

	return parsed, nil
}

// Returns an int attribute the description must define
func RequireInt(n Node, name string) (int, error) {
	value, err := RequireString(n, name)
	if err != nil {
		return 0, err
	}

	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64)
	if err != nil {
		return 0, utils.MakeError(model.ErrMalformedDescription, "%v: attribute '%v' is not a number: '%v'", Path(n), name, value)
	}

	return int(parsed), nil
}

// Returns the value of an attribute on the node or its closest ancestor defining it
func Inherited(n Node, name string) (string, bool) {
	for ; n != nil; n = n.Parent() {
		if value, ok := n.Attr(name); ok {
			return value, true
		}
	}

	return "", false
}
