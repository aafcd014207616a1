package address

import (
	"strconv"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/attrs"
	"github.com/Manu343726/mcugen/pkg/device/layout"
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

// Attribute correcting the address of registers described at a placeholder address.
// It is inherited from the closest ancestor defining it.
const MagicOffsetAttr = "magicoffset"

// Returns the absolute address of a member resolved relative to the peripheral base
func Absolute(instance *model.Instance, member *layout.ResolvedMember) (uint64, error) {
	base, err := instance.BaseAddress()
	if err != nil {
		return 0, err
	}

	return base + member.Offset, nil
}

// Returns the magic offset applying to a flat register node, 0 if none
func MagicOffset(node attrs.Node) (int64, error) {
	value, ok := attrs.Inherited(node, MagicOffsetAttr)
	if !ok {
		return 0, nil
	}

	offset, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64)
	if err != nil {
		return 0, utils.MakeError(model.ErrMalformedDescription, "%v: bad %v '%v'", attrs.Path(node), MagicOffsetAttr, value)
	}

	return offset, nil
}

// Returns the address of a flat register: its database address plus the inherited magic offset
func FlatAddress(node attrs.Node, addrAttr string) (uint64, error) {
	base, err := attrs.RequireUint64(node, addrAttr)
	if err != nil {
		return 0, err
	}

	offset, err := MagicOffset(node)
	if err != nil {
		return 0, err
	}

	return uint64(int64(base) + offset), nil
}
