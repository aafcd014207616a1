package atdf

import (
	"github.com/Manu343726/mcugen/pkg/device/attrs"
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

// Documented field values of a module, by value group name
type valueGroups map[string][]model.Option

func readValueGroups(module attrs.Node) (valueGroups, error) {
	result := make(valueGroups)

	for _, group := range attrs.Find(module, "value-group") {
		name, err := attrs.RequireString(group, "name")
		if err != nil {
			return nil, err
		}

		for _, value := range attrs.Find(group, "value") {
			option := model.Option{
				Name:        attrs.String(value, "name", ""),
				Description: attrs.String(value, "caption", ""),
			}

			if option.Value, err = attrs.RequireUint64(value, "value"); err != nil {
				return nil, err
			}

			result[name] = append(result[name], option)
		}
	}

	return result, nil
}

func readGroup(peripheral string, node attrs.Node, values valueGroups) (*model.RegisterGroup, error) {
	name, err := attrs.RequireString(node, "name")
	if err != nil {
		return nil, err
	}

	group := &model.RegisterGroup{
		Name:       name,
		Peripheral: peripheral,
		Caption:    attrs.String(node, "caption", ""),
		Alignment:  attrs.Uint64(node, "alignment", 0),
		Size:       attrs.Uint64(node, "size", 0),
	}

	for _, mode := range attrs.Find(node, "mode") {
		group.Modes = append(group.Modes, attrs.String(mode, "name", ""))
	}

	for _, child := range attrs.Find(node, "") {
		var member *model.Register

		switch child.Tag() {
		case "register":
			member, err = readRegister(peripheral, child, values)
		case "register-group":
			member, err = readAlias(peripheral, child)
		default:
			continue
		}

		if err != nil {
			return nil, utils.MakeError(err, "in register group '%v'", name)
		}

		group.Members = append(group.Members, *member)
	}

	return group, nil
}

// Reads a nested register group reference, which stands for a whole sub-group
func readAlias(peripheral string, node attrs.Node) (*model.Register, error) {
	name, err := attrs.RequireString(node, "name")
	if err != nil {
		return nil, err
	}

	return model.NewRegister(model.Register{
		Name:       name,
		Peripheral: peripheral,
		Caption:    attrs.String(node, "caption", ""),
		Offset:     attrs.Uint64(node, "offset", 0),
		Size:       attrs.Uint64(node, "size", 0),
		Count:      attrs.Int(node, "count", 1),
		GroupAlias: attrs.String(node, "name-in-module", name),
		GroupModes: nameList(node, "modes"),
	})
}

func readRegister(peripheral string, node attrs.Node, values valueGroups) (*model.Register, error) {
	name, err := attrs.RequireString(node, "name")
	if err != nil {
		return nil, err
	}

	offset, err := attrs.RequireUint64(node, "offset")
	if err != nil {
		return nil, err
	}

	access, err := model.ParseAccess(attrs.String(node, "rw", ""))
	if err != nil {
		return nil, utils.MakeError(err, "%v", attrs.Path(node))
	}

	register := model.Register{
		Name:       name,
		Peripheral: peripheral,
		Caption:    attrs.String(node, "caption", ""),
		Offset:     offset,
		Size:       attrs.Uint64(node, "size", 4),
		Count:      attrs.Int(node, "count", 1),
		Access:     access,
		ResetValue: attrs.Uint64(node, "initval", 0),
		GroupModes: nameList(node, "modes"),
	}

	modes := map[string]int{}
	addToMode := func(mode string, field model.Bitfield) {
		index, known := modes[mode]

		if !known {
			index = len(register.Modes)
			modes[mode] = index
			register.Modes = append(register.Modes, model.Mode{Name: mode})
		}

		register.Modes[index].Fields = append(register.Modes[index].Fields, field)
	}

	for _, bitfieldNode := range attrs.Find(node, "bitfield") {
		field, err := readBitfield(bitfieldNode, values)
		if err != nil {
			return nil, err
		}

		fieldModes := nameList(bitfieldNode, "modes")

		if len(fieldModes) == 0 {
			fieldModes = []string{model.DefaultMode}
		}

		for _, mode := range fieldModes {
			addToMode(mode, *field)
		}
	}

	result, err := model.NewRegister(register)
	if err != nil {
		return nil, utils.MakeError(err, "%v", attrs.Path(node))
	}

	return result, nil
}

func readBitfield(node attrs.Node, values valueGroups) (*model.Bitfield, error) {
	name, err := attrs.RequireString(node, "name")
	if err != nil {
		return nil, err
	}

	mask, err := attrs.RequireUint64(node, "mask")
	if err != nil {
		return nil, err
	}

	position, width, err := MaskRange(mask)
	if err != nil {
		return nil, utils.MakeError(err, "%v", attrs.Path(node))
	}

	field := &model.Bitfield{
		Name:        name,
		Position:    position,
		Width:       width,
		Description: attrs.String(node, "caption", ""),
	}

	if valueGroup, hasValues := node.Attr("values"); hasValues {
		options, known := values[valueGroup]
		if !known {
			return nil, utils.MakeError(model.ErrMalformedDescription, "%v: unknown value group '%v'", attrs.Path(node), valueGroup)
		}

		field.Options = options
	}

	return field, nil
}
