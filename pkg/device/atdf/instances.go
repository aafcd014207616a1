package atdf

import (
	"github.com/Manu343726/mcugen/pkg/device/attrs"
	"github.com/Manu343726/mcugen/pkg/device/model"
)

func readInstance(node attrs.Node) (*model.Instance, error) {
	name, err := attrs.RequireString(node, "name")
	if err != nil {
		return nil, err
	}

	instance := &model.Instance{
		Name: name,
		ID:   attrs.Int(node, "id", -1),
	}

	for _, ref := range attrs.Find(node, "register-group") {
		refName, err := attrs.RequireString(ref, "name")
		if err != nil {
			return nil, err
		}

		offset, err := attrs.RequireUint64(ref, "offset")
		if err != nil {
			return nil, err
		}

		instance.RegisterGroups = append(instance.RegisterGroups, model.GroupRef{
			Name:         refName,
			NameInModule: attrs.String(ref, "name-in-module", refName),
			Offset:       offset,
		})
	}

	if parameters, ok := attrs.FindFirst(node, "parameters"); ok {
		for _, param := range attrs.Find(parameters, "param") {
			instance.Parameters = append(instance.Parameters, model.Parameter{
				Name:    attrs.String(param, "name", ""),
				Value:   attrs.String(param, "value", ""),
				Caption: attrs.String(param, "caption", ""),
			})
		}
	}

	if signals, ok := attrs.FindFirst(node, "signals"); ok {
		for _, signal := range attrs.Find(signals, "signal") {
			instance.Signals = append(instance.Signals, model.Signal{
				Pad:      attrs.String(signal, "pad", ""),
				Function: attrs.String(signal, "function", ""),
				Group:    attrs.String(signal, "group", ""),
				Index:    attrs.String(signal, "index", ""),
			})
		}
	}

	return instance, nil
}
