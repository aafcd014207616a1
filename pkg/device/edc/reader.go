// Package edc reads flat device descriptions: special function and configuration
// registers listed at absolute addresses, each with one or more sequential field lists.
package edc

import (
	"log/slog"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/address"
	"github.com/Manu343726/mcugen/pkg/device/attrs"
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
	"github.com/samber/lo"
)

const (
	// Owner of all configuration registers
	ConfigPeripheral = "CONFIG"

	// Owner of the special function registers not claimed by any peripheral
	CorePeripheral = "SFR"
)

// Register definitions of the description, with the node kinds listing their fields
var registerKinds = []struct {
	definition string
	modeList   string
	mode       string
	field      string
}{
	{"SFRDef", "SFRModeList", "SFRMode", "SFRFieldDef"},
	{"DCRDef", "DCRModeList", "DCRMode", "DCRFieldDef"},
}

type Reader struct {
	Logger *slog.Logger
}

func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}

	return &Reader{Logger: logger}
}

// Returns the peripheral a register definition belongs to
func peripheralOf(node attrs.Node, isConfig bool) string {
	if isConfig {
		return ConfigPeripheral
	}

	for _, attr := range []string{"memberofperipheral", "baseofperipheral"} {
		if names := strings.Fields(attrs.String(node, attr, "")); len(names) > 0 {
			return names[0]
		}
	}

	return CorePeripheral
}

// Reads all register definitions of a description and groups them by peripheral. Each
// peripheral gets a root register group named after it, with members at their physical
// addresses, and a single instance at base address 0.
func (r *Reader) Peripherals(root attrs.Node) ([]*model.Peripheral, error) {
	byName := map[string]*model.Peripheral{}
	var order []string

	for kindIndex, kind := range registerKinds {
		for _, node := range attrs.FindDeep(root, kind.definition) {
			register, err := r.readRegister(node, kindIndex)
			if err != nil {
				return nil, err
			}

			peripheral, known := byName[register.Peripheral]
			if !known {
				peripheral = newPeripheral(register.Peripheral)
				byName[register.Peripheral] = peripheral
				order = append(order, register.Peripheral)
			}

			peripheral.Groups[0].Members = append(peripheral.Groups[0].Members, *register)
		}
	}

	return lo.Map(order, func(name string, _ int) *model.Peripheral {
		peripheral := byName[name]
		r.Logger.Debug("read flat peripheral", "peripheral", name, "registers", len(peripheral.Groups[0].Members))
		return peripheral
	}), nil
}

func newPeripheral(name string) *model.Peripheral {
	return &model.Peripheral{
		Name: name,
		Groups: []model.RegisterGroup{{
			Name:       name,
			Peripheral: name,
		}},
		Instances: []model.Instance{{
			Name: name,
			ID:   -1,
			RegisterGroups: []model.GroupRef{{
				Name:         name,
				NameInModule: name,
			}},
		}},
	}
}

func (r *Reader) readRegister(node attrs.Node, kindIndex int) (*model.Register, error) {
	kind := registerKinds[kindIndex]

	name, err := attrs.RequireString(node, "cname")
	if err != nil {
		return nil, err
	}

	addr, err := address.FlatAddress(node, "_addr")
	if err != nil {
		return nil, err
	}

	widthBits := attrs.Int(node, "nzwidth", 32)

	register := model.Register{
		Name:       name,
		Peripheral: peripheralOf(node, kind.definition == "DCRDef"),
		Caption:    attrs.String(node, "desc", ""),
		Offset:     address.Physical(addr),
		Size:       utils.StorageBytes(widthBits),
		Access:     model.AccessReadWrite,
		ResetValue: attrs.Uint64(node, "mclr", attrs.Uint64(node, "por", 0)),
	}

	if modeList, hasModes := attrs.FindFirst(node, kind.modeList); hasModes {
		for i, modeNode := range attrs.Find(modeList, kind.mode) {
			mode, err := readMode(modeNode, kind.field, widthBits)
			if err != nil {
				return nil, err
			}

			if i == 0 {
				mode.Name = model.DefaultMode
			}

			register.Modes = append(register.Modes, *mode)
		}
	}

	result, err := model.NewRegister(register)
	if err != nil {
		return nil, utils.MakeError(err, "%v", attrs.Path(node))
	}

	return result, nil
}

// Reads a field list. Fields are laid out one after the other from bit 0, AdjustPoint
// nodes skip unused bits.
func readMode(node attrs.Node, fieldTag string, widthBits int) (*model.Mode, error) {
	mode := &model.Mode{
		Name: utils.CIdentifier(attrs.String(node, "id", "")),
	}

	position := 0

	for _, child := range node.Children() {
		switch child.Tag() {
		case "AdjustPoint":
			offset, err := attrs.RequireInt(child, "offset")
			if err != nil {
				return nil, err
			}

			position += offset
		case fieldTag:
			name, err := attrs.RequireString(child, "cname")
			if err != nil {
				return nil, err
			}

			width, err := attrs.RequireInt(child, "nzwidth")
			if err != nil {
				return nil, err
			}

			if width < 1 || position+width > widthBits {
				return nil, utils.MakeError(model.ErrMalformedDescription, "%v: field of %v bits at bit %v does not fit a %v bits register", attrs.Path(child), width, position, widthBits)
			}

			mode.Fields = append(mode.Fields, model.Bitfield{
				Name:        name,
				Position:    position,
				Width:       width,
				Description: attrs.String(child, "desc", ""),
			})

			position += width
		}
	}

	return mode, nil
}
