package layout

import (
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

// The packed views of one mode of a register
type PackedMode struct {
	Mode      *model.Mode
	Layout    []LayoutEntry
	VecFields []VecField
}

// Returns true if the mode declares no fields at all
func (m *PackedMode) Empty() bool {
	return len(m.Mode.Fields) == 0
}

// Returns the field spanning the whole register, if any
func (m *PackedMode) WholeWord(registerBits int) (*model.Bitfield, bool) {
	for i := range m.Mode.Fields {
		field := &m.Mode.Fields[i]

		if field.Position == 0 && field.Width == registerBits {
			return field, true
		}
	}

	return nil, false
}

// Packs every mode of a register. Group aliases have nothing to pack.
func (p *Packer) Pack(register *model.Register) ([]PackedMode, error) {
	if register.IsGroupAlias() {
		return nil, nil
	}

	result := make([]PackedMode, len(register.Modes))

	for i := range register.Modes {
		mode := &register.Modes[i]

		bitLayout, err := BitLayout(mode.Fields, register.Bits())
		if err != nil {
			return nil, utils.MakeError(err, "register %v, mode %v", register.Name, mode.Name)
		}

		result[i] = PackedMode{
			Mode:      mode,
			Layout:    bitLayout,
			VecFields: p.VecFields(register.Name, mode.Name, mode.Fields),
		}
	}

	return result, nil
}
