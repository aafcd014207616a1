package macros

import (
	"fmt"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/arch"
	"github.com/Manu343726/mcugen/pkg/device/layout"
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

// Name of the member synthesized to access a whole register of a mode union
const WholeWordMember = "w"

// Macros of one field or vecfield
type FieldMacros struct {
	// Field name, or vecfield base name
	Name string

	// First bit
	PositionValue int

	// Number of bits
	Width int

	// Mask of the field bits within the register
	MaskValue uint64

	Position Macro
	Mask     Macro

	// Function-like macro placing a value into the field. Hierarchical targets only
	Value *Macro

	// Field width macro. Flat targets only
	Length *Macro

	// Raw option values first, then the same values shifted into position
	Options []Macro
}

// Returns all macros in emission order
func (f *FieldMacros) All() []Macro {
	result := []Macro{f.Position, f.Mask}

	if f.Value != nil {
		result = append(result, *f.Value)
	}

	if f.Length != nil {
		result = append(result, *f.Length)
	}

	return append(result, f.Options...)
}

// Macros of one mode of a register
type ModeMacros struct {
	Mode string

	// Prefix shared by all macros of the mode
	Prefix string

	Fields    []FieldMacros
	VecFields []FieldMacros
}

// Returns true if the mode yields no macro
func (m *ModeMacros) Empty() bool {
	return len(m.Fields) == 0 && len(m.VecFields) == 0
}

type RegisterMacros struct {
	Register string

	// Register level macros (offset, reset value, mask). Hierarchical targets only
	Common []Macro

	Modes []ModeMacros

	// True if each mode gets its own layout within a union
	Union bool

	// Member giving access to the whole register within the union
	WholeWord string

	// True if WholeWord does not match any declared field
	WholeWordSynthesized bool
}

// Derives macros following the naming conventions of the target architecture
type Deriver struct {
	Arch arch.Architecture
}

func NewDeriver(architecture arch.Architecture) *Deriver {
	return &Deriver{Arch: architecture}
}

// Returns the naming scope of the registers declared in a group: the C type name of the
// group, followed by the group mode for registers of a mode split group. peripheral is used
// when the group does not name its owner.
func Scope(peripheral string, group *model.RegisterGroup, groupMode string) string {
	owner := group.Peripheral
	if owner == "" {
		owner = peripheral
	}

	scope := (&model.RegisterGroup{Name: group.Name, Peripheral: owner}).TypeName()

	if groupMode != "" {
		scope += "_" + utils.CIdentifier(groupMode)
	}

	return scope
}

// Returns the prefix of the macros of a register mode, scoped by the register peripheral
func (d *Deriver) Prefix(register *model.Register, mode string) string {
	return d.ScopedPrefix(register.Peripheral, register, mode)
}

// Returns the prefix of the macros of a register mode. The scope is not repeated if the
// register name already starts with it. The mode name is only part of the prefix for non
// default modes of registers with more than one mode. Flat targets ignore the scope.
func (d *Deriver) ScopedPrefix(scope string, register *model.Register, mode string) string {
	var parts []string

	if d.Arch.IsFlat() {
		parts = append(parts, "")
	} else if scope != "" && !strings.HasPrefix(register.Name, scope+"_") {
		parts = append(parts, scope)
	}

	parts = append(parts, register.Name)

	if register.HasModes() && mode != model.DefaultMode {
		parts = append(parts, mode)
	}

	return utils.CIdentifier(strings.Join(parts, "_"))
}

func (d *Deriver) field(prefix, name string, position, width int, options []model.Option, storageBits int) FieldMacros {
	base := prefix + "_" + utils.CIdentifier(name)
	mask := utils.AllOnes[uint64](width) << position

	result := FieldMacros{
		Name:          name,
		PositionValue: position,
		Width:         width,
		MaskValue:     mask,
	}

	if d.Arch.IsFlat() {
		result.Position = Macro{Name: base + "_POSITION", Value: fmt.Sprint(position)}
		result.Mask = Macro{Name: base + "_MASK", Value: MaskLiteral(mask, storageBits)}
		result.Length = &Macro{Name: base + "_LENGTH", Value: fmt.Sprint(width)}
	} else {
		result.Position = Macro{Name: base + "_Pos", Value: fmt.Sprint(position)}
		result.Mask = Macro{Name: base + "_Msk", Value: MaskLiteral(mask, storageBits)}
		result.Value = &Macro{
			Name:   base,
			Params: []string{"value"},
			Value:  fmt.Sprintf("(%v & ((value) << %v))", result.Mask.Name, result.Position.Name),
		}
	}

	// Shifted forms refer to the value macros, so all values go first
	shifted := make([]Macro, 0, len(options))

	for _, option := range options {
		optionBase := base + "_" + utils.CIdentifier(option.Name)
		value := Macro{Name: optionBase + "_Val", Value: ValueLiteral(option.Value, storageBits)}

		result.Options = append(result.Options, value)
		shifted = append(shifted, Macro{
			Name:  optionBase,
			Value: fmt.Sprintf("(%v << %v)", value.Name, result.Position.Name),
		})
	}

	result.Options = append(result.Options, shifted...)

	return result
}

// Returns the macros of a declared bitfield
func (d *Deriver) Field(prefix string, field *model.Bitfield, storageBits int) FieldMacros {
	return d.field(prefix, field.Name, field.Position, field.Width, field.Options, storageBits)
}

// Returns the macros of a vecfield
func (d *Deriver) VecField(prefix string, vecfield *layout.VecField, storageBits int) FieldMacros {
	return d.field(prefix, vecfield.BaseName, vecfield.Position, vecfield.Width, nil, storageBits)
}

// Derives the macros of one packed mode of a register. Vecfields get macros only when
// they coalesce more than one bit and do not clash with a declared field.
func (d *Deriver) Mode(register *model.Register, packed *layout.PackedMode) ModeMacros {
	return d.mode(register.Peripheral, register, packed)
}

func (d *Deriver) mode(scope string, register *model.Register, packed *layout.PackedMode) ModeMacros {
	storageBits := register.Bits()
	result := ModeMacros{
		Mode:   packed.Mode.Name,
		Prefix: d.ScopedPrefix(scope, register, packed.Mode.Name),
	}

	declared := make(map[string]bool, len(packed.Mode.Fields))

	for i := range packed.Mode.Fields {
		field := &packed.Mode.Fields[i]
		declared[field.Name] = true
		result.Fields = append(result.Fields, d.Field(result.Prefix, field, storageBits))
	}

	for i := range packed.VecFields {
		vecfield := &packed.VecFields[i]

		if vecfield.Width > 1 && !declared[vecfield.BaseName] {
			result.VecFields = append(result.VecFields, d.VecField(result.Prefix, vecfield, storageBits))
		}
	}

	return result
}

func (d *Deriver) common(scope string, register *model.Register, packed []layout.PackedMode) []Macro {
	if d.Arch.IsFlat() {
		return nil
	}

	storageBits := register.Bits()
	prefix := d.ScopedPrefix(scope, register, model.DefaultMode)
	mask := uint64(0)

	for _, mode := range packed {
		for i := range mode.Mode.Fields {
			mask |= mode.Mode.Fields[i].Mask()
		}
	}

	return []Macro{
		{Name: prefix + "_OFFSET", Value: fmt.Sprintf("(0x%X)", register.Offset)},
		{Name: prefix + "_RESETVALUE", Value: MaskLiteral(register.ResetValue, storageBits)},
		{Name: prefix + "_MASK", Value: MaskLiteral(mask, storageBits)},
	}
}

// Derives all macros of a register given its packed modes. A register with more than one
// mode is laid out as a union of its modes if any of them yields macros. The union gets
// a whole register member: the first mode field spanning all bits, or a synthesized one.
func (d *Deriver) Register(register *model.Register, packed []layout.PackedMode) RegisterMacros {
	return d.ScopedRegister(register.Peripheral, register, packed)
}

// Derives all macros of a register named within the given scope (see Scope)
func (d *Deriver) ScopedRegister(scope string, register *model.Register, packed []layout.PackedMode) RegisterMacros {
	result := RegisterMacros{
		Register: register.Name,
		Common:   d.common(scope, register, packed),
		Modes:    make([]ModeMacros, len(packed)),
	}

	anyMacros := false

	for i := range packed {
		result.Modes[i] = d.mode(scope, register, &packed[i])
		anyMacros = anyMacros || !result.Modes[i].Empty()
	}

	result.Union = len(packed) > 1 && anyMacros

	if !result.Union {
		return result
	}

	for i := range packed {
		if field, ok := packed[i].WholeWord(register.Bits()); ok {
			result.WholeWord = field.Name
			return result
		}
	}

	result.WholeWord = WholeWordMember
	result.WholeWordSynthesized = true

	return result
}
