package layout

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/samber/lo"
)

// A run of contiguous single-bit fields sharing a numerically suffixed name (CC0, CC1, ...)
// coalesced into one multi-bit field
type VecField struct {
	// Common name of the coalesced fields, suffix stripped
	BaseName string

	// First bit of the run
	Position int

	// Number of coalesced bits
	Width int

	// Description of the first field with digits masked
	Description string

	// Names of the coalesced fields, in position order
	Fields []string
}

// The first bit position past the vecfield
func (v *VecField) End() int {
	return v.Position + v.Width
}

func (v VecField) String() string {
	return fmt.Sprintf("%v[%v:%v]", v.BaseName, v.End()-1, v.Position)
}

// Strips the trailing decimal digits of a field name. Names made only of digits are kept.
func StripSuffix(name string) string {
	stripped := strings.TrimRight(name, "0123456789")

	if stripped == "" {
		return name
	}

	return stripped
}

// Replaces every decimal digit of a description with 'x'
func MaskDigits(description string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return 'x'
		}

		return r
	}, description)
}

// Returns true if the field continues the vecfield: same base name, one bit wide and
// starting right where the vecfield ends
func (v *VecField) continuedBy(field *model.Bitfield) bool {
	return StripSuffix(field.Name) == v.BaseName && field.Width == 1 && field.Position == v.End()
}

// Returns true if the field can open a new vecfield: one bit wide with a numeric suffix
func startsVecField(field *model.Bitfield) bool {
	return field.Width == 1 && StripSuffix(field.Name) != field.Name
}

func openVecField(field *model.Bitfield) *VecField {
	return &VecField{
		BaseName:    StripSuffix(field.Name),
		Position:    field.Position,
		Width:       1,
		Description: MaskDigits(field.Description),
		Fields:      []string{field.Name},
	}
}

// Computes the packed views of registers
type Packer struct {
	Logger *slog.Logger
}

// Creates a packer reporting description anomalies to the given logger (slog.Default() if nil)
func NewPacker(logger *slog.Logger) *Packer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Packer{Logger: logger}
}

// Coalesces runs of numerically suffixed single-bit fields. Fields must be sorted by position.
// register and mode only label diagnostics.
func (p *Packer) VecFields(register, mode string, fields []model.Bitfield) []VecField {
	var result []VecField
	var open *VecField

	closeOpen := func() {
		if open != nil {
			result = append(result, *open)
			open = nil
		}
	}

	for i := range fields {
		field := &fields[i]

		switch {
		case open != nil && open.continuedBy(field):
			open.Width++
			open.Fields = append(open.Fields, field.Name)
		case startsVecField(field):
			closeOpen()
			open = openVecField(field)
		default:
			closeOpen()
		}
	}

	closeOpen()

	return p.dropDuplicates(register, mode, result)
}

// Removes every vecfield whose base name appears more than once, all occurrences included
func (p *Packer) dropDuplicates(register, mode string, vecfields []VecField) []VecField {
	counts := lo.GroupBy(vecfields, func(v VecField) string { return v.BaseName })

	return lo.Filter(vecfields, func(v VecField, _ int) bool {
		if occurrences := counts[v.BaseName]; len(occurrences) > 1 {
			if occurrences[0].Position == v.Position {
				p.logger().Warn(model.ErrDuplicateVecfield.Error(),
					slog.String("register", register),
					slog.String("mode", mode),
					slog.String("vecfield", v.BaseName),
					slog.Int("occurrences", len(occurrences)))
			}

			return false
		}

		return true
	})
}

func (p *Packer) logger() *slog.Logger {
	if p == nil || p.Logger == nil {
		return slog.Default()
	}

	return p.Logger
}
