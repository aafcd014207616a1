// Package layout derives the packed bit layout of registers and the byte layout of
// register groups, the way a C compiler lays out bitfield structs and nested unions.
package layout

import (
	"fmt"

	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

// One run of bits of a register layout: either a declared field or padding
type LayoutEntry struct {
	// Field name, empty for padding
	Name string

	// First bit of the run
	Position int

	// Number of bits of the run
	Width int

	// True if the run is not covered by any declared field
	Padding bool

	// The declared field, nil for padding
	Field *model.Bitfield
}

// The first bit position past the entry
func (e *LayoutEntry) End() int {
	return e.Position + e.Width
}

func (e LayoutEntry) String() string {
	if e.Padding {
		return fmt.Sprintf("pad(%v)", e.Width)
	}

	return fmt.Sprintf("%v(%v)", e.Name, e.Width)
}

func padding(position, width int) LayoutEntry {
	return LayoutEntry{
		Position: position,
		Width:    width,
		Padding:  true,
	}
}

// Computes the gap-filled layout of a register of totalWidth bits given its fields
// sorted by position. The widths of the returned entries always add up to totalWidth.
func BitLayout(fields []model.Bitfield, totalWidth int) ([]LayoutEntry, error) {
	if totalWidth <= 0 {
		return nil, utils.MakeError(model.ErrInvalidLayout, "register width must be positive, got %v", totalWidth)
	}

	result := make([]LayoutEntry, 0, 2*len(fields)+1)
	next := 0

	for i := range fields {
		field := &fields[i]

		if field.Width < 1 {
			return nil, utils.MakeError(model.ErrInvalidLayout, "field %v has width %v", field.Name, field.Width)
		}

		if field.Position < next {
			return nil, utils.MakeError(model.ErrInvalidLayout, "field %v starts at bit %v but bit %v is already taken", field.Name, field.Position, next)
		}

		if field.End() > totalWidth {
			return nil, utils.MakeError(model.ErrInvalidLayout, "field %v does not fit in %v bits", field, totalWidth)
		}

		if field.Position > next {
			result = append(result, padding(next, field.Position-next))
		}

		result = append(result, LayoutEntry{
			Name:     field.Name,
			Position: field.Position,
			Width:    field.Width,
			Field:    field,
		})

		next = field.End()
	}

	if next < totalWidth {
		result = append(result, padding(next, totalWidth-next))
	}

	return result, nil
}
