package model

import (
	"fmt"

	"github.com/Manu343726/mcugen/pkg/utils"
)

// A named value a bitfield can take
type Option struct {
	Name        string
	Value       uint64
	Description string
}

// A named bit range within a register
type Bitfield struct {
	// Field name
	Name string

	// Index of the least significant bit of the field
	Position int

	// Number of bits of the field, at least one
	Width int

	// Field description (for documentation)
	Description string

	// Documented values of the field, in declaration order
	Options []Option
}

// Returns the mask of the field bits within the register
func (f *Bitfield) Mask() uint64 {
	return utils.AllOnes[uint64](f.Width) << f.Position
}

// The first bit position past the field
func (f *Bitfield) End() int {
	return f.Position + f.Width
}

// Extracts the value of the field from a whole register value
func (f *Bitfield) Extract(registerValue uint64) uint64 {
	return utils.CreateBitView(&registerValue).Read(f.Position, f.Width)
}

func (f *Bitfield) String() string {
	if f.Width == 1 {
		return fmt.Sprintf("%v[%v]", f.Name, f.Position)
	}

	return fmt.Sprintf("%v[%v:%v]", f.Name, f.End()-1, f.Position)
}
