package model

import (
	"fmt"
	"strings"

	"github.com/Manu343726/mcugen/pkg/utils"
	"golang.org/x/exp/slices"
)

// Register access rights bitmask
type Access uint

const (
	AccessRead      Access = 1
	AccessWrite     Access = 2
	AccessReadWrite Access = AccessRead | AccessWrite
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "R"
	case AccessWrite:
		return "W"
	case AccessReadWrite:
		return "RW"
	}

	return "-"
}

// Parses the access rights of a register description. An empty string means read-write.
func ParseAccess(access string) (Access, error) {
	switch strings.ToUpper(strings.TrimSpace(access)) {
	case "", "RW", "R/W", "READ-WRITE":
		return AccessReadWrite, nil
	case "R", "READ-ONLY":
		return AccessRead, nil
	case "W", "WRITE-ONLY":
		return AccessWrite, nil
	}

	return 0, utils.MakeError(ErrMalformedDescription, "unknown access rights '%v'", access)
}

// Name of the mode every register has
const DefaultMode = "DEFAULT"

// One interpretation of the bits of a register
type Mode struct {
	Name   string
	Fields []Bitfield
}

type Register struct {
	// Register name
	Name string

	// Name of the peripheral owning the register
	Peripheral string

	// Register description (for documentation)
	Caption string

	// Byte offset relative to the containing group
	Offset uint64

	// Size in bytes. For group aliases an explicit size (or 0) used as repeat stride
	Size uint64

	// Number of consecutive copies, 1 for plain registers
	Count int

	Access     Access
	ResetValue uint64

	// Name of the register group this member stands for, empty for real registers
	GroupAlias string

	// Group modes this member belongs to. Empty means all of them
	GroupModes []string

	// Bitfield lists, one per mode. The first one is always the DEFAULT mode
	Modes []Mode
}

// Returns true if the register is a placeholder for a nested register group
func (r *Register) IsGroupAlias() bool {
	return r.GroupAlias != ""
}

// Returns the width of the register in bits
func (r *Register) Bits() int {
	return utils.Bits(int(r.Size))
}

// Returns the DEFAULT mode
func (r *Register) Default() *Mode {
	return &r.Modes[0]
}

// Returns a mode by name
func (r *Register) Mode(name string) (*Mode, error) {
	for i := range r.Modes {
		if r.Modes[i].Name == name {
			return &r.Modes[i], nil
		}
	}

	return nil, utils.MakeError(ErrMalformedDescription, "register '%v' has no mode '%v'", r.Name, name)
}

// Returns true if the register has more than one mode
func (r *Register) HasModes() bool {
	return len(r.Modes) > 1
}

// Returns true if the member belongs to the given group mode
func (r *Register) InGroupMode(mode string) bool {
	return len(r.GroupModes) == 0 || slices.Contains(r.GroupModes, mode)
}

// Returns the size in bytes spanned by all copies of the register
func (r *Register) Span() uint64 {
	return r.Size * uint64(max(r.Count, 1))
}

func (r *Register) String() string {
	if r.IsGroupAlias() {
		return fmt.Sprintf("%v -> %v @ 0x%X", r.Name, r.GroupAlias, r.Offset)
	}

	return fmt.Sprintf("%v @ 0x%X (%v bits, %v)", r.Name, r.Offset, r.Bits(), r.Access)
}

// Validates and normalizes a register built from a description:
//   - Count defaults to 1
//   - The DEFAULT mode is always present and first
//   - Each mode's fields are sorted by position, must not overlap and must fit in the register
//   - Group aliases own no bitfields
func NewRegister(r Register) (*Register, error) {
	if r.Count <= 0 {
		r.Count = 1
	}

	if r.IsGroupAlias() {
		for _, mode := range r.Modes {
			if len(mode.Fields) > 0 {
				return nil, utils.MakeError(ErrMalformedDescription, "register group alias '%v' cannot own bitfields", r.Name)
			}
		}

		r.Modes = []Mode{{Name: DefaultMode}}
		return &r, nil
	}

	switch r.Size {
	case 1, 2, 4, 8:
	default:
		return nil, utils.MakeError(ErrMalformedDescription, "register '%v' has unsupported size %v bytes", r.Name, r.Size)
	}

	defaultIndex := slices.IndexFunc(r.Modes, func(m Mode) bool { return m.Name == DefaultMode })

	switch {
	case defaultIndex < 0:
		r.Modes = append([]Mode{{Name: DefaultMode}}, r.Modes...)
	case defaultIndex > 0:
		defaultMode := r.Modes[defaultIndex]
		r.Modes = append([]Mode{defaultMode}, slices.Delete(slices.Clone(r.Modes), defaultIndex, defaultIndex+1)...)
	}

	for i := range r.Modes {
		mode := &r.Modes[i]
		mode.Fields = slices.Clone(mode.Fields)

		slices.SortStableFunc(mode.Fields, func(a, b Bitfield) int {
			return a.Position - b.Position
		})

		next := 0
		for _, field := range mode.Fields {
			if field.Width < 1 {
				return nil, utils.MakeError(ErrMalformedDescription, "bitfield %v.%v has width %v", r.Name, field.Name, field.Width)
			}

			if field.Position < next {
				return nil, utils.MakeError(ErrMalformedDescription, "bitfield %v.%v overlaps previous field in mode %v", r.Name, field.Name, mode.Name)
			}

			if field.End() > r.Bits() {
				return nil, utils.MakeError(ErrMalformedDescription, "bitfield %v.%v exceeds the %v bits of the register", r.Name, &field, r.Bits())
			}

			next = field.End()
		}
	}

	return &r, nil
}
