// Package macros derives the symbolic C preprocessor macros describing the fields of
// packed registers.
package macros

import (
	"fmt"
	"strings"

	"github.com/Manu343726/mcugen/pkg/utils"
)

// A C preprocessor macro. Function-like macros have a non nil parameter list.
type Macro struct {
	Name   string
	Params []string
	Value  string
}

func (m Macro) IsFunction() bool {
	return m.Params != nil
}

// Returns the #define line of the macro
func (m Macro) Define() string {
	if m.IsFunction() {
		return fmt.Sprintf("#define %v(%v) %v", m.Name, strings.Join(m.Params, ", "), m.Value)
	}

	return fmt.Sprintf("#define %v %v", m.Name, m.Value)
}

func (m Macro) String() string {
	return m.Define()
}

// Unsigned literal suffix for a storage of the given width in bits
func Suffix(storageBits int) string {
	switch {
	case storageBits > 32:
		return "ULL"
	case storageBits > 16:
		return "UL"
	}

	return "U"
}

// Renders a mask as a fixed width hex literal sized to the storage
func MaskLiteral(mask uint64, storageBits int) string {
	return utils.FormatUintHex(mask, max(storageBits/4, 1)) + Suffix(storageBits)
}

// Renders a value as a minimal hex literal typed after the storage
func ValueLiteral(value uint64, storageBits int) string {
	return fmt.Sprintf("0x%X%v", value, Suffix(storageBits))
}
