// Package arch selects the architecture specific rules of a device: register model,
// address segments and floating point unit naming.
package arch

import (
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

type Architecture uint

const (
	// Flat SFR/DCR register list, kseg virtual segments (MIPS)
	Architecture_MIPSFlat Architecture = iota

	// Nested peripheral/register-group/bitfield hierarchy (ARM)
	Architecture_ARMHierarchical

	TOTAL_ARCHITECTURES
)

func (a Architecture) String() string {
	switch a {
	case Architecture_MIPSFlat:
		return "mips"
	case Architecture_ARMHierarchical:
		return "arm"
	}

	panic("unreachable")
}

// Returns true for the flat register model
func (a Architecture) IsFlat() bool {
	return a == Architecture_MIPSFlat
}

// Returns true for the nested register-group model
func (a Architecture) IsHierarchical() bool {
	return a == Architecture_ARMHierarchical
}

// Architecture related features of one device
type Flags struct {
	Architecture Architecture
	CPU          string
	HasFPU       bool
	HasL1Cache   bool

	// Boot flash size in bytes (MIPS only)
	BootSize uint64

	// Number of interrupt vectors
	VectorCount int
}

var mipsCores = []string{"mips32r2", "mips32r5", "m4k", "m14k", "m14kec", "microaptiv", "m5150"}

// Selects the architecture of a device from its family name and CPU core
func FromFamily(family, cpu string) (Architecture, error) {
	family = strings.ToUpper(strings.TrimSpace(family))
	cpu = strings.ToLower(strings.TrimSpace(cpu))

	switch {
	case strings.HasPrefix(family, "PIC32M"):
		return Architecture_MIPSFlat, nil
	case strings.HasPrefix(family, "PIC32C"), strings.HasPrefix(family, "SAM"), strings.HasPrefix(family, "ATSAM"):
		return Architecture_ARMHierarchical, nil
	case strings.HasPrefix(cpu, "cortex-"), strings.HasPrefix(cpu, "arm"):
		return Architecture_ARMHierarchical, nil
	}

	for _, core := range mipsCores {
		if cpu == core {
			return Architecture_MIPSFlat, nil
		}
	}

	return 0, utils.MakeError(model.ErrUnsupportedArchitecture, "family '%v', cpu '%v'", family, cpu)
}
