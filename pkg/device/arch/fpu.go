package arch

import (
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

// Revision of the device feature mapping. The ARMv7A and ARMv8A FPU names changed
// between revisions and both are still in use.
type Revision int

const (
	Revision1 Revision = 1
	Revision2 Revision = 2

	LatestRevision = Revision2
)

// Returns the compiler FPU name of a core, or an empty string when no -mfpu option applies
func FPUName(cpu string, hasFPU bool, revision Revision) (string, error) {
	cpu = strings.ToLower(cpu)

	switch cpu {
	case "cortex-m0", "cortex-m0plus", "cortex-m3", "cortex-m23":
		return "", nil
	case "cortex-m4":
		return fpuIf(hasFPU, "fpv4-sp-d16"), nil
	case "cortex-m7":
		return fpuIf(hasFPU, "fpv5-d16"), nil
	case "cortex-m33":
		return fpuIf(hasFPU, "fpv5-sp-d16"), nil
	case "cortex-a5", "cortex-a7":
		switch revision {
		case Revision1:
			return fpuIf(hasFPU, "vfpv4-d16"), nil
		case Revision2:
			if hasFPU {
				return "neon-vfpv4", nil
			}

			return "vfpv4-d16", nil
		}
	case "cortex-a35", "cortex-a53":
		switch revision {
		case Revision1:
			return "crypto-neon-fp-armv8", nil
		case Revision2:
			return "", nil
		}
	default:
		if architecture, err := FromFamily("", cpu); err == nil && architecture.IsFlat() {
			return fpuIf(hasFPU, "fpu64"), nil
		}

		return "", utils.MakeError(model.ErrUnsupportedArchitecture, "unknown cpu '%v'", cpu)
	}

	return "", utils.MakeError(model.ErrUnsupportedArchitecture, "unknown device feature revision %v", revision)
}

func fpuIf(hasFPU bool, name string) string {
	if hasFPU {
		return name
	}

	return ""
}
