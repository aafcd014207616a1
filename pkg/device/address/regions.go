package address

import (
	"fmt"

	"github.com/Manu343726/mcugen/pkg/device/arch"
)

type RegionKind uint

const (
	RegionKind_Boot RegionKind = iota
	RegionKind_Code
	RegionKind_SRAM
	RegionKind_Peripheral
	RegionKind_EBI
	RegionKind_SQI
)

func (k RegionKind) String() string {
	switch k {
	case RegionKind_Boot:
		return "boot"
	case RegionKind_Code:
		return "code"
	case RegionKind_SRAM:
		return "sram"
	case RegionKind_Peripheral:
		return "peripheral"
	case RegionKind_EBI:
		return "ebi"
	case RegionKind_SQI:
		return "sqi"
	}

	panic("unreachable")
}

// A physical memory region of a device
type MemoryRegion struct {
	Kind   RegionKind
	Name   string
	Origin uint64
	Length uint64
}

// A memory region as seen from the CPU
type VirtualRegion struct {
	Name    string
	Segment Segment
	Origin  uint64
	Length  uint64
}

func (r VirtualRegion) String() string {
	return fmt.Sprintf("%v: ORIGIN = 0x%08X, LENGTH = 0x%X", r.Name, r.Origin, r.Length)
}

var mipsSegments = map[RegionKind][]Segment{
	RegionKind_Boot:       {Kseg0, Kseg1},
	RegionKind_Code:       {Kseg0, Kseg1},
	RegionKind_SRAM:       {Kseg0, Kseg1},
	RegionKind_Peripheral: {Kseg1},
	RegionKind_EBI:        {Kseg2},
	RegionKind_SQI:        {Kseg3},
}

// Returns the views of a physical region the CPU can address it through
func Map(architecture arch.Architecture, region MemoryRegion) []VirtualRegion {
	if !architecture.IsFlat() {
		return []VirtualRegion{{
			Name:    region.Name,
			Segment: NoSegment,
			Origin:  region.Origin,
			Length:  region.Length,
		}}
	}

	segments := mipsSegments[region.Kind]
	result := make([]VirtualRegion, len(segments))

	for i, segment := range segments {
		result[i] = VirtualRegion{
			Name:    fmt.Sprintf("%v_%v", segment, region.Name),
			Segment: segment,
			Origin:  Project(segment, region.Origin),
			Length:  region.Length,
		}
	}

	return result
}
