package atdf

import (
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/address"
	"github.com/Manu343726/mcugen/pkg/device/attrs"
)

var segmentKinds = map[string]address.RegionKind{
	"flash": address.RegionKind_Code,
	"ram":   address.RegionKind_SRAM,
	"io":    address.RegionKind_Peripheral,
}

// Returns the code, RAM and peripheral memory segments of the device. Other segment
// types (fuses, user pages...) are ignored.
func (r *Reader) MemoryRegions() ([]address.MemoryRegion, error) {
	if r.device == nil {
		return nil, nil
	}

	var result []address.MemoryRegion

	for _, segment := range attrs.FindDeep(r.device, "memory-segment") {
		kind, known := segmentKinds[strings.ToLower(attrs.String(segment, "type", ""))]
		if !known {
			continue
		}

		start, err := attrs.RequireUint64(segment, "start")
		if err != nil {
			return nil, err
		}

		size, err := attrs.RequireUint64(segment, "size")
		if err != nil {
			return nil, err
		}

		result = append(result, address.MemoryRegion{
			Kind:   kind,
			Name:   attrs.String(segment, "name", ""),
			Origin: start,
			Length: size,
		})
	}

	return result, nil
}
