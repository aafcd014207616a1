// Package address computes absolute register addresses and maps memory regions to the
// virtual segments of the target architecture.
package address

import "fmt"

// One of the four 512 MB kernel segments of the MIPS virtual address space
type Segment int

const (
	// Cached, unmapped
	Kseg0 Segment = iota
	// Uncached, unmapped
	Kseg1
	Kseg2
	Kseg3

	// Identity mapping, used by architectures without segments
	NoSegment Segment = -1
)

// Bits selecting the physical address within a segment
const PhysicalMask uint64 = 0x1FFFFFFF

var segmentBases = [...]uint64{
	Kseg0: 0x80000000,
	Kseg1: 0xA0000000,
	Kseg2: 0xC0000000,
	Kseg3: 0xE0000000,
}

func (s Segment) String() string {
	if s == NoSegment {
		return "physical"
	}

	return fmt.Sprintf("kseg%d", int(s))
}

// Projects an address into a segment
func Project(segment Segment, addr uint64) uint64 {
	if segment == NoSegment {
		return addr
	}

	return (addr & PhysicalMask) | segmentBases[segment]
}

func KSeg0(addr uint64) uint64 { return Project(Kseg0, addr) }
func KSeg1(addr uint64) uint64 { return Project(Kseg1, addr) }
func KSeg2(addr uint64) uint64 { return Project(Kseg2, addr) }
func KSeg3(addr uint64) uint64 { return Project(Kseg3, addr) }

// Returns the physical address behind a segment address
func Physical(addr uint64) uint64 {
	return addr & PhysicalMask
}

// Returns the segment an address belongs to. Addresses below 0x80000000 belong to none.
func SegmentOf(addr uint64) Segment {
	addr &= 0xFFFFFFFF

	for segment := Kseg3; segment >= Kseg0; segment-- {
		if addr >= segmentBases[segment] {
			return segment
		}
	}

	return NoSegment
}
