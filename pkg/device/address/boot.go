package address

import (
	"math"

	"golang.org/x/exp/slices"
)

// A fixed boot flash region
type BootRegion struct {
	Name   string
	Origin uint64
	Length uint64
}

type bootTable struct {
	// Largest boot flash size (inclusive) the table applies to
	limit   uint64
	regions []BootRegion
}

const kib = 1024

// Known boot flash layouts, by increasing size
var bootTables = []bootTable{
	{
		limit: 3 * kib,
		regions: []BootRegion{
			{"kseg1_boot_mem", 0xBFC00000, 0x490},
			{"debug_exec_mem", 0xBFC00490, 0x760},
			{"config_mem", 0xBFC00BF0, 0x10},
		},
	},
	{
		limit: 12 * kib,
		regions: []BootRegion{
			{"kseg1_boot_mem", 0xBFC00000, 0x490},
			{"kseg0_boot_mem", 0x9FC00490, 0x1B70},
			{"debug_exec_mem", 0xBFC02000, 0xFF0},
			{"config_mem", 0xBFC02FF0, 0x10},
		},
	},
	{
		limit: 20 * kib,
		regions: []BootRegion{
			{"kseg1_boot_mem", 0xBFC00000, 0x490},
			{"kseg0_boot_mem", 0x9FC00490, 0x3B70},
			{"debug_exec_mem", 0xBFC04000, 0xFF0},
			{"config_mem", 0xBFC04FF0, 0x10},
		},
	},
	{
		limit: math.MaxUint64,
		regions: []BootRegion{
			{"kseg1_boot_mem", 0xBFC00000, 0x480},
			{"kseg0_boot_mem", 0x9FC004B0, 0xFA50},
			{"config_mem", 0xBFC0FF40, 0xC0},
			{"debug_exec_mem", 0xBFC10000, 0x1000},
		},
	},
}

// Returns the boot flash regions of a MIPS device given its boot flash size in bytes
func BootRegions(bootSize uint64) []BootRegion {
	for _, table := range bootTables {
		if bootSize <= table.limit {
			return slices.Clone(table.regions)
		}
	}

	panic("unreachable")
}
