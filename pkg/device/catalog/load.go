package catalog

import (
	"log/slog"

	"github.com/Manu343726/mcugen/pkg/device/address"
	"github.com/Manu343726/mcugen/pkg/device/arch"
	"github.com/Manu343726/mcugen/pkg/device/atdf"
	"github.com/Manu343726/mcugen/pkg/device/attrs"
	"github.com/Manu343726/mcugen/pkg/device/edc"
	"github.com/Manu343726/mcugen/pkg/device/model"
)

// The loaded model of a device
type Description struct {
	Device      *Device
	Flags       arch.Flags
	Peripherals []*model.Peripheral

	// Memory segments declared by the description, if any
	Regions []address.MemoryRegion
}

// Parses the description tree of the device
func (d *Device) Load(cache *PathCache) (attrs.Node, error) {
	path, err := cache.Path(d.Name)
	if err != nil {
		return nil, err
	}

	return attrs.LoadFile(path)
}

// Reads the peripherals of a description tree with the reader matching the device
// architecture
func Peripherals(flags arch.Flags, root attrs.Node, logger *slog.Logger) ([]*model.Peripheral, []address.MemoryRegion, error) {
	if flags.Architecture.IsFlat() {
		peripherals, err := edc.NewReader(logger).Peripherals(root)
		return peripherals, nil, err
	}

	reader, err := atdf.NewReader(root)
	if err != nil {
		return nil, nil, err
	}

	peripherals, err := reader.Peripherals()
	if err != nil {
		return nil, nil, err
	}

	regions, err := reader.MemoryRegions()
	if err != nil {
		return nil, nil, err
	}

	return peripherals, regions, nil
}

// Loads and reads the description of the device
func (d *Device) Open(cache *PathCache, logger *slog.Logger) (*Description, error) {
	flags, err := d.Flags()
	if err != nil {
		return nil, err
	}

	root, err := d.Load(cache)
	if err != nil {
		return nil, err
	}

	peripherals, regions, err := Peripherals(flags, root, logger)
	if err != nil {
		return nil, err
	}

	return &Description{
		Device:      d,
		Flags:       flags,
		Peripherals: peripherals,
		Regions:     regions,
	}, nil
}
