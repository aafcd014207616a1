// Package catalog lists the devices known to the generator and locates and loads their
// description files.
package catalog

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Manu343726/mcugen/pkg/device/arch"
	"github.com/Manu343726/mcugen/pkg/utils"
	"gopkg.in/yaml.v3"
)

var ErrDeviceNotFound = errors.New("device not found")
var ErrInvalidCatalog = errors.New("invalid catalog")

type Device struct {
	Name   string `yaml:"name"`
	Family string `yaml:"family"`
	CPU    string `yaml:"cpu"`

	// Description file, relative to the catalog file
	Description string `yaml:"description"`

	FPU      bool   `yaml:"fpu"`
	L1Cache  bool   `yaml:"l1cache"`
	BootSize uint64 `yaml:"bootsize"`
	Vectors  int    `yaml:"vectors"`
}

// Returns the architecture flags of the device
func (d *Device) Flags() (arch.Flags, error) {
	architecture, err := arch.FromFamily(d.Family, d.CPU)
	if err != nil {
		return arch.Flags{}, utils.MakeError(err, "device '%v'", d.Name)
	}

	return arch.Flags{
		Architecture: architecture,
		CPU:          d.CPU,
		HasFPU:       d.FPU,
		HasL1Cache:   d.L1Cache,
		BootSize:     d.BootSize,
		VectorCount:  d.Vectors,
	}, nil
}

type Catalog struct {
	Devices []Device `yaml:"devices"`

	// Directory description paths are relative to
	Root string `yaml:"-"`
}

// Parses a catalog. Description paths are relative to root.
func Parse(data []byte, root string) (*Catalog, error) {
	catalog := &Catalog{Root: root}

	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, utils.MakeError(ErrInvalidCatalog, "%v", err)
	}

	seen := make(map[string]bool, len(catalog.Devices))

	for _, device := range catalog.Devices {
		switch {
		case device.Name == "":
			return nil, utils.MakeError(ErrInvalidCatalog, "device without name")
		case seen[device.Name]:
			return nil, utils.MakeError(ErrInvalidCatalog, "device '%v' listed twice", device.Name)
		}

		seen[device.Name] = true
	}

	return catalog, nil
}

// Reads a catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	catalog, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, utils.MakeError(err, "%v", path)
	}

	return catalog, nil
}

// Returns a device by name
func (c *Catalog) Device(name string) (*Device, error) {
	for i := range c.Devices {
		if c.Devices[i].Name == name {
			return &c.Devices[i], nil
		}
	}

	return nil, utils.MakeError(ErrDeviceNotFound, "'%v'", name)
}

// Returns the names of all devices, in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Devices))

	for i, device := range c.Devices {
		names[i] = device.Name
	}

	return names
}
