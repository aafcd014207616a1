package catalog

import (
	"path/filepath"
	"sync"

	"github.com/Manu343726/mcugen/pkg/utils"
)

// Maps device names to description file paths. The cache is populated on first use and is
// read-only afterwards, so it can be shared by every device of a generation run.
type PathCache struct {
	catalog *Catalog
	once    sync.Once
	paths   map[string]string
}

func NewPathCache(catalog *Catalog) *PathCache {
	return &PathCache{catalog: catalog}
}

func (c *PathCache) populate() {
	c.paths = make(map[string]string, len(c.catalog.Devices))

	for _, device := range c.catalog.Devices {
		path := device.Description

		if !filepath.IsAbs(path) {
			path = filepath.Join(c.catalog.Root, path)
		}

		c.paths[device.Name] = path
	}
}

// Returns the description file path of a device
func (c *PathCache) Path(device string) (string, error) {
	c.once.Do(c.populate)

	path, known := c.paths[device]
	if !known {
		return "", utils.MakeError(ErrDeviceNotFound, "'%v'", device)
	}

	return path, nil
}

// Returns the number of cached paths
func (c *PathCache) Len() int {
	c.once.Do(c.populate)
	return len(c.paths)
}
