package gen

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/arch"
	"github.com/Manu343726/mcugen/pkg/device/assembly"
	"github.com/Manu343726/mcugen/pkg/device/catalog"
	"github.com/Manu343726/mcugen/pkg/device/model"
	headers "github.com/Manu343726/mcugen/pkg/gen"
)

// Generates the headers of a set of devices. A failing device produces no header and does
// not stop the others.
type Batch struct {
	Catalog   *catalog.Catalog
	Cache     *catalog.PathCache
	Generator *headers.Generator
	Revision  arch.Revision
	OutputDir string
	Logger    *slog.Logger
}

func NewBatch(devices *catalog.Catalog, revision arch.Revision, outputDir string, logger *slog.Logger) (*Batch, error) {
	generator, err := headers.NewGenerator()
	if err != nil {
		return nil, err
	}

	return &Batch{
		Catalog:   devices,
		Cache:     catalog.NewPathCache(devices),
		Generator: generator,
		Revision:  revision,
		OutputDir: outputDir,
		Logger:    logger,
	}, nil
}

// Returns the header file generated for a device
func (b *Batch) HeaderPath(device string) string {
	return filepath.Join(b.OutputDir, strings.ToLower(device)+".h")
}

// Generates the header of one device
func (b *Batch) Device(name string) error {
	device, err := b.Catalog.Device(name)
	if err != nil {
		return err
	}

	description, err := device.Open(b.Cache, b.Logger)
	if err != nil {
		return err
	}

	peripherals, err := assembly.NewAssembler(description.Flags, b.Logger).Device(description.Peripherals)
	if err != nil {
		return err
	}

	view, err := headers.NewDeviceView(device.Name, description.Flags, b.Revision, description.Regions, peripherals)
	if err != nil {
		return err
	}

	return b.Generator.Generate(b.HeaderPath(device.Name), view)
}

// Generates the headers of the given devices, all catalog devices if none. Returns the
// names of the devices that failed.
func (b *Batch) Run(names []string) []string {
	if len(names) == 0 {
		names = b.Catalog.Names()
	}

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		b.Logger.Error("cannot create output directory", "dir", b.OutputDir, "error", err)
		return names
	}

	var failed []string

	for _, name := range names {
		if err := b.Device(name); err != nil {
			b.Logger.Error("device failed", "device", name, "kind", model.Classify(err).String(), "error", err)
			failed = append(failed, name)
			continue
		}

		b.Logger.Info("generated header", "device", name, "file", b.HeaderPath(name))
	}

	return failed
}
