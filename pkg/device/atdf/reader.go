// Package atdf reads hierarchical device descriptions: modules owning nested register
// groups, per-field modes and documented field values, plus the instances of each module.
package atdf

import (
	"math/bits"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/attrs"
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
	"github.com/samber/lo"
)

// Returns the position and width of a contiguous field mask
func MaskRange(mask uint64) (position, width int, err error) {
	if mask == 0 {
		return 0, 0, utils.MakeError(model.ErrMalformedDescription, "empty bitfield mask")
	}

	position = bits.TrailingZeros64(mask)
	width = bits.OnesCount64(mask)

	if mask>>position != utils.AllOnes[uint64](width) {
		return 0, 0, utils.MakeError(model.ErrMalformedDescription, "bitfield mask 0x%X is not contiguous", mask)
	}

	return position, width, nil
}

// Splits a space separated name list attribute
func nameList(n attrs.Node, name string) []string {
	return strings.Fields(attrs.String(n, name, ""))
}

// Reads a device description rooted at the document or any ancestor of its modules
type Reader struct {
	device    attrs.Node
	modules   attrs.Node
	instances map[string][]attrs.Node
}

// Creates a reader over a description document. Instances are optional.
func NewReader(root attrs.Node) (*Reader, error) {
	device, hasDevice := findFirstDeep(root, "device")
	modules, hasModules := findFirstDeep(root, "modules")

	if !hasModules {
		return nil, utils.MakeError(model.ErrMalformedDescription, "%v: no modules", attrs.Path(root))
	}

	r := &Reader{
		device:    device,
		modules:   modules,
		instances: make(map[string][]attrs.Node),
	}

	if hasDevice {
		for _, module := range attrs.FindDeep(device, "module") {
			name := attrs.String(module, "name", "")
			r.instances[name] = append(r.instances[name], attrs.Find(module, "instance")...)
		}
	}

	return r, nil
}

func findFirstDeep(root attrs.Node, tag string) (attrs.Node, bool) {
	if root.Tag() == tag {
		return root, true
	}

	found := attrs.FindDeep(root, tag)
	if len(found) == 0 {
		return nil, false
	}

	return found[0], true
}

// Returns the names of all modules in declaration order
func (r *Reader) ModuleNames() []string {
	return lo.Map(attrs.Find(r.modules, "module"), func(module attrs.Node, _ int) string {
		return attrs.String(module, "name", "")
	})
}

// Reads all modules
func (r *Reader) Peripherals() ([]*model.Peripheral, error) {
	var result []*model.Peripheral

	for _, name := range r.ModuleNames() {
		peripheral, err := r.Peripheral(name)
		if err != nil {
			return nil, err
		}

		result = append(result, peripheral)
	}

	return result, nil
}

// Reads one module with its register groups and instances
func (r *Reader) Peripheral(name string) (*model.Peripheral, error) {
	module, err := attrs.Require(r.modules, "module", attrs.Where("name", name))
	if err != nil {
		return nil, err
	}

	peripheral := &model.Peripheral{
		Name:    name,
		ID:      attrs.String(module, "id", ""),
		Version: attrs.String(module, "version", ""),
		Caption: attrs.String(module, "caption", ""),
	}

	values, err := readValueGroups(module)
	if err != nil {
		return nil, err
	}

	for _, groupNode := range attrs.Find(module, "register-group") {
		group, err := readGroup(name, groupNode, values)
		if err != nil {
			return nil, err
		}

		peripheral.Groups = append(peripheral.Groups, *group)
	}

	if err := peripheral.ValidateTypeNames(); err != nil {
		return nil, err
	}

	for _, instanceNode := range r.instances[name] {
		instance, err := readInstance(instanceNode)
		if err != nil {
			return nil, err
		}

		peripheral.Instances = append(peripheral.Instances, *instance)
	}

	return peripheral, nil
}

// Convenience wrapper reading one module of a description document
func ReadPeripheral(root attrs.Node, name string) (*model.Peripheral, error) {
	reader, err := NewReader(root)
	if err != nil {
		return nil, err
	}

	return reader.Peripheral(name)
}

// Convenience wrapper reading all modules of a description document
func ReadAll(root attrs.Node) ([]*model.Peripheral, error) {
	reader, err := NewReader(root)
	if err != nil {
		return nil, err
	}

	return reader.Peripherals()
}
