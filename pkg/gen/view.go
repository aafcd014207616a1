package gen

import (
	"fmt"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/address"
	"github.com/Manu343726/mcugen/pkg/device/arch"
	"github.com/Manu343726/mcugen/pkg/device/assembly"
	"github.com/Manu343726/mcugen/pkg/device/layout"
	"github.com/Manu343726/mcugen/pkg/device/macros"
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

// A bitfield struct of a register type
type StructView struct {
	Name    string
	Entries []layout.LayoutEntry
}

// The C type of a register and all its macros
type RegisterType struct {
	Name     string
	Caption  string
	Storage  string
	Structs  []StructView
	Integral string
	Macros   []macros.Macro
}

// One register of an instance at its address
type RegisterAddress struct {
	Name    string
	Type    string
	Address uint64
	Count   int
	Stride  uint64
}

type InstanceView struct {
	Name        string
	BaseAddress uint64
	Registers   []RegisterAddress
}

type PeripheralView struct {
	Name      string
	Caption   string
	Types     []RegisterType
	Instances []InstanceView
}

// Everything the header templates need to know about a device
type DeviceView struct {
	Name        string
	Guard       string
	Flags       arch.Flags
	FPU         string
	Regions     []address.VirtualRegion
	Boot        []address.BootRegion
	Peripherals []PeripheralView
}

// Returns the C storage type of a register of the given width
func StorageType(bits int) string {
	return fmt.Sprintf("uint%d_t", bits)
}

// Returns the C type name of a register
func TypeName(architecture arch.Architecture, register *model.Register, prefix string) string {
	if architecture.IsFlat() {
		return "__" + utils.CIdentifier(register.Name) + "bits_t"
	}

	return prefix + "_Type"
}

var qualifiedNameReplacer = strings.NewReplacer("[", "", "]", "", ".", "_")

func vecStruct(register *model.Register, mode *macros.ModeMacros, name string) (*StructView, error) {
	fields := make([]model.Bitfield, len(mode.VecFields))

	for i, vecfield := range mode.VecFields {
		fields[i] = model.Bitfield{Name: vecfield.Name, Position: vecfield.PositionValue, Width: vecfield.Width}
	}

	entries, err := layout.BitLayout(fields, register.Bits())
	if err != nil {
		return nil, err
	}

	return &StructView{Name: name, Entries: entries}, nil
}

func registerType(architecture arch.Architecture, view *assembly.RegisterView) (*RegisterType, error) {
	register := view.Register
	derived := &view.Macros
	bits := register.Bits()

	result := &RegisterType{
		Name:     TypeName(architecture, register, derived.Modes[0].Prefix),
		Caption:  register.Caption,
		Storage:  StorageType(bits),
		Integral: "reg",
		Macros:   append([]macros.Macro{}, derived.Common...),
	}

	if architecture.IsFlat() {
		result.Integral = macros.WholeWordMember
	}

	if derived.Union {
		result.Integral = derived.WholeWord
	}

	for i := range view.Packed {
		packed := &view.Packed[i]
		mode := &derived.Modes[i]

		for _, field := range mode.Fields {
			result.Macros = append(result.Macros, field.All()...)
		}

		for _, vecfield := range mode.VecFields {
			result.Macros = append(result.Macros, vecfield.All()...)
		}

		if packed.Empty() {
			continue
		}

		bitName, vecName := "bit", "vec"

		if derived.Union {
			bitName = strings.ToLower(utils.CIdentifier(packed.Mode.Name))
			vecName = bitName + "_vec"
		}

		result.Structs = append(result.Structs, StructView{Name: bitName, Entries: packed.Layout})

		if len(mode.VecFields) > 0 {
			vec, err := vecStruct(register, mode, vecName)
			if err != nil {
				return nil, err
			}

			result.Structs = append(result.Structs, *vec)
		}

		if !derived.Union {
			break
		}
	}

	return result, nil
}

func registerAddress(architecture arch.Architecture, view *assembly.RegisterView) RegisterAddress {
	return RegisterAddress{
		Name:    "REG_" + utils.CIdentifier(view.Instance) + "_" + utils.CIdentifier(qualifiedNameReplacer.Replace(view.QualifiedName())),
		Type:    TypeName(architecture, view.Register, view.Macros.Modes[0].Prefix),
		Address: view.Address,
		Count:   view.Register.Count,
		Stride:  view.Register.Size,
	}
}

func peripheralView(architecture arch.Architecture, peripheral *assembly.PeripheralView) (*PeripheralView, error) {
	result := &PeripheralView{
		Name:    peripheral.Peripheral.Name,
		Caption: peripheral.Peripheral.Caption,
	}

	// Registers reached through several aliases of one group share their type
	declared := map[string]bool{}

	for _, instance := range peripheral.Instances {
		if instance.Outcome != assembly.Outcome_OK {
			continue
		}

		base, err := instance.Instance.BaseAddress()
		if err != nil {
			return nil, err
		}

		instanceView := InstanceView{
			Name:        instance.Instance.Name,
			BaseAddress: architectureAddress(architecture, base),
		}

		for i := range instance.Registers {
			view := &instance.Registers[i]

			if typeName := TypeName(architecture, view.Register, view.Macros.Modes[0].Prefix); !declared[typeName] {
				declared[typeName] = true

				typ, err := registerType(architecture, view)
				if err != nil {
					return nil, utils.MakeError(err, "register '%v'", view.QualifiedName())
				}

				result.Types = append(result.Types, *typ)
			}

			instanceView.Registers = append(instanceView.Registers, registerAddress(architecture, view))
		}

		result.Instances = append(result.Instances, instanceView)
	}

	return result, nil
}

func architectureAddress(architecture arch.Architecture, addr uint64) uint64 {
	if architecture.IsFlat() {
		return address.KSeg1(addr)
	}

	return addr
}

// Builds the header view of a device from its assembled peripherals and memory regions
func NewDeviceView(name string, flags arch.Flags, revision arch.Revision, regions []address.MemoryRegion, peripherals []assembly.PeripheralView) (*DeviceView, error) {
	fpu, err := arch.FPUName(flags.CPU, flags.HasFPU, revision)
	if err != nil {
		return nil, err
	}

	result := &DeviceView{
		Name:  name,
		Guard: "_" + strings.ToUpper(utils.CIdentifier(name)) + "_H_",
		Flags: flags,
		FPU:   fpu,
	}

	for _, region := range regions {
		result.Regions = append(result.Regions, address.Map(flags.Architecture, region)...)
	}

	if flags.Architecture.IsFlat() && flags.BootSize > 0 {
		result.Boot = address.BootRegions(flags.BootSize)
	}

	for i := range peripherals {
		peripheral, err := peripheralView(flags.Architecture, &peripherals[i])
		if err != nil {
			return nil, utils.MakeError(err, "peripheral '%v'", peripherals[i].Peripheral.Name)
		}

		result.Peripherals = append(result.Peripherals, *peripheral)
	}

	return result, nil
}
