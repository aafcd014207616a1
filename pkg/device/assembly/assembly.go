// Package assembly ties register layout, bitfield packing, macro derivation and address
// resolution together, yielding per instance register views ready for code generation.
package assembly

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/address"
	"github.com/Manu343726/mcugen/pkg/device/arch"
	"github.com/Manu343726/mcugen/pkg/device/layout"
	"github.com/Manu343726/mcugen/pkg/device/macros"
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
)

// Pseudo-peripherals known to have no register interface of their own
var headless = map[string]bool{
	"FUSES":   true,
	"LOCKBIT": true,
	"CRYPTO":  true,
	"ICM":     true,
}

// Returns true if the peripheral or instance is known to lack a root register group
func IsHeadless(name string) bool {
	return headless[strings.ToUpper(name)]
}

type Outcome int

const (
	Outcome_OK Outcome = iota
	Outcome_NoRootRegisterGroup
	Outcome_Failed
)

func (o Outcome) String() string {
	switch o {
	case Outcome_OK:
		return "ok"
	case Outcome_NoRootRegisterGroup:
		return "no root register group"
	case Outcome_Failed:
		return "failed"
	}

	panic("unreachable")
}

// A register of a peripheral instance at its final address
type RegisterView struct {
	Instance string

	// Group aliases leading to the register
	Path []string

	// Group declaring the register
	Group *model.RegisterGroup

	// Group mode the register belongs to, empty if shared by all modes
	GroupMode string

	Register *model.Register
	Address  uint64
	Packed   []layout.PackedMode
	Macros   macros.RegisterMacros
}

// Returns the dotted name of the register within the instance
func (v *RegisterView) QualifiedName() string {
	parts := append([]string{}, v.Path...)

	if v.GroupMode != "" {
		parts = append(parts, v.GroupMode)
	}

	return strings.Join(append(parts, v.Register.Name), ".")
}

// Returns the macro naming scope of the register
func (v *RegisterView) Scope(peripheral string) string {
	return macros.Scope(peripheral, v.Group, v.GroupMode)
}

type InstanceResult struct {
	Instance  *model.Instance
	Outcome   Outcome
	Registers []RegisterView

	// Set if the outcome is not OK
	Err error

	// True for failures known to be harmless, which callers skip
	Skipped bool
}

// The assembled instances of a peripheral
type PeripheralView struct {
	Peripheral *model.Peripheral
	Instances  []InstanceResult
}

type Assembler struct {
	Flags   arch.Flags
	Packer  *layout.Packer
	Deriver *macros.Deriver
	Logger  *slog.Logger
}

func NewAssembler(flags arch.Flags, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Assembler{
		Flags:   flags,
		Packer:  layout.NewPacker(logger),
		Deriver: macros.NewDeriver(flags.Architecture),
		Logger:  logger,
	}
}

// Returns the address the CPU reaches a register at
func (a *Assembler) cpuAddress(addr uint64) uint64 {
	if a.Flags.Architecture.IsFlat() {
		return address.KSeg1(addr)
	}

	return addr
}

// Lays out all registers of one instance, in layout order
func (a *Assembler) Instance(peripheral *model.Peripheral, instance *model.Instance) ([]RegisterView, error) {
	root, err := instance.Root()
	if err != nil {
		return nil, err
	}

	members, err := layout.NewResolver(peripheral).Resolve(root.NameInModule, 0)
	if err != nil {
		return nil, utils.MakeError(err, "instance '%v'", instance.Name)
	}

	packed := map[*model.Register][]layout.PackedMode{}
	result := make([]RegisterView, 0, len(members))

	for i := range members {
		member := &members[i]

		addr, err := address.Absolute(instance, member)
		if err != nil {
			return nil, err
		}

		modes, cached := packed[member.Register]
		if !cached {
			if modes, err = a.Packer.Pack(member.Register); err != nil {
				return nil, utils.MakeError(err, "instance '%v'", instance.Name)
			}

			packed[member.Register] = modes
		}

		view := RegisterView{
			Instance:  instance.Name,
			Path:      member.Path,
			Group:     member.Group,
			GroupMode: member.GroupMode,
			Register:  member.Register,
			Address:   a.cpuAddress(addr),
			Packed:    modes,
		}

		view.Macros = a.Deriver.ScopedRegister(view.Scope(peripheral.Name), member.Register, modes)
		result = append(result, view)
	}

	return result, nil
}

// Lays out every instance of a peripheral. Failures are reported per instance; instances of
// headless pseudo-peripherals lacking a root group are marked as skipped.
func (a *Assembler) Peripheral(peripheral *model.Peripheral) []InstanceResult {
	result := make([]InstanceResult, len(peripheral.Instances))

	for i := range peripheral.Instances {
		instance := &peripheral.Instances[i]
		registers, err := a.Instance(peripheral, instance)

		result[i] = InstanceResult{
			Instance:  instance,
			Registers: registers,
			Err:       err,
		}

		switch {
		case err == nil:
			result[i].Outcome = Outcome_OK
		case model.Classify(err) == model.ErrorKind_NoRootRegisterGroup:
			result[i].Outcome = Outcome_NoRootRegisterGroup
			result[i].Skipped = IsHeadless(peripheral.Name) || IsHeadless(instance.Name)
		default:
			result[i].Outcome = Outcome_Failed
		}

		if result[i].Skipped {
			a.Logger.Info("skipping instance without register interface", "peripheral", peripheral.Name, "instance", instance.Name)
		}
	}

	return result
}

// Lays out all peripherals of a device. Any instance failure that is not a known skip fails
// the whole device.
func (a *Assembler) Device(peripherals []*model.Peripheral) ([]PeripheralView, error) {
	result := make([]PeripheralView, 0, len(peripherals))
	var errs []error

	for _, peripheral := range peripherals {
		view := PeripheralView{
			Peripheral: peripheral,
			Instances:  a.Peripheral(peripheral),
		}

		for _, instance := range view.Instances {
			if instance.Err != nil && !instance.Skipped {
				errs = append(errs, utils.MakeError(instance.Err, "peripheral '%v'", peripheral.Name))
			}
		}

		result = append(result, view)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return result, nil
}
