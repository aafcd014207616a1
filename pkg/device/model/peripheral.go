package model

import (
	"fmt"

	"github.com/Manu343726/mcugen/pkg/utils"
)

// Binds a register group of a peripheral to an instance address
type GroupRef struct {
	// Name of the reference. The root reference is named like the instance
	Name string

	// Name of the register group within the peripheral
	NameInModule string

	// Offset within the instance addressing context
	Offset uint64
}

type Parameter struct {
	Name    string
	Value   string
	Caption string
}

// Pin multiplexing routing of an instance signal
type Signal struct {
	Pad      string
	Function string
	Group    string
	Index    string
}

// One concrete occurrence of a peripheral on a device
type Instance struct {
	Name string

	// Device specific id, -1 if absent
	ID int

	RegisterGroups []GroupRef
	Parameters     []Parameter
	Signals        []Signal
}

// Returns the register group reference named like the instance
func (i *Instance) Root() (GroupRef, error) {
	for _, ref := range i.RegisterGroups {
		if ref.Name == i.Name {
			return ref, nil
		}
	}

	return GroupRef{}, utils.MakeError(ErrNoRootRegisterGroup, "instance '%v' has no register group named '%v'", i.Name, i.Name)
}

// Returns the absolute base address of the instance
func (i *Instance) BaseAddress() (uint64, error) {
	root, err := i.Root()
	if err != nil {
		return 0, err
	}

	return root.Offset, nil
}

// Returns a parameter value by name
func (i *Instance) Parameter(name string) (string, bool) {
	for _, p := range i.Parameters {
		if p.Name == name {
			return p.Value, true
		}
	}

	return "", false
}

// A peripheral type (e.g. UART), owning the register groups shared by all its instances
type Peripheral struct {
	Name    string
	ID      string
	Version string
	Caption string

	Groups    []RegisterGroup
	Instances []Instance
}

// Returns a register group by name
func (p *Peripheral) Group(name string) (*RegisterGroup, error) {
	for i := range p.Groups {
		if p.Groups[i].Name == name {
			return &p.Groups[i], nil
		}
	}

	return nil, utils.MakeError(ErrGroupNotFound, "peripheral '%v' has no register group '%v'", p.Name, name)
}

// Returns the group sharing the peripheral's name, or the first one
func (p *Peripheral) BaseGroup() (*RegisterGroup, error) {
	if len(p.Groups) == 0 {
		return nil, utils.MakeError(ErrMalformedDescription, "peripheral '%v' has no register groups", p.Name)
	}

	if group, err := p.Group(p.Name); err == nil {
		return group, nil
	}

	return &p.Groups[0], nil
}

// Checks the C type names of all groups are unique within the peripheral
func (p *Peripheral) ValidateTypeNames() error {
	seen := make(map[string]string, len(p.Groups))

	for _, group := range p.Groups {
		typeName := group.TypeName()

		if other, duplicated := seen[typeName]; duplicated {
			return utils.MakeError(ErrMalformedDescription, "register groups '%v' and '%v' of peripheral '%v' share type name '%v'", other, group.Name, p.Name, typeName)
		}

		seen[typeName] = group.Name
	}

	return nil
}

func (p *Peripheral) String() string {
	return fmt.Sprintf("%v (%v groups, %v instances)", p.Name, len(p.Groups), len(p.Instances))
}
