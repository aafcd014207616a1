package model

import (
	"strings"

	"github.com/Manu343726/mcugen/pkg/utils"
)

type RegisterGroup struct {
	// Group name
	Name string

	// Name of the peripheral owning the group
	Peripheral string

	// Group description (for documentation)
	Caption string

	// Byte boundary the group size is rounded up to, 0 for none
	Alignment uint64

	// Explicit size in bytes the group is padded to, 0 for none
	Size uint64

	// Names of the alternative member sets of the group
	Modes []string

	// Members in description order. Use the layout resolver for offset order
	Members []Register
}

// Returns the C type name of the group. The peripheral name is not repeated when
// the group is the peripheral's base group.
func (g *RegisterGroup) TypeName() string {
	if g.Name == g.Peripheral || g.Peripheral == "" {
		return utils.CIdentifier(g.Name)
	}

	if strings.HasPrefix(g.Name, g.Peripheral+"_") {
		return utils.CIdentifier(g.Name)
	}

	return utils.CIdentifier(g.Peripheral + "_" + g.Name)
}

// Returns a member by name
func (g *RegisterGroup) Member(name string) (*Register, error) {
	for i := range g.Members {
		if g.Members[i].Name == name {
			return &g.Members[i], nil
		}
	}

	return nil, utils.MakeError(ErrMalformedDescription, "register group '%v' has no member '%v'", g.Name, name)
}

// Returns true if the group declares alternative member sets
func (g *RegisterGroup) HasModes() bool {
	return len(g.Modes) > 0
}
