package layout

import (
	"fmt"

	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Finds the register groups of a peripheral by name. *model.Peripheral implements it.
type GroupLookup interface {
	Group(name string) (*model.RegisterGroup, error)
}

// A register with its offset resolved relative to the peripheral instance base address
type ResolvedMember struct {
	Register *model.Register

	// Group the register is declared in
	Group *model.RegisterGroup

	// Group alias names (with repeat index) leading from the root group to the register
	Path []string

	// Group mode the register belongs to, empty for registers shared by all modes
	GroupMode string

	// Offset of the first element relative to the instance base address
	Offset uint64
}

// Returns the offset of the i-th element of a register array
func (m *ResolvedMember) Element(i int) uint64 {
	return m.Offset + uint64(i)*m.Register.Size
}

// Returns the dotted name of the member, e.g. CH[1].TC_CCR or COUNT16.COUNT
func (m *ResolvedMember) QualifiedName() string {
	name := ""

	for _, step := range m.Path {
		name += step + "."
	}

	if m.GroupMode != "" {
		name += m.GroupMode + "."
	}

	return name + m.Register.Name
}

// Returns the members of a group sorted by offset. Members sharing an offset keep their
// declaration order.
func SortedMembers(group *model.RegisterGroup) []*model.Register {
	members := make([]*model.Register, len(group.Members))

	for i := range group.Members {
		members[i] = &group.Members[i]
	}

	slices.SortStableFunc(members, func(a, b *model.Register) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}

		return 0
	})

	return members
}

// Returns the offset sorted members of a group that belong to the given group mode
func MembersForMode(group *model.RegisterGroup, mode string) []*model.Register {
	return lo.Filter(SortedMembers(group), func(member *model.Register, _ int) bool {
		return member.InGroupMode(mode)
	})
}

// Returns the group modes each member of a group is resolved under. Members shared by all
// modes map to a single empty mode. Members naming only modes the group does not declare
// keep their own mode list.
func memberModes(group *model.RegisterGroup) map[*model.Register][]string {
	result := make(map[*model.Register][]string, len(group.Members))

	for _, mode := range group.Modes {
		for _, member := range MembersForMode(group, mode) {
			if len(member.GroupModes) > 0 {
				result[member] = append(result[member], mode)
			}
		}
	}

	for i := range group.Members {
		member := &group.Members[i]

		if _, found := result[member]; found {
			continue
		}

		if len(member.GroupModes) == 0 || !group.HasModes() {
			result[member] = []string{""}
		} else {
			result[member] = member.GroupModes
		}
	}

	return result
}

// Resolves sizes and member offsets of the register groups of one peripheral
type Resolver struct {
	groups   GroupLookup
	sizes    map[string]uint64
	visiting map[string]bool
}

func NewResolver(groups GroupLookup) *Resolver {
	return &Resolver{
		groups:   groups,
		sizes:    make(map[string]uint64),
		visiting: make(map[string]bool),
	}
}

func (r *Resolver) enter(name string) error {
	if r.visiting[name] {
		return utils.MakeError(model.ErrMalformedDescription, "register group '%v' contains itself", name)
	}

	r.visiting[name] = true
	return nil
}

func (r *Resolver) leave(name string) {
	delete(r.visiting, name)
}

// Returns the size in bytes of a group: the furthest member end or the explicit size,
// whichever is bigger, rounded up to the group alignment
func (r *Resolver) GroupSize(name string) (uint64, error) {
	if size, cached := r.sizes[name]; cached {
		return size, nil
	}

	group, err := r.groups.Group(name)
	if err != nil {
		return 0, err
	}

	if err := r.enter(name); err != nil {
		return 0, err
	}
	defer r.leave(name)

	size := group.Size

	for i := range group.Members {
		member := &group.Members[i]
		end := member.Offset + member.Span()

		if member.IsGroupAlias() {
			stride, err := r.aliasStride(member)
			if err != nil {
				return 0, err
			}

			end = member.Offset + stride*uint64(max(member.Count, 1))
		}

		size = max(size, end)
	}

	size = utils.AlignUp(size, group.Alignment)
	r.sizes[name] = size

	return size, nil
}

// Distance between two consecutive copies of an aliased group
func (r *Resolver) aliasStride(alias *model.Register) (uint64, error) {
	size, err := r.GroupSize(alias.GroupAlias)
	if err != nil {
		return 0, utils.MakeError(err, "referenced by '%v'", alias.Name)
	}

	return max(size, alias.Size), nil
}

// Resolves the offsets of all registers reachable from the root group, relative to base.
// Registers are returned in layout order: by offset within each group, nested groups
// expanded in place. A register belonging to several group modes is returned once per mode.
func (r *Resolver) Resolve(root string, base uint64) ([]ResolvedMember, error) {
	group, err := r.groups.Group(root)
	if err != nil {
		return nil, err
	}

	stride, err := r.GroupSize(root)
	if err != nil {
		return nil, err
	}

	var result []ResolvedMember

	if err := r.resolveGroup(group, base, 1, stride, "", nil, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// Walks repeatCount copies of a group placed stride bytes apart from groupOffset. alias is
// the name of the member standing for the group, empty for the root group.
func (r *Resolver) resolveGroup(group *model.RegisterGroup, groupOffset uint64, repeatCount int, stride uint64, alias string, path []string, result *[]ResolvedMember) error {
	if err := r.enter(group.Name); err != nil {
		return err
	}
	defer r.leave(group.Name)

	members := SortedMembers(group)
	modes := memberModes(group)

	for repeatIndex := 0; repeatIndex < repeatCount; repeatIndex++ {
		repeatBase := groupOffset + uint64(repeatIndex)*stride
		repeatPath := path

		switch {
		case alias != "" && repeatCount > 1:
			repeatPath = append(slices.Clone(path), fmt.Sprintf("%v[%v]", alias, repeatIndex))
		case alias != "":
			repeatPath = append(slices.Clone(path), alias)
		}

		for _, member := range members {
			offset := repeatBase + member.Offset

			if !member.IsGroupAlias() {
				for _, mode := range modes[member] {
					*result = append(*result, ResolvedMember{
						Register:  member,
						Group:     group,
						Path:      slices.Clone(repeatPath),
						GroupMode: mode,
						Offset:    offset,
					})
				}

				continue
			}

			subgroup, err := r.groups.Group(member.GroupAlias)
			if err != nil {
				return utils.MakeError(err, "referenced by '%v' in group '%v'", member.Name, group.Name)
			}

			subStride, err := r.aliasStride(member)
			if err != nil {
				return err
			}

			if err := r.resolveGroup(subgroup, offset, max(member.Count, 1), subStride, member.Name, repeatPath, result); err != nil {
				return err
			}
		}
	}

	return nil
}
