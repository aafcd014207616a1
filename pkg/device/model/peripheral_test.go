package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceRoot(t *testing.T) {
	instance := Instance{
		Name: "TC0",
		ID:   -1,
		RegisterGroups: []GroupRef{
			{Name: "TC0_EXT", NameInModule: "TC_EXT", Offset: 0x42000800},
			{Name: "TC0", NameInModule: "TC", Offset: 0x42002000},
		},
		Parameters: []Parameter{{Name: "CC_NUM", Value: "2"}},
	}

	root, err := instance.Root()
	require.NoError(t, err)
	assert.Equal(t, "TC", root.NameInModule)

	base, err := instance.BaseAddress()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x42002000), base)

	value, found := instance.Parameter("CC_NUM")
	assert.True(t, found)
	assert.Equal(t, "2", value)

	_, found = instance.Parameter("DMAC_ID")
	assert.False(t, found)

	headless := Instance{Name: "FUSES", RegisterGroups: []GroupRef{{Name: "OTP", NameInModule: "OTP"}}}
	_, err = headless.Root()
	assert.ErrorIs(t, err, ErrNoRootRegisterGroup)
	assert.Equal(t, ErrorKind_NoRootRegisterGroup, Classify(err))
}

func TestGroupTypeName(t *testing.T) {
	assert.Equal(t, "TC", (&RegisterGroup{Name: "TC", Peripheral: "TC"}).TypeName())
	assert.Equal(t, "TC_COUNT8", (&RegisterGroup{Name: "TC_COUNT8", Peripheral: "TC"}).TypeName())
	assert.Equal(t, "DMAC_CHANNEL", (&RegisterGroup{Name: "CHANNEL", Peripheral: "DMAC"}).TypeName())
	assert.Equal(t, "PORT_GROUP_0", (&RegisterGroup{Name: "GROUP-0", Peripheral: "PORT"}).TypeName())
}

func TestPeripheralGroups(t *testing.T) {
	peripheral := Peripheral{
		Name: "TC",
		Groups: []RegisterGroup{
			{Name: "TC_COUNT8", Peripheral: "TC", Members: []Register{{Name: "CTRLA"}}},
			{Name: "TC", Peripheral: "TC"},
		},
	}

	base, err := peripheral.BaseGroup()
	require.NoError(t, err)
	assert.Equal(t, "TC", base.Name)

	group, err := peripheral.Group("TC_COUNT8")
	require.NoError(t, err)
	assert.False(t, group.HasModes())

	member, err := group.Member("CTRLA")
	require.NoError(t, err)
	assert.Equal(t, "CTRLA", member.Name)

	_, err = group.Member("CTRLB")
	assert.ErrorIs(t, err, ErrMalformedDescription)

	_, err = peripheral.Group("TC_COUNT32")
	assert.ErrorIs(t, err, ErrGroupNotFound)

	require.NoError(t, peripheral.ValidateTypeNames())
	assert.Equal(t, "TC (2 groups, 0 instances)", peripheral.String())

	_, err = (&Peripheral{Name: "EMPTY"}).BaseGroup()
	assert.ErrorIs(t, err, ErrMalformedDescription)
}

func TestValidateTypeNames(t *testing.T) {
	peripheral := Peripheral{
		Name: "DMAC",
		Groups: []RegisterGroup{
			{Name: "CHANNEL", Peripheral: "DMAC"},
			{Name: "DMAC_CHANNEL", Peripheral: "DMAC"},
		},
	}

	err := peripheral.ValidateTypeNames()
	assert.ErrorIs(t, err, ErrMalformedDescription)
	assert.Contains(t, err.Error(), "DMAC_CHANNEL")
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ErrorKind_None, Classify(nil))
	assert.Equal(t, ErrorKind_MalformedDescription, Classify(fmt.Errorf("reading: %w", ErrMalformedDescription)))
	assert.Equal(t, ErrorKind_GroupNotFound, Classify(ErrGroupNotFound))
	assert.Equal(t, ErrorKind_UnsupportedArchitecture, Classify(ErrUnsupportedArchitecture))
	assert.Equal(t, ErrorKind_DuplicateVecfield, Classify(ErrDuplicateVecfield))
	assert.Equal(t, ErrorKind_InvalidLayout, Classify(ErrInvalidLayout))
	assert.Equal(t, ErrorKind_NoRootRegisterGroup, Classify(errors.Join(ErrNoRootRegisterGroup)))
	assert.Equal(t, ErrorKind_Other, Classify(errors.New("disk full")))

	assert.Equal(t, "group not found", ErrorKind_GroupNotFound.String())
	assert.Equal(t, "other", ErrorKind_Other.String())
}
