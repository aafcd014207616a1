package macros

import (
	"io"
	"log/slog"
	"testing"

	"github.com/Manu343726/mcugen/pkg/device/arch"
	"github.com/Manu343726/mcugen/pkg/device/layout"
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pack(t *testing.T, r model.Register) (*model.Register, []layout.PackedMode) {
	register, err := model.NewRegister(r)
	require.NoError(t, err)

	packed, err := layout.NewPacker(slog.New(slog.NewTextHandler(io.Discard, nil))).Pack(register)
	require.NoError(t, err)

	return register, packed
}

func TestLiterals(t *testing.T) {
	assert.Equal(t, "0x0CU", MaskLiteral(0x0C, 8))
	assert.Equal(t, "0x0300U", MaskLiteral(0x300, 16))
	assert.Equal(t, "0x80000000UL", MaskLiteral(0x80000000, 32))
	assert.Equal(t, "0x00000000FFFFFFFFULL", MaskLiteral(0xFFFFFFFF, 64))
	assert.Equal(t, "0x3UL", ValueLiteral(3, 32))
}

func TestMacroDefine(t *testing.T) {
	assert.Equal(t, "#define A_Pos 2", Macro{Name: "A_Pos", Value: "2"}.Define())
	assert.Equal(t, "#define A(value) (value)", Macro{Name: "A", Params: []string{"value"}, Value: "(value)"}.Define())
}

func TestSimpleRegisterMacros(t *testing.T) {
	register, packed := pack(t, model.Register{
		Name:       "CTRL",
		Peripheral: "TC",
		Size:       1,
		Modes: []model.Mode{{
			Name: model.DefaultMode,
			Fields: []model.Bitfield{
				{Name: "EN", Position: 0, Width: 1},
				{Name: "MODE", Position: 2, Width: 2},
			},
		}},
	})

	macros := NewDeriver(arch.Architecture_ARMHierarchical).Register(register, packed)

	assert.False(t, macros.Union)
	require.Len(t, macros.Modes, 1)
	require.Len(t, macros.Modes[0].Fields, 2)

	mode := macros.Modes[0].Fields[1]
	assert.Equal(t, 2, mode.PositionValue)
	assert.Equal(t, uint64(0x0C), mode.MaskValue)
	assert.Equal(t, Macro{Name: "TC_CTRL_MODE_Pos", Value: "2"}, mode.Position)
	assert.Equal(t, Macro{Name: "TC_CTRL_MODE_Msk", Value: "0x0CU"}, mode.Mask)
	require.NotNil(t, mode.Value)
	assert.Equal(t, "#define TC_CTRL_MODE(value) (TC_CTRL_MODE_Msk & ((value) << TC_CTRL_MODE_Pos))", mode.Value.Define())
	assert.Nil(t, mode.Length)

	assert.Equal(t, []Macro{
		{Name: "TC_CTRL_OFFSET", Value: "(0x0)"},
		{Name: "TC_CTRL_RESETVALUE", Value: "0x00U"},
		{Name: "TC_CTRL_MASK", Value: "0x0DU"},
	}, macros.Common)
}

func TestOptionMacrosValuesFirst(t *testing.T) {
	field := &model.Bitfield{
		Name:     "MODE",
		Position: 2,
		Width:    2,
		Options: []model.Option{
			{Name: "COUNT16", Value: 0},
			{Name: "COUNT8", Value: 1},
		},
	}

	macros := NewDeriver(arch.Architecture_ARMHierarchical).Field("TC_CTRLA", field, 32)

	assert.Equal(t, []Macro{
		{Name: "TC_CTRLA_MODE_COUNT16_Val", Value: "0x0UL"},
		{Name: "TC_CTRLA_MODE_COUNT8_Val", Value: "0x1UL"},
		{Name: "TC_CTRLA_MODE_COUNT16", Value: "(TC_CTRLA_MODE_COUNT16_Val << TC_CTRLA_MODE_Pos)"},
		{Name: "TC_CTRLA_MODE_COUNT8", Value: "(TC_CTRLA_MODE_COUNT8_Val << TC_CTRLA_MODE_Pos)"},
	}, macros.Options)

	all := macros.All()
	require.Len(t, all, 7)
	assert.Equal(t, "TC_CTRLA_MODE_Pos", all[0].Name)
	assert.Equal(t, "TC_CTRLA_MODE", all[2].Name)
}

func TestFlatNaming(t *testing.T) {
	register, packed := pack(t, model.Register{
		Name: "U1MODE",
		Size: 4,
		Modes: []model.Mode{{
			Name:   model.DefaultMode,
			Fields: []model.Bitfield{{Name: "STSEL", Position: 0, Width: 1}, {Name: "PDSEL", Position: 1, Width: 2}},
		}},
	})

	macros := NewDeriver(arch.Architecture_MIPSFlat).Register(register, packed)

	assert.Empty(t, macros.Common)

	pdsel := macros.Modes[0].Fields[1]
	assert.Equal(t, Macro{Name: "_U1MODE_PDSEL_POSITION", Value: "1"}, pdsel.Position)
	assert.Equal(t, Macro{Name: "_U1MODE_PDSEL_MASK", Value: "0x00000006UL"}, pdsel.Mask)
	require.NotNil(t, pdsel.Length)
	assert.Equal(t, Macro{Name: "_U1MODE_PDSEL_LENGTH", Value: "2"}, *pdsel.Length)
	assert.Nil(t, pdsel.Value)
}

func TestModeUnionSynthesizesWholeWord(t *testing.T) {
	register, packed := pack(t, model.Register{
		Name:       "CTRLA",
		Peripheral: "TC",
		Size:       2,
		Modes: []model.Mode{
			{Name: "COUNT8", Fields: []model.Bitfield{{Name: "PER", Position: 0, Width: 8}}},
			{Name: "COUNT16", Fields: []model.Bitfield{{Name: "ENABLE", Position: 1, Width: 1}}},
		},
	})

	macros := NewDeriver(arch.Architecture_ARMHierarchical).Register(register, packed)

	assert.True(t, macros.Union)
	assert.Equal(t, WholeWordMember, macros.WholeWord)
	assert.True(t, macros.WholeWordSynthesized)

	require.Len(t, macros.Modes, 3)
	assert.Equal(t, model.DefaultMode, macros.Modes[0].Mode)
	assert.True(t, macros.Modes[0].Empty())
	assert.Equal(t, "TC_CTRLA_COUNT8", macros.Modes[1].Prefix)
	assert.Equal(t, "TC_CTRLA_COUNT8_PER_Msk", macros.Modes[1].Fields[0].Mask.Name)
}

func TestModeUnionReusesWholeWordField(t *testing.T) {
	register, packed := pack(t, model.Register{
		Name: "CNT",
		Size: 1,
		Modes: []model.Mode{
			{Name: "A", Fields: []model.Bitfield{{Name: "COUNT", Position: 0, Width: 8}}},
			{Name: "B", Fields: []model.Bitfield{{Name: "LOW", Position: 0, Width: 4}}},
		},
	})

	macros := NewDeriver(arch.Architecture_MIPSFlat).Register(register, packed)

	assert.True(t, macros.Union)
	assert.Equal(t, "COUNT", macros.WholeWord)
	assert.False(t, macros.WholeWordSynthesized)
	assert.Equal(t, "_CNT_A_COUNT_MASK", macros.Modes[1].Fields[0].Mask.Name)
}

func TestModesWithoutFieldsAreNoUnion(t *testing.T) {
	register, packed := pack(t, model.Register{
		Name:  "DATA",
		Size:  4,
		Modes: []model.Mode{{Name: "A"}, {Name: "B"}},
	})

	macros := NewDeriver(arch.Architecture_ARMHierarchical).Register(register, packed)

	assert.False(t, macros.Union)
	assert.Empty(t, macros.WholeWord)
}

func TestVecFieldMacros(t *testing.T) {
	register, packed := pack(t, model.Register{
		Name:       "INTFLAG",
		Peripheral: "TC",
		Size:       1,
		Modes: []model.Mode{{
			Name: model.DefaultMode,
			Fields: []model.Bitfield{
				{Name: "OVF", Position: 0, Width: 1},
				{Name: "MC0", Position: 4, Width: 1},
				{Name: "MC1", Position: 5, Width: 1},
				{Name: "ERR7", Position: 7, Width: 1},
			},
		}},
	})

	macros := NewDeriver(arch.Architecture_ARMHierarchical).Register(register, packed)

	vecfields := macros.Modes[0].VecFields
	require.Len(t, vecfields, 1)
	assert.Equal(t, "MC", vecfields[0].Name)
	assert.Equal(t, Macro{Name: "TC_INTFLAG_MC_Msk", Value: "0x30U"}, vecfields[0].Mask)
	assert.Equal(t, 2, vecfields[0].Width)
}

func TestPrefixDoesNotRepeatPeripheral(t *testing.T) {
	deriver := NewDeriver(arch.Architecture_ARMHierarchical)

	assert.Equal(t, "TC_CTRL", deriver.Prefix(&model.Register{Name: "TC_CTRL", Peripheral: "TC", Modes: []model.Mode{{Name: model.DefaultMode}}}, model.DefaultMode))
	assert.Equal(t, "SERCOM_USART_INT_CTRLA", deriver.Prefix(&model.Register{Name: "USART_INT_CTRLA", Peripheral: "SERCOM", Modes: []model.Mode{{Name: model.DefaultMode}}}, model.DefaultMode))
}

func TestScope(t *testing.T) {
	assert.Equal(t, "TC", Scope("TC", &model.RegisterGroup{Name: "TC", Peripheral: "TC"}, ""))
	assert.Equal(t, "TC_COUNT16", Scope("TC", &model.RegisterGroup{Name: "TC", Peripheral: "TC"}, "COUNT16"))
	assert.Equal(t, "TC_COUNT8", Scope("TC", &model.RegisterGroup{Name: "TC_COUNT8", Peripheral: "TC"}, ""))
	assert.Equal(t, "DMAC_CHANNEL", Scope("DMAC", &model.RegisterGroup{Name: "CHANNEL"}, ""))
}

func TestScopedRegisterMacros(t *testing.T) {
	register := &model.Register{
		Name:  "CTRLA",
		Size:  1,
		Modes: []model.Mode{{Name: model.DefaultMode, Fields: []model.Bitfield{{Name: "ENABLE", Position: 1, Width: 1}}}},
	}

	packed, err := layout.NewPacker(nil).Pack(register)
	require.NoError(t, err)

	hierarchical := NewDeriver(arch.Architecture_ARMHierarchical)
	count8 := hierarchical.ScopedRegister("TC_COUNT8", register, packed)
	count16 := hierarchical.ScopedRegister("TC_COUNT16", register, packed)

	assert.Equal(t, "TC_COUNT8_CTRLA_ENABLE_Pos", count8.Modes[0].Fields[0].Position.Name)
	assert.Equal(t, "TC_COUNT16_CTRLA_ENABLE_Pos", count16.Modes[0].Fields[0].Position.Name)
	assert.Equal(t, "TC_COUNT8_CTRLA_OFFSET", count8.Common[0].Name)

	assert.Equal(t, "TC_COUNT8_CTRL", hierarchical.ScopedPrefix("TC_COUNT8", &model.Register{Name: "TC_COUNT8_CTRL"}, model.DefaultMode))

	flat := NewDeriver(arch.Architecture_MIPSFlat)
	assert.Equal(t, "_CTRLA", flat.ScopedPrefix("TC_COUNT8", register, model.DefaultMode))
}
