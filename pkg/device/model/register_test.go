package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccess(t *testing.T) {
	for input, expected := range map[string]Access{
		"":           AccessReadWrite,
		"RW":         AccessReadWrite,
		"r/w":        AccessReadWrite,
		"read-write": AccessReadWrite,
		"R":          AccessRead,
		" read-only": AccessRead,
		"W":          AccessWrite,
		"write-only": AccessWrite,
	} {
		access, err := ParseAccess(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, access, input)
	}

	_, err := ParseAccess("execute")
	assert.ErrorIs(t, err, ErrMalformedDescription)
}

func TestAccessString(t *testing.T) {
	assert.Equal(t, "R", AccessRead.String())
	assert.Equal(t, "W", AccessWrite.String())
	assert.Equal(t, "RW", AccessReadWrite.String())
	assert.Equal(t, "-", Access(0).String())
}

func TestNewRegister(t *testing.T) {
	t.Run("inserts default mode", func(t *testing.T) {
		r, err := NewRegister(Register{Name: "CTRL", Size: 1})
		require.NoError(t, err)
		require.Len(t, r.Modes, 1)
		assert.Equal(t, DefaultMode, r.Default().Name)
		assert.Equal(t, 1, r.Count)
		assert.False(t, r.HasModes())
	})

	t.Run("moves default mode first", func(t *testing.T) {
		r, err := NewRegister(Register{
			Name: "CTRLA",
			Size: 2,
			Modes: []Mode{
				{Name: "COUNT8", Fields: []Bitfield{{Name: "EN", Position: 1, Width: 1}}},
				{Name: DefaultMode, Fields: []Bitfield{{Name: "SWRST", Position: 0, Width: 1}}},
				{Name: "COUNT16"},
			},
		})
		require.NoError(t, err)
		require.Len(t, r.Modes, 3)
		assert.Equal(t, DefaultMode, r.Modes[0].Name)
		assert.Equal(t, "COUNT8", r.Modes[1].Name)
		assert.Equal(t, "COUNT16", r.Modes[2].Name)
		assert.True(t, r.HasModes())

		mode, err := r.Mode("COUNT16")
		require.NoError(t, err)
		assert.Equal(t, "COUNT16", mode.Name)

		_, err = r.Mode("COUNT32")
		assert.ErrorIs(t, err, ErrMalformedDescription)
	})

	t.Run("sorts fields by position", func(t *testing.T) {
		r, err := NewRegister(Register{
			Name: "CTRL",
			Size: 1,
			Modes: []Mode{{Name: DefaultMode, Fields: []Bitfield{
				{Name: "MODE", Position: 2, Width: 2},
				{Name: "EN", Position: 0, Width: 1},
			}}},
		})
		require.NoError(t, err)
		fields := r.Default().Fields
		require.Len(t, fields, 2)
		assert.Equal(t, "EN", fields[0].Name)
		assert.Equal(t, "MODE", fields[1].Name)
	})

	t.Run("rejects overlapping fields", func(t *testing.T) {
		_, err := NewRegister(Register{
			Name: "CTRL",
			Size: 1,
			Modes: []Mode{{Name: DefaultMode, Fields: []Bitfield{
				{Name: "A", Position: 0, Width: 3},
				{Name: "B", Position: 2, Width: 2},
			}}},
		})
		assert.ErrorIs(t, err, ErrMalformedDescription)
	})

	t.Run("rejects fields exceeding the register", func(t *testing.T) {
		_, err := NewRegister(Register{
			Name:  "CTRL",
			Size:  1,
			Modes: []Mode{{Name: DefaultMode, Fields: []Bitfield{{Name: "A", Position: 6, Width: 3}}}},
		})
		assert.ErrorIs(t, err, ErrMalformedDescription)
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		_, err := NewRegister(Register{
			Name:  "CTRL",
			Size:  4,
			Modes: []Mode{{Name: DefaultMode, Fields: []Bitfield{{Name: "A", Position: 0, Width: 0}}}},
		})
		assert.ErrorIs(t, err, ErrMalformedDescription)
	})

	t.Run("rejects unsupported sizes", func(t *testing.T) {
		_, err := NewRegister(Register{Name: "CTRL", Size: 3})
		assert.ErrorIs(t, err, ErrMalformedDescription)
	})

	t.Run("group alias", func(t *testing.T) {
		r, err := NewRegister(Register{Name: "CH", GroupAlias: "TC_CH", Count: 3})
		require.NoError(t, err)
		assert.True(t, r.IsGroupAlias())
		assert.Equal(t, 3, r.Count)
		assert.Equal(t, "CH -> TC_CH @ 0x0", r.String())

		_, err = NewRegister(Register{
			Name:       "CH",
			GroupAlias: "TC_CH",
			Modes:      []Mode{{Name: DefaultMode, Fields: []Bitfield{{Name: "A", Position: 0, Width: 1}}}},
		})
		assert.ErrorIs(t, err, ErrMalformedDescription)
	})

	t.Run("group modes", func(t *testing.T) {
		r, err := NewRegister(Register{Name: "COUNT", Size: 2, GroupModes: []string{"COUNT16"}})
		require.NoError(t, err)
		assert.True(t, r.InGroupMode("COUNT16"))
		assert.False(t, r.InGroupMode("COUNT8"))

		r, err = NewRegister(Register{Name: "CTRLA", Size: 2})
		require.NoError(t, err)
		assert.True(t, r.InGroupMode("COUNT8"))
	})
}

func TestRegisterSpan(t *testing.T) {
	r, err := NewRegister(Register{Name: "CC", Size: 4, Count: 4, Offset: 0x18})
	require.NoError(t, err)
	assert.Equal(t, 32, r.Bits())
	assert.Equal(t, uint64(16), r.Span())
	assert.Equal(t, "CC @ 0x18 (32 bits, RW)", r.String())
}

func TestBitfield(t *testing.T) {
	field := Bitfield{Name: "MODE", Position: 2, Width: 2}

	assert.Equal(t, uint64(0x0C), field.Mask())
	assert.Equal(t, 4, field.End())
	assert.Equal(t, uint64(0x3), field.Extract(0xFF))
	assert.Equal(t, uint64(0x2), field.Extract(0x08))
	assert.Equal(t, "MODE[3:2]", field.String())

	bit := Bitfield{Name: "EN", Position: 1, Width: 1}
	assert.Equal(t, "EN[1]", bit.String())
	assert.Equal(t, uint64(0x2), bit.Mask())
}
