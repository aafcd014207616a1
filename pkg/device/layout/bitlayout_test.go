package layout

import (
	"testing"

	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bit(name string, position, width int) model.Bitfield {
	return model.Bitfield{Name: name, Position: position, Width: width}
}

func widths(entries []LayoutEntry) []string {
	result := make([]string, len(entries))

	for i, entry := range entries {
		result[i] = entry.String()
	}

	return result
}

func TestBitLayout_SimpleEightBitRegister(t *testing.T) {
	fields := []model.Bitfield{bit("EN", 1, 1), bit("MODE", 3, 2)}

	entries, err := BitLayout(fields, 8)
	require.NoError(t, err)

	assert.Equal(t, []string{"pad(1)", "EN(1)", "pad(1)", "MODE(2)", "pad(3)"}, widths(entries))
	assert.Same(t, &fields[1], entries[3].Field)
	assert.Equal(t, 3, entries[3].Position)
}

func TestBitLayout_FieldsAtBitZero(t *testing.T) {
	entries, err := BitLayout([]model.Bitfield{bit("EN", 0, 1), bit("MODE", 2, 2)}, 8)
	require.NoError(t, err)

	assert.Equal(t, []string{"EN(1)", "pad(1)", "MODE(2)", "pad(4)"}, widths(entries))
}

func TestBitLayout_EmptyRegisterIsOnePadding(t *testing.T) {
	entries, err := BitLayout(nil, 32)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].Padding)
	assert.Equal(t, 0, entries[0].Position)
	assert.Equal(t, 32, entries[0].Width)
}

func TestBitLayout_FullWidthField(t *testing.T) {
	entries, err := BitLayout([]model.Bitfield{bit("w", 0, 16)}, 16)
	require.NoError(t, err)

	assert.Equal(t, []string{"w(16)"}, widths(entries))
}

func TestBitLayout_RejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []model.Bitfield
		width  int
	}{
		{"overlap", []model.Bitfield{bit("A", 0, 4), bit("B", 3, 2)}, 8},
		{"unsorted", []model.Bitfield{bit("A", 4, 1), bit("B", 0, 1)}, 8},
		{"zero width", []model.Bitfield{bit("A", 0, 0)}, 8},
		{"beyond register", []model.Bitfield{bit("A", 6, 4)}, 8},
		{"no register", nil, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := BitLayout(test.fields, test.width)
			assert.ErrorIs(t, err, model.ErrInvalidLayout)
		})
	}
}

func TestBitLayout_PartitionsTheRegister(t *testing.T) {
	registers := []struct {
		fields []model.Bitfield
		width  int
	}{
		{nil, 8},
		{[]model.Bitfield{bit("A", 7, 1)}, 8},
		{[]model.Bitfield{bit("A", 0, 3), bit("B", 3, 5), bit("C", 12, 4)}, 16},
		{[]model.Bitfield{bit("A", 1, 1), bit("B", 5, 10), bit("C", 16, 16)}, 32},
		{[]model.Bitfield{bit("A", 31, 1)}, 32},
	}

	for _, register := range registers {
		entries, err := BitLayout(register.fields, register.width)
		require.NoError(t, err)

		total := 0
		next := 0

		for _, entry := range entries {
			assert.Equal(t, next, entry.Position, "entries must be contiguous")
			assert.Positive(t, entry.Width)
			total += entry.Width
			next = entry.End()
		}

		assert.Equal(t, register.width, total)
	}
}

func TestBitLayout_IsIdempotent(t *testing.T) {
	fields := []model.Bitfield{bit("CC0", 0, 1), bit("CC1", 1, 1), bit("MODE", 4, 3)}

	first, err := BitLayout(fields, 16)
	require.NoError(t, err)
	second, err := BitLayout(fields, 16)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
