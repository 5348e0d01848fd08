package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewSkidDimension tests canonicalization of raw measurements
func TestNewSkidDimension(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		kind        DimensionKind
		expect      string
		expectError error
	}{
		{name: "compact six digits expand", raw: "483058", kind: DimensionKindSkid, expect: "48x30x58"},
		{name: "compact form trimmed", raw: " 621359 ", kind: DimensionKindSkid, expect: "62x13x59"},
		{name: "x separated kept", raw: "48x30x58", kind: DimensionKindSkid, expect: "48x30x58"},
		{name: "mixed separators normalized", raw: "48 x 30 - 58", kind: DimensionKindSkid, expect: "48x30x58"},
		{name: "space separated normalized", raw: "102 40 7", kind: DimensionKindCarpet, expect: "102x40x7"},
		{name: "two measurements rejected", raw: "48x30", kind: DimensionKindSkid, expectError: ErrInvalidDimension},
		{name: "four measurements rejected", raw: "48x30x58x10", kind: DimensionKindSkid, expectError: ErrInvalidDimension},
		{name: "leading separator rejected", raw: "x48x30x58", kind: DimensionKindSkid, expectError: ErrInvalidDimension},
		{name: "seven digits rejected", raw: "1234567", kind: DimensionKindSkid, expectError: ErrInvalidDimension},
		{name: "empty rejected", raw: "", kind: DimensionKindSkid, expectError: ErrInvalidDimension},
		{name: "unknown kind rejected", raw: "483058", kind: DimensionKind("pallet"), expectError: ErrInvalidDimensionKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dim, err := NewSkidDimension(tt.raw, tt.kind)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expect, dim.Value())
			assert.Equal(t, tt.kind, dim.Kind())
		})
	}
}

// TestSkidDimensionDisplay tests the classification markers
func TestSkidDimensionDisplay(t *testing.T) {
	assert.Equal(t, "48x30x58", MustNewSkidDimension("483058", DimensionKindSkid).Display())
	assert.Equal(t, "48x30x58 (C)", MustNewSkidDimension("483058", DimensionKindCarpet).Display())
	assert.Equal(t, "48x30x58 (B)", MustNewSkidDimension("483058", DimensionKindBox).Display())

	placeholder := NewPlaceholderDimension()
	assert.Equal(t, "N/A", placeholder.Display())
	assert.True(t, placeholder.IsPlaceholder())
	assert.Equal(t, DimensionKindSkid, placeholder.Kind())
}

// TestParseDimensionEntry tests display-form parsing
func TestParseDimensionEntry(t *testing.T) {
	carpet, err := ParseDimensionEntry("48x30x58 (C)")
	require.NoError(t, err)
	assert.Equal(t, DimensionKindCarpet, carpet.Kind())
	assert.Equal(t, "48x30x58", carpet.Value())

	box, err := ParseDimensionEntry("483058(B)")
	require.NoError(t, err)
	assert.Equal(t, DimensionKindBox, box.Kind())
	assert.Equal(t, "48x30x58", box.Value())

	skid, err := ParseDimensionEntry(" 62x45x33 ")
	require.NoError(t, err)
	assert.Equal(t, DimensionKindSkid, skid.Kind())

	placeholder, err := ParseDimensionEntry("N/A")
	require.NoError(t, err)
	assert.True(t, placeholder.IsPlaceholder())

	_, err = ParseDimensionEntry("junk (C)")
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

// TestCountUnits tests that totals derive from the list alone
func TestCountUnits(t *testing.T) {
	dims := []SkidDimension{
		MustNewSkidDimension("483058", DimensionKindSkid),
		MustNewSkidDimension("404040", DimensionKindSkid),
		NewPlaceholderDimension(),
		MustNewSkidDimension("120x10x10", DimensionKindCarpet),
		MustNewSkidDimension("202020", DimensionKindBox),
		MustNewSkidDimension("303030", DimensionKindBox),
	}

	counts := CountUnits(dims)
	assert.Equal(t, 3, counts.Skids)
	assert.Equal(t, 1, counts.Carpets)
	assert.Equal(t, 2, counts.Boxes)
	assert.Equal(t, 6, counts.Total())

	assert.Equal(t, UnitCounts{}, CountUnits(nil))
}
