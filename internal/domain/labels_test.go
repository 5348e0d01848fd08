package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildLabelSequence tests the per-unit page sequence and numbering
func TestBuildLabelSequence(t *testing.T) {
	record := createTestRecord()

	t.Run("skids then carpets then boxes", func(t *testing.T) {
		dims := []SkidDimension{
			MustNewSkidDimension("483058", DimensionKindSkid),
			MustNewSkidDimension("404040", DimensionKindSkid),
			MustNewSkidDimension("62x45x33", DimensionKindCarpet),
			MustNewSkidDimension("62x45x34", DimensionKindCarpet),
			MustNewSkidDimension("20x20x20", DimensionKindBox),
		}

		sequence := BuildLabelSequence(LabelInput{
			Record:         record,
			Carrier:        CarrierFF,
			TrackingNumber: "TN77821",
			Dimensions:     dims,
			DeclaredSkids:  2,
			Cartons:        10,
		})

		require.Len(t, sequence, 5)

		expected := []struct {
			primary string
			suffix  string
		}{
			{"1/5", ""},
			{"2/5", ""},
			{"3/5", "1C/2C"},
			{"4/5", "2C/2C"},
			{"5/5", "1B/1B"},
		}
		for i, want := range expected {
			assert.Equal(t, want.primary, sequence[i].PrimaryText, "page %d", i+1)
			assert.Equal(t, want.suffix, sequence[i].SuffixText, "page %d", i+1)
			assert.Equal(t, i+1, sequence[i].UnitIndex)
			assert.Equal(t, 5, sequence[i].TotalUnits)
			assert.Equal(t, "FF", sequence[i].CarrierName)
			assert.Equal(t, record.ShipToCity, sequence[i].ReceiverCity)
			assert.Equal(t, record.AddressBlock(), sequence[i].AddressBlock)
			assert.Equal(t, "SH100234", sequence[i].ReferenceNumber)
		}
	})

	t.Run("declared skids drive the page count", func(t *testing.T) {
		sequence := BuildLabelSequence(LabelInput{
			Record:        record,
			Carrier:       CarrierKPS,
			Dimensions:    []SkidDimension{NewPlaceholderDimension(), NewPlaceholderDimension(), NewPlaceholderDimension()},
			DeclaredSkids: 3,
		})

		require.Len(t, sequence, 3)
		assert.Equal(t, "1/3", sequence[0].PrimaryText)
		assert.Equal(t, "3/3", sequence[2].PrimaryText)
	})

	t.Run("aggregating carrier collapses to one page", func(t *testing.T) {
		sequence := BuildLabelSequence(LabelInput{
			Record:         record,
			Carrier:        CarrierParcelPro,
			TrackingNumber: "TN77821",
			Cartons:        12,
		})

		require.Len(t, sequence, 1)
		assert.Equal(t, "12 PCES.", sequence[0].PrimaryText)
		assert.Empty(t, sequence[0].SuffixText)
		assert.Equal(t, 1, sequence[0].TotalUnits)
	})

	t.Run("no units yields no pages", func(t *testing.T) {
		sequence := BuildLabelSequence(LabelInput{
			Record:  record,
			Carrier: CarrierCRR,
		})
		assert.Empty(t, sequence)
	})
}

// TestLabelDescriptorShowTrackingLine tests the redundant-tracking rule
func TestLabelDescriptorShowTrackingLine(t *testing.T) {
	tests := []struct {
		name      string
		tracking  string
		reference string
		expected  bool
	}{
		{
			name:      "distinct tracking shows",
			tracking:  "TN77821",
			reference: "SH100234",
			expected:  true,
		},
		{
			name:      "tracking equal to the reference hides",
			tracking:  "SH100234",
			reference: "SH100234",
			expected:  false,
		},
		{
			name:      "whitespace-padded match still hides",
			tracking:  "  SH100234  ",
			reference: "SH100234",
			expected:  false,
		},
		{
			name:      "blank tracking hides",
			tracking:  "   ",
			reference: "SH100234",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor := LabelDescriptor{
				TrackingNumber:  tt.tracking,
				ReferenceNumber: tt.reference,
			}
			assert.Equal(t, tt.expected, descriptor.ShowTrackingLine())
		})
	}
}
