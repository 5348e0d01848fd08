package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatCityProvince tests city and province line normalization
func TestFormatCityProvince(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "full province name abbreviated", input: "Toronto, Ontario", expect: "TORONTO, ON."},
		{name: "quebec abbreviated", input: "Montreal, Quebec", expect: "MONTREAL, QC."},
		{name: "multi word city kept", input: "North York, Ontario", expect: "NORTH YORK, ON."},
		{name: "existing abbreviation uppercased", input: "Scarborough, on", expect: "SCARBOROUGH, ON."},
		{name: "trailing period tolerated", input: "Halifax, Nova Scotia.", expect: "HALIFAX, NS."},
		{name: "long unknown province truncated", input: "Calgary, Alberta Province", expect: "CALGARY, AL."},
		{name: "surrounding whitespace trimmed", input: "  Winnipeg, Manitoba  ", expect: "WINNIPEG, MB."},
		{name: "digits fall through unchanged", input: "Unit 4, M1S 3Y6", expect: "Unit 4, M1S 3Y6"},
		{name: "empty falls through unchanged", input: "", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, FormatCityProvince(tt.input))
		})
	}
}

// TestFormatPhoneNumber tests phone normalization and extensions
func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "dashed number formatted", input: "416-555-1234", expect: "(416) 555-1234"},
		{name: "already formatted number reflowed", input: "(416) 555-1234", expect: "(416) 555-1234"},
		{name: "extension with ext marker", input: "416 555 1234 ext 22", expect: "(416) 555-1234 ext. 22"},
		{name: "extension with x marker", input: "4165551234x7", expect: "(416) 555-1234 ext. 7"},
		{name: "short number returned stripped", input: "555-1234", expect: "5551234"},
		{name: "empty stays empty", input: "", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, FormatPhoneNumber(tt.input))
		})
	}
}

// TestNormalizeAttentionLine tests contact line cleanup
func TestNormalizeAttentionLine(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expect       string
		expectPrefix bool
	}{
		{
			name:         "prefix preserved and phone formatted",
			input:        "ATTN: John Smith 416-555-1234",
			expect:       "ATTN: John Smith (416) 555-1234",
			expectPrefix: true,
		},
		{
			name:   "prefix added when missing",
			input:  "Jane Doe",
			expect: "ATTN: Jane Doe",
		},
		{
			// excising the phone leaves its surrounding spaces behind
			name:   "embedded phone pulled to the end",
			input:  "Call 416 555 1234 before delivery",
			expect: "ATTN: Call  before delivery (416) 555-1234",
		},
		{
			name:   "phone extension kept",
			input:  "Reception 4165551234x99 rear dock",
			expect: "ATTN: Reception  rear dock (416) 555-1234 ext. 99",
		},
		{
			name:   "whitespace collapsed",
			input:  "  Jane   \t Doe  ",
			expect: "ATTN: Jane Doe",
		},
		{
			name:   "empty input yields bare prefix",
			input:  "",
			expect: "ATTN: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, hadPrefix := NormalizeAttentionLine(tt.input)
			assert.Equal(t, tt.expect, line)
			assert.Equal(t, tt.expectPrefix, hadPrefix)
		})
	}
}
