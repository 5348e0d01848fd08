package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DimensionKind classifies a handling unit entry
type DimensionKind string

const (
	DimensionKindSkid   DimensionKind = "skid"
	DimensionKindCarpet DimensionKind = "carpet"
	DimensionKindBox    DimensionKind = "box"
)

// DimensionPlaceholder is recorded when the carrier bypasses dimension entry
const DimensionPlaceholder = "N/A"

// Display suffixes for non-skid handling units
const (
	carpetSuffix = " (C)"
	boxSuffix    = " (B)"
)

// Domain errors
var (
	ErrInvalidDimension     = errors.New("dimension must contain exactly three numeric measurements")
	ErrInvalidDimensionKind = errors.New("dimension kind must be skid, carpet or box")
)

var (
	sixDigitPattern = regexp.MustCompile(`^\d{6}$`)
	nonDigitSplit   = regexp.MustCompile(`\D+`)
)

// SkidDimension is a canonicalized handling unit measurement. A compact
// six-digit entry expands into three two-digit measurements; any other
// entry must split into exactly three numeric groups.
type SkidDimension struct {
	value string
	kind  DimensionKind
}

// NewSkidDimension canonicalizes a raw measurement string under the
// given classification
func NewSkidDimension(raw string, kind DimensionKind) (SkidDimension, error) {
	if !kind.IsValid() {
		return SkidDimension{}, fmt.Errorf("%w: %q", ErrInvalidDimensionKind, kind)
	}

	canonical, err := canonicalizeDimension(raw)
	if err != nil {
		return SkidDimension{}, err
	}

	return SkidDimension{value: canonical, kind: kind}, nil
}

// NewPlaceholderDimension returns the placeholder entry recorded for
// carriers that bypass dimension entry
func NewPlaceholderDimension() SkidDimension {
	return SkidDimension{value: DimensionPlaceholder, kind: DimensionKindSkid}
}

// MustNewSkidDimension creates a SkidDimension or panics. Use only with
// trusted input such as test fixtures.
func MustNewSkidDimension(raw string, kind DimensionKind) SkidDimension {
	d, err := NewSkidDimension(raw, kind)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDimensionEntry parses a display-form entry, detecting a trailing
// carpet or box marker
func ParseDimensionEntry(raw string) (SkidDimension, error) {
	trimmed := strings.TrimSpace(raw)
	kind := DimensionKindSkid

	switch {
	case strings.HasSuffix(trimmed, "(C)"):
		kind = DimensionKindCarpet
		trimmed = strings.TrimSuffix(trimmed, "(C)")
	case strings.HasSuffix(trimmed, "(B)"):
		kind = DimensionKindBox
		trimmed = strings.TrimSuffix(trimmed, "(B)")
	}

	if strings.TrimSpace(trimmed) == DimensionPlaceholder {
		return NewPlaceholderDimension(), nil
	}

	return NewSkidDimension(trimmed, kind)
}

func canonicalizeDimension(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	if sixDigitPattern.MatchString(trimmed) {
		return trimmed[:2] + "x" + trimmed[2:4] + "x" + trimmed[4:], nil
	}

	parts := nonDigitSplit.Split(trimmed, -1)
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDimension, raw)
	}
	for _, part := range parts {
		if part == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidDimension, raw)
		}
	}

	return parts[0] + "x" + parts[1] + "x" + parts[2], nil
}

// IsValid reports whether the kind is a known classification
func (k DimensionKind) IsValid() bool {
	switch k {
	case DimensionKindSkid, DimensionKindCarpet, DimensionKindBox:
		return true
	}
	return false
}

// Value returns the canonical measurement without classification markers
func (d SkidDimension) Value() string {
	return d.value
}

// Kind returns the handling unit classification
func (d SkidDimension) Kind() DimensionKind {
	return d.kind
}

// IsPlaceholder reports whether the entry is the bypass placeholder
func (d SkidDimension) IsPlaceholder() bool {
	return d.value == DimensionPlaceholder
}

// Display returns the entry as shown on the document, with the carpet
// or box marker appended
func (d SkidDimension) Display() string {
	switch d.kind {
	case DimensionKindCarpet:
		return d.value + carpetSuffix
	case DimensionKindBox:
		return d.value + boxSuffix
	}
	return d.value
}

// String implements the Stringer interface
func (d SkidDimension) String() string {
	return d.Display()
}

// Equals checks equality with another dimension entry
func (d SkidDimension) Equals(other SkidDimension) bool {
	return d.value == other.value && d.kind == other.kind
}

// UnitCounts aggregates handling unit totals by classification
type UnitCounts struct {
	Skids   int
	Carpets int
	Boxes   int
}

// Total returns the combined handling unit count
func (c UnitCounts) Total() int {
	return c.Skids + c.Carpets + c.Boxes
}

// CountUnits derives handling unit totals from the dimension list. The
// list is the single source of truth: totals are always recomputed, never
// carried alongside it.
func CountUnits(dims []SkidDimension) UnitCounts {
	var counts UnitCounts
	for _, d := range dims {
		switch d.kind {
		case DimensionKindCarpet:
			counts.Carpets++
		case DimensionKindBox:
			counts.Boxes++
		default:
			counts.Skids++
		}
	}
	return counts
}
